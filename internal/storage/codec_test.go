package storage

import (
	"errors"
	"testing"
	"time"
	"watchlist/internal/models"
	"watchlist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCodec_RoundtripWithZstd(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	codec := NewSnapshotCodec(comp)
	defer codec.Close()

	seed := models.Seed(time.UnixMilli(1_700_000_000_000))
	data, err := codec.Encode(seed)
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestSnapshotCodec_DecodesPlainJSON(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	codec := NewSnapshotCodec(comp)
	defer codec.Close()

	raw := []byte(`{"users":[{"id":"u1","name":"Enzo","initial":"E"},{"id":"u2","name":"Partner","initial":"P"}],
		"currentUserId":"u2",
		"movies":[{"id":"m1","title":"Dune","year":2021,"perUser":{"u1":{"seen":true,"favorite":false,"tier":"A"}}}]}`)

	got, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.CurrentUserID)
	require.Len(t, got.Movies, 1)
	assert.Equal(t, models.TierA, got.Movies[0].PerUser["u1"].Tier)
	// missing users are filled in on decode
	assert.Equal(t, models.PerUserState{}, got.Movies[0].PerUser["u2"])
}

func TestSnapshotCodec_RejectsSnapshotWithoutUsers(t *testing.T) {
	codec := NewSnapshotCodec(&testutil.MockCompressor{})

	_, err := codec.Decode([]byte(`{"users":[],"currentUserId":"","movies":[]}`))
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestSnapshotCodec_RejectsGarbage(t *testing.T) {
	codec := NewSnapshotCodec(&testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) { return nil, errors.New("bad frame") },
	})

	_, err := codec.Decode([]byte("\x00\x01garbage"))
	assert.Error(t, err)

	_, err = codec.Decode([]byte("{not json"))
	assert.Error(t, err)
}
