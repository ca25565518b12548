package storage

import (
	"bytes"
	"fmt"
	"watchlist/internal/models"
	"watchlist/internal/storage/interfaces"

	json "github.com/goccy/go-json"
)

// SnapshotCodec turns snapshots into stored blobs: JSON compressed with the
// configured compressor. Decode also accepts uncompressed JSON, the format
// written by the browser build.
type SnapshotCodec struct {
	compressor interfaces.CompressorInterface
}

func NewSnapshotCodec(compressor interfaces.CompressorInterface) *SnapshotCodec {
	return &SnapshotCodec{compressor: compressor}
}

func (c *SnapshotCodec) Encode(snapshot models.Snapshot) ([]byte, error) {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.compressor.Compress(jsonData)
}

// Decode returns ErrEmptySnapshot when the blob parses but has no users.
func (c *SnapshotCodec) Decode(data []byte) (models.Snapshot, error) {
	var snapshot models.Snapshot

	raw, err := c.compressor.Decompress(data)
	if err != nil {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return snapshot, fmt.Errorf("decompress snapshot: %w", err)
		}
		raw = trimmed
	}

	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if len(snapshot.Users) == 0 {
		return models.Snapshot{}, ErrEmptySnapshot
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (c *SnapshotCodec) Close() {
	c.compressor.Close()
}
