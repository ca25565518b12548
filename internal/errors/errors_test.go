package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("movie %s not found", "m1")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "movie m1 not found", err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", Validation("title is required"))
	assert.True(t, Is(err, ErrValidation))
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeUnavailable, "read blob")
	assert.True(t, Is(err, ErrUnavailable))
	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "read blob: unexpected EOF", err.Error())
}

func TestCodeOf_UnknownIsInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(io.EOF))
}

func TestCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, CodeValidation.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, CodeNotFound.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, CodeUnauthenticated.HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, CodeUnavailable.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, CodeInternal.HTTPStatus())
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeForStatus(http.StatusBadRequest))
	assert.Equal(t, CodeNotFound, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeUnauthenticated, CodeForStatus(http.StatusUnauthorized))
	assert.Equal(t, CodeUnauthenticated, CodeForStatus(http.StatusForbidden))
	assert.Equal(t, CodeUnavailable, CodeForStatus(http.StatusBadGateway))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusConflict))
}
