package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("export books: %w", NotFound("book not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("bad")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("could not update authors", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not update authors: connection reset", err.Error())
	assert.Equal(t, "could not update authors", Message(err))
	assert.Equal(t, "internal error", Message(cause))
}

func TestStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindInternal:     http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, Status(k), k)
	}
}
