package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Internal},
		{"plain error", cause, Internal},
		{"coded", New(InvalidArgument, "bad"), InvalidArgument},
		{"wrapped twice", fmt.Errorf("get note: %w", Wrap(NotFound, "Note not found", cause)), NotFound},
		{"empty code", &Error{Message: "x"}, Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessageOfHidesInternalCauses(t *testing.T) {
	cause := errors.New("server selection error: mongodb://user:pw@db:27017")

	assert.Equal(t, "internal error", MessageOf(cause))
	assert.Equal(t, "internal error", MessageOf(Wrap(Internal, "store failed", cause)))
	assert.Equal(t, "Note not found", MessageOf(Wrap(NotFound, "Note not found", cause)))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, "store failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store failed: boom", err.Error())
	assert.Equal(t, "bad", New(InvalidArgument, "bad").Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgument))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("unknown")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(NotFound, "gone")))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("gone")))
}
