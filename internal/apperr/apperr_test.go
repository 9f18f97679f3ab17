package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "gone")))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Internal, KindOf(nil))

	// classification survives wrapping
	wrapped := fmt.Errorf("outer: %w", New(Conflict, "taken"))
	assert.Equal(t, Conflict, KindOf(wrapped))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "Internal server error", Message(Wrap(Internal, errors.New("pq: down"), "query failed")))
	assert.Equal(t, "Art was not found", Message(New(NotFound, "Art was not found")))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(New(Validation, "bad")))
	assert.Equal(t, http.StatusNotFound, Status(New(NotFound, "gone")))
	assert.Equal(t, http.StatusConflict, Status(New(Conflict, "taken")))
	assert.Equal(t, http.StatusForbidden, Status(New(Forbidden, "no")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(Conflict, cause, "duplicate")
	assert.ErrorIs(t, err, cause)
}
