package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("thread not found")))
	assert.True(t, IsForbidden(Forbidden("moderator role required")))
	assert.True(t, IsConflict(Conflict("thread is locked")))
	assert.True(t, IsValidation(Validation("title is required")))

	assert.False(t, IsNotFound(Conflict("x")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := fmt.Errorf("deleting thread: %w", NotFound("thread not found"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMessageFormatting(t *testing.T) {
	err := Validation("unknown status %q", "escalated")
	assert.Equal(t, `unknown status "escalated"`, err.Error())
	assert.Equal(t, "validation", err.Kind.String())
}
