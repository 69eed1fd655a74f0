package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppealStatusTransitions(t *testing.T) {
	terminals := []AppealStatus{AppealAccepted, AppealDenied, AppealClosed}

	t.Run("pending may move to review or straight to a terminal", func(t *testing.T) {
		assert.True(t, AppealPending.CanTransitionTo(AppealUnderReview))
		for _, to := range terminals {
			assert.True(t, AppealPending.CanTransitionTo(to), "pending -> %s", to)
		}
	})

	t.Run("under_review may only terminate", func(t *testing.T) {
		for _, to := range terminals {
			assert.True(t, AppealUnderReview.CanTransitionTo(to), "under_review -> %s", to)
		}
		assert.False(t, AppealUnderReview.CanTransitionTo(AppealPending))
		assert.False(t, AppealUnderReview.CanTransitionTo(AppealUnderReview))
	})

	t.Run("terminals are frozen", func(t *testing.T) {
		all := []AppealStatus{AppealPending, AppealUnderReview, AppealAccepted, AppealDenied, AppealClosed}
		for _, from := range terminals {
			assert.True(t, from.Terminal())
			for _, to := range all {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown destination is never legal", func(t *testing.T) {
		assert.False(t, AppealPending.CanTransitionTo(AppealStatus("reopened")))
		assert.False(t, AppealStatus("reopened").Valid())
	})
}
