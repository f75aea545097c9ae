//go:build unit

package shift_test

import (
	"testing"
	"time"

	"shiftlink/internal/domain/shift"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShift(t *testing.T, now time.Time) *shift.Shift {
	t.Helper()

	window, err := shift.NewTimeWindow(now.Add(24*time.Hour), now.Add(32*time.Hour))
	require.NoError(t, err)
	rate, err := shift.NewHourlyRate(4500)
	require.NoError(t, err)

	s, err := shift.NewShift(uuid.New(), "Evening bar service", "", window, rate, shift.NewLocation("Oslo"), now)
	require.NoError(t, err)
	return s
}

func TestNewShift(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("starts open and unassigned", func(t *testing.T) {
		s := newTestShift(t, now)
		assert.Equal(t, shift.StateOpen, s.State())
		assert.Nil(t, s.AssignedProfessionalID())
		assert.NotEqual(t, uuid.Nil, s.ID())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		window, _ := shift.NewTimeWindow(now.Add(time.Hour), now.Add(2*time.Hour))
		rate, _ := shift.NewHourlyRate(4500)
		_, err := shift.NewShift(uuid.New(), "", "", window, rate, shift.NewLocation("Oslo"), now)
		assert.ErrorIs(t, err, shift.ErrEmptyTitle)
	})

	t.Run("rejects window starting in the past", func(t *testing.T) {
		window, _ := shift.NewTimeWindow(now.Add(-time.Hour), now.Add(2*time.Hour))
		rate, _ := shift.NewHourlyRate(4500)
		_, err := shift.NewShift(uuid.New(), "Late shift", "", window, rate, shift.NewLocation("Oslo"), now)
		assert.ErrorIs(t, err, shift.ErrWindowInPast)
	})
}

func TestShiftConfirm(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	professionalID := uuid.New()

	t.Run("pending confirms and records the winner", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())

		require.NoError(t, s.Confirm(professionalID))
		assert.Equal(t, shift.StateConfirmed, s.State())
		require.NotNil(t, s.AssignedProfessionalID())
		assert.Equal(t, professionalID, *s.AssignedProfessionalID())
	})

	t.Run("second confirm loses explicitly", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(professionalID))

		err := s.Confirm(uuid.New())
		assert.ErrorIs(t, err, shift.ErrAlreadyConfirmed)
		// Winner unchanged.
		assert.Equal(t, professionalID, *s.AssignedProfessionalID())
	})

	t.Run("open shift cannot confirm", func(t *testing.T) {
		s := newTestShift(t, now)
		assert.ErrorIs(t, s.Confirm(professionalID), shift.ErrNotPending)
	})
}

func TestShiftCancel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancel clears assignment", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(uuid.New()))
		require.NoError(t, s.SetPaymentAuthRef("auth-1"))

		require.NoError(t, s.Cancel())
		assert.Equal(t, shift.StateCancelled, s.State())
		assert.Nil(t, s.AssignedProfessionalID())
		assert.Nil(t, s.PaymentAuthRef())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.Cancel())
		assert.NoError(t, s.Cancel())
		assert.Equal(t, shift.StateCancelled, s.State())
	})

	t.Run("completed refuses cancel", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(uuid.New()))
		require.NoError(t, s.Complete(now.Add(40*time.Hour)))

		assert.ErrorIs(t, s.Cancel(), shift.ErrCompleted)
	})
}

func TestShiftComplete(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed shift completes after its window ends", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(uuid.New()))

		require.NoError(t, s.Complete(now.Add(40*time.Hour)))
		assert.Equal(t, shift.StateCompleted, s.State())
	})

	t.Run("refuses before the window ends", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(uuid.New()))

		assert.ErrorIs(t, s.Complete(now.Add(25*time.Hour)), shift.ErrNotEnded)
	})

	t.Run("refuses when not confirmed", func(t *testing.T) {
		s := newTestShift(t, now)
		assert.ErrorIs(t, s.Complete(now.Add(40*time.Hour)), shift.ErrNotConfirmed)
	})
}

func TestShiftRevertToPending(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed reverts and clears assignment", func(t *testing.T) {
		s := newTestShift(t, now)
		require.NoError(t, s.MarkPending())
		require.NoError(t, s.Confirm(uuid.New()))
		require.NoError(t, s.SetPaymentAuthRef("auth-1"))

		require.NoError(t, s.RevertToPending())
		assert.Equal(t, shift.StatePending, s.State())
		assert.Nil(t, s.AssignedProfessionalID())
		assert.Nil(t, s.PaymentAuthRef())
	})

	t.Run("only confirmed reverts", func(t *testing.T) {
		s := newTestShift(t, now)
		assert.ErrorIs(t, s.RevertToPending(), shift.ErrNotConfirmed)
	})
}

func TestShiftReturnToOpen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := newTestShift(t, now)
	require.NoError(t, s.MarkPending())
	require.NoError(t, s.ReturnToOpen())
	assert.Equal(t, shift.StateOpen, s.State())

	assert.ErrorIs(t, s.ReturnToOpen(), shift.ErrNotPending)
}

func TestEstimatedAmountCents(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 8 hours at 4500 cents/h.
	s := newTestShift(t, now)
	assert.Equal(t, int64(8*4500), s.EstimatedAmountCents())
}
