package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_PendingToApproved(t *testing.T) {
	t.Parallel()
	next, err := Transition(StatusPending, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, next)
}

func TestTransition_PendingToRejected(t *testing.T) {
	t.Parallel()
	next, err := Transition(StatusPending, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)
}

func TestTransition_TerminalStatesRefuseEverything(t *testing.T) {
	t.Parallel()
	for _, status := range []Status{StatusApproved, StatusRejected} {
		for _, action := range []Action{ActionApprove, ActionReject} {
			next, err := Transition(status, action)
			assert.ErrorIs(t, err, ErrAlreadyProcessed, "%s + %s", status, action)
			assert.Equal(t, status, next)
		}
	}
}

func TestTransition_UnknownAction(t *testing.T) {
	t.Parallel()
	_, err := Transition(StatusPending, Action("archive"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestCanBeEdited_InsideWindow(t *testing.T) {
	t.Parallel()
	created := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	rec := FuelReceipt{Status: StatusPending, CreatedAt: created}

	assert.True(t, rec.CanBeEdited(created.Add(23*time.Hour)))
	assert.False(t, rec.CanBeEdited(created.Add(24*time.Hour)))
	assert.False(t, rec.CanBeEdited(created.Add(48*time.Hour)))
}

func TestCanBeEdited_NonPendingNeverEditable(t *testing.T) {
	t.Parallel()
	created := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	for _, status := range []Status{StatusApproved, StatusRejected} {
		rec := FuelReceipt{Status: status, CreatedAt: created}
		assert.False(t, rec.CanBeEdited(created.Add(time.Minute)), "status %s", status)
	}
}

func TestDaysSinceUpload(t *testing.T) {
	t.Parallel()
	created := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	rec := FuelReceipt{CreatedAt: created}

	assert.Equal(t, 0, rec.DaysSinceUpload(created.Add(12*time.Hour)))
	assert.Equal(t, 3, rec.DaysSinceUpload(created.Add(3*24*time.Hour)))
}
