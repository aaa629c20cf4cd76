package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusPreparing,
		StatusReady, StatusCompleted, StatusCancelled,
	}

	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed: {StatusPreparing: true, StatusCancelled: true},
		StatusPreparing: {StatusReady: true, StatusCancelled: true},
		StatusReady:     {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestStatusSkippingStagesRejected(t *testing.T) {
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusReady))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("preparing")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFormatOrderNumber(t *testing.T) {
	date := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20260830-0001", FormatOrderNumber(date, 1))
	assert.Equal(t, "ORD-20260830-0042", FormatOrderNumber(date, 42))
	assert.Equal(t, "ORD-20260830-12345", FormatOrderNumber(date, 12345))
}
