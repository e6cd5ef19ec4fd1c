package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	t.Parallel()

	valid := []struct {
		input  string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"07:00", 7, 0},
		{"09:05", 9, 5},
		{"23:59", 23, 59},
	}
	for _, tt := range valid {
		got, err := ParseClockTime(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		require.Equal(t, ClockTime{Hour: tt.hour, Minute: tt.minute}, got)
		require.Equal(t, tt.input, got.String())
	}

	invalid := []string{
		"", "7:00", "07:0", "24:00", "12:60", "ab:cd", "07-00", "07:00:00", "-1:30", "1200",
		// Sign characters must not slip through Atoi.
		"12:+5", "+1:05", "-0:30", "07:-1",
	}
	for _, input := range invalid {
		_, err := ParseClockTime(input)
		require.ErrorIs(t, err, ErrInvalidTimeInput, "input %q", input)
	}
}

func TestDefaultAlarmConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultAlarmConfig()
	require.Equal(t, "07:00", cfg.Time)
	require.False(t, cfg.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestClockTimeNextAfter(t *testing.T) {
	t.Parallel()

	loc := time.Local
	alarm := ClockTime{Hour: 7, Minute: 0}

	// Before today's occurrence: fires later today.
	now := time.Date(2026, 3, 10, 6, 30, 0, 0, loc)
	require.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, loc), alarm.NextAfter(now))

	// Exactly at the occurrence: the next one is tomorrow.
	now = time.Date(2026, 3, 10, 7, 0, 0, 0, loc)
	require.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, loc), alarm.NextAfter(now))

	// After today's occurrence: rolls to the next calendar day.
	now = time.Date(2026, 3, 10, 22, 15, 0, 0, loc)
	require.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, loc), alarm.NextAfter(now))

	// Month rollover.
	now = time.Date(2026, 3, 31, 8, 0, 0, 0, loc)
	require.Equal(t, time.Date(2026, 4, 1, 7, 0, 0, 0, loc), alarm.NextAfter(now))
}

func TestRuntimeStateSnooze(t *testing.T) {
	t.Parallel()

	var state RuntimeState
	require.False(t, state.Snoozed)
	require.True(t, state.SnoozeUntil.IsZero())

	until := time.Date(2026, 3, 10, 7, 5, 5, 0, time.Local)
	state.StartSnooze(until)
	require.True(t, state.Snoozed)
	require.Equal(t, until, state.SnoozeUntil)

	state.ClearSnooze()
	require.False(t, state.Snoozed)
	require.True(t, state.SnoozeUntil.IsZero())
}
