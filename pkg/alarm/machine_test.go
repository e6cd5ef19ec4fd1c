package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/borgmon/daybreak/pkg/models"
)

func at(day, hour, minute, second int) time.Time {
	return time.Date(2026, 3, day, hour, minute, second, 0, time.Local)
}

func armedMachine(t *testing.T, hhmm string, opts ...Option) *Machine {
	t.Helper()
	m := NewMachine(models.AlarmConfig{Time: hhmm, Enabled: true}, opts...)
	require.Equal(t, Armed, m.State())
	return m
}

func TestTickFiresExactlyAtConfiguredMinute(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	require.Empty(t, m.Tick(at(10, 6, 59, 59)))
	require.Equal(t, Armed, m.State())

	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 7, 0, 0)))
	require.Equal(t, Ringing, m.State())
	require.True(t, m.Ringing())

	// Further ticks while ringing are no-ops: the sound starts once.
	require.Empty(t, m.Tick(at(10, 7, 0, 1)))
	require.Empty(t, m.Tick(at(10, 7, 0, 2)))
	require.Equal(t, Ringing, m.State())
}

func TestTickMissedSecondZeroDoesNotFire(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	// The evaluator was never invoked during second 0; the alarm silently
	// skips the day.
	require.Empty(t, m.Tick(at(10, 7, 0, 1)))
	require.Empty(t, m.Tick(at(10, 7, 0, 30)))
	require.Empty(t, m.Tick(at(10, 7, 1, 0)))
	require.Equal(t, Armed, m.State())
}

func TestTickDisabledIsNoOp(t *testing.T) {
	t.Parallel()
	m := NewMachine(models.AlarmConfig{Time: "07:00", Enabled: false})

	require.Empty(t, m.Tick(at(10, 7, 0, 0)))
	require.Equal(t, Disabled, m.State())
}

func TestSnoozeDefersAndReRings(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 7, 0, 0)))

	// Snooze at 07:00:05 defers until 07:05:05.
	require.Equal(t, []Effect{StopSound}, m.Snooze(at(10, 7, 0, 5)))
	require.Equal(t, Snoozed, m.State())

	require.Empty(t, m.Tick(at(10, 7, 1, 0)))
	require.Empty(t, m.Tick(at(10, 7, 5, 4)))
	require.Equal(t, Snoozed, m.State())

	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 7, 5, 5)))
	require.Equal(t, Ringing, m.State())
}

func TestSnoozeExpiryObservedLate(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 5))

	// The first tick at or after snoozeUntil re-rings, even if late.
	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 7, 6, 12)))
	require.Equal(t, Ringing, m.State())
}

func TestSnoozeIsIdempotent(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))

	require.Equal(t, []Effect{StopSound}, m.Snooze(at(10, 7, 0, 5)))

	// A second snooze while not ringing changes nothing but still asks for
	// the (idempotent) sound stop.
	require.Equal(t, []Effect{StopSound}, m.Snooze(at(10, 7, 2, 0)))
	require.Equal(t, Snoozed, m.State())

	// The original deadline stands: 07:05:05, not 07:07:00.
	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 7, 5, 5)))
}

func TestSnoozeWhileArmedIsNoOp(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	require.Equal(t, []Effect{StopSound}, m.Snooze(at(10, 6, 0, 0)))
	require.Equal(t, Armed, m.State())
}

func TestSnoozeSuppressesConfiguredTimeMatch(t *testing.T) {
	t.Parallel()

	// A snooze window long enough to span the next daily occurrence: the
	// configured-time match must not fire while snoozed.
	m := armedMachine(t, "07:00", WithSnoozeDuration(25*time.Hour))
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 10))

	require.Empty(t, m.Tick(at(11, 7, 0, 0)))
	require.Equal(t, Snoozed, m.State())

	// Expiry at day 11, 08:00:10 re-rings as usual.
	require.Equal(t, []Effect{StartSound}, m.Tick(at(11, 8, 0, 10)))
}

func TestDismissDisablesAlarm(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))

	require.Equal(t, []Effect{StopSound, Persist}, m.Dismiss())
	require.Equal(t, Disabled, m.State())
	require.False(t, m.Config().Enabled)

	// Repeat dismiss has no further effect on state.
	require.Equal(t, []Effect{StopSound}, m.Dismiss())
	require.Equal(t, Disabled, m.State())
}

func TestDismissAfterSnoozeReRing(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 5))
	m.Tick(at(10, 7, 5, 5))

	require.Equal(t, []Effect{StopSound, Persist}, m.Dismiss())
	require.Equal(t, Disabled, m.State())

	// Snooze fields are cleared, so re-enabling yields Armed, not Snoozed.
	m.SetEnabled(true)
	require.Equal(t, Armed, m.State())
}

func TestSetEnabled(t *testing.T) {
	t.Parallel()
	m := NewMachine(models.AlarmConfig{Time: "07:00", Enabled: false})

	require.Equal(t, []Effect{Persist}, m.SetEnabled(true))
	require.Equal(t, Armed, m.State())

	// Same value is a no-op.
	require.Empty(t, m.SetEnabled(true))

	require.Equal(t, []Effect{Persist}, m.SetEnabled(false))
	require.Equal(t, Disabled, m.State())
}

func TestSetEnabledOffWhileRingingSilences(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))

	require.Equal(t, []Effect{Persist, StopSound}, m.SetEnabled(false))
	require.Equal(t, Disabled, m.State())
	require.False(t, m.Ringing())
}

func TestToggleClearsSnooze(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 5))
	require.Equal(t, Snoozed, m.State())

	m.SetEnabled(false)
	m.SetEnabled(true)
	require.Equal(t, Armed, m.State())

	// Without the pending snooze, nothing fires at the old deadline.
	require.Empty(t, m.Tick(at(10, 7, 5, 5)))
}

func TestSetTime(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	effects, err := m.SetTime("06:45")
	require.NoError(t, err)
	require.Equal(t, []Effect{Persist}, effects)
	require.Equal(t, "06:45", m.Config().Time)

	// Setting the same value does not persist again.
	effects, err = m.SetTime("06:45")
	require.NoError(t, err)
	require.Empty(t, effects)

	require.Equal(t, []Effect{StartSound}, m.Tick(at(10, 6, 45, 0)))
}

func TestSetTimeRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")

	for _, input := range []string{"", "7:00", "24:00", "07:60", "bedtime"} {
		effects, err := m.SetTime(input)
		require.ErrorIs(t, err, models.ErrInvalidTimeInput, "input %q", input)
		require.Empty(t, effects)
	}
	require.Equal(t, "07:00", m.Config().Time)
}

func TestSetTimeWhileRingingKeepsRinging(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))

	effects, err := m.SetTime("08:00")
	require.NoError(t, err)
	require.Equal(t, []Effect{Persist}, effects)

	// Editing the time never silences the alarm; dismiss and snooze are the
	// only exits from ringing.
	require.Equal(t, Ringing, m.State())
	require.NotContains(t, effects, StopSound)
}

func TestSetTimeClearsSnooze(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 5))

	_, err := m.SetTime("09:30")
	require.NoError(t, err)
	require.Equal(t, Armed, m.State())
	require.Empty(t, m.Tick(at(10, 7, 5, 5)))
}

func TestReloadAfterSnoozeYieldsArmedAlarm(t *testing.T) {
	t.Parallel()
	m := armedMachine(t, "07:00")
	m.Tick(at(10, 7, 0, 0))
	m.Snooze(at(10, 7, 0, 5))

	// Only {time, enabled} survive a restart; the snooze does not.
	reloaded := NewMachine(m.Config())
	require.Equal(t, Armed, reloaded.State())
	require.Empty(t, reloaded.Tick(at(10, 7, 5, 5)))
}

func TestNewMachineFallsBackOnMalformedConfig(t *testing.T) {
	t.Parallel()

	// A machine must never hold a time that can't match a tick; malformed
	// stored values fall back to the defaults instead of arming an alarm
	// that would silently never fire.
	for _, stored := range []string{"25:99", "12:+5", "+1:05"} {
		m := NewMachine(models.AlarmConfig{Time: stored, Enabled: true})

		require.Equal(t, models.DefaultAlarmConfig(), m.Config(), "stored %q", stored)
		require.Equal(t, Disabled, m.State(), "stored %q", stored)
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		m := NewMachine(models.AlarmConfig{Time: "07:00", Enabled: false})
		_, ok := m.Remaining(at(10, 6, 0, 0))
		require.False(t, ok)
	})

	t.Run("armed same day", func(t *testing.T) {
		t.Parallel()
		m := armedMachine(t, "07:00")
		s, ok := m.Remaining(at(10, 6, 30, 0))
		require.True(t, ok)
		require.Equal(t, "0h 30m until alarm", s)
	})

	t.Run("armed rolls to next day", func(t *testing.T) {
		t.Parallel()
		m := armedMachine(t, "07:00")
		s, ok := m.Remaining(at(10, 22, 15, 0))
		require.True(t, ok)
		require.Equal(t, "8h 45m until alarm", s)
	})

	t.Run("armed partial minute rounds up", func(t *testing.T) {
		t.Parallel()
		m := armedMachine(t, "07:00")
		s, ok := m.Remaining(at(10, 6, 59, 30))
		require.True(t, ok)
		require.Equal(t, "0h 1m until alarm", s)
	})

	t.Run("snoozed rounds minutes up", func(t *testing.T) {
		t.Parallel()
		m := armedMachine(t, "07:00")
		m.Tick(at(10, 7, 0, 0))
		m.Snooze(at(10, 7, 0, 5)) // until 07:05:05

		s, ok := m.Remaining(at(10, 7, 0, 35))
		require.True(t, ok)
		require.Equal(t, "Snoozed: 5 min remaining", s)

		s, ok = m.Remaining(at(10, 7, 4, 35))
		require.True(t, ok)
		require.Equal(t, "Snoozed: 1 min remaining", s)
	})
}

func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Disabled", Disabled.String())
	require.Equal(t, "Armed", Armed.String())
	require.Equal(t, "Snoozed", Snoozed.String())
	require.Equal(t, "Ringing", Ringing.String())
}
