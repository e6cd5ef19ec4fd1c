// Package alarm implements the alarm state machine.
//
// The machine owns the persisted alarm configuration and the transient
// ringing/snooze state, and evaluates each 1 Hz clock tick against the
// configured time. It performs no side effects itself: every mutating
// operation returns the list of effects the caller must apply, so sound and
// persistence can be tested independently of the transition logic.
package alarm

import (
	"fmt"
	"time"

	"github.com/borgmon/daybreak/pkg/models"
)

// State is the derived alarm state. Exactly one state holds at any time.
type State int

const (
	// Disabled means the alarm is switched off.
	Disabled State = iota
	// Armed means the alarm is enabled and waiting for its configured time.
	Armed
	// Snoozed means ringing was deferred and will resume automatically.
	Snoozed
	// Ringing means the alert is active and awaiting snooze or dismiss.
	Ringing
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "Disabled"
	case Armed:
		return "Armed"
	case Snoozed:
		return "Snoozed"
	case Ringing:
		return "Ringing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Effect is a side effect the caller must apply after a machine operation.
type Effect int

const (
	// StartSound starts the looping alert sound.
	StartSound Effect = iota
	// StopSound stops the alert sound if one is active.
	StopSound
	// Persist saves the current alarm configuration.
	Persist
)

// DefaultSnoozeDuration is how long a snooze defers ringing.
const DefaultSnoozeDuration = 5 * time.Minute

// Machine is the alarm state machine. It is not safe for concurrent use;
// callers serialize access on the tick/event path.
type Machine struct {
	config  models.AlarmConfig
	runtime models.RuntimeState
	ringing bool
	snooze  time.Duration
}

// Option configures a Machine.
type Option func(*Machine)

// WithSnoozeDuration overrides the snooze duration.
func WithSnoozeDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.snooze = d
		}
	}
}

// NewMachine creates a machine from a loaded configuration. Runtime state
// always starts cleared: a snooze never survives a reload. A configuration
// with a malformed time falls back to the defaults.
func NewMachine(cfg models.AlarmConfig, opts ...Option) *Machine {
	if cfg.Validate() != nil {
		cfg = models.DefaultAlarmConfig()
	}

	m := &Machine{
		config: cfg,
		snooze: DefaultSnoozeDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSnoozeDuration updates how long future snoozes defer ringing. An
// already-running snooze keeps its original deadline.
func (m *Machine) SetSnoozeDuration(d time.Duration) {
	if d > 0 {
		m.snooze = d
	}
}

// Config returns the current persisted configuration.
func (m *Machine) Config() models.AlarmConfig {
	return m.config
}

// Ringing reports whether the alert is currently active.
func (m *Machine) Ringing() bool {
	return m.ringing
}

// State derives the current state from the configuration and runtime fields.
func (m *Machine) State() State {
	switch {
	case m.ringing:
		return Ringing
	case !m.config.Enabled:
		return Disabled
	case m.runtime.Snoozed:
		return Snoozed
	default:
		return Armed
	}
}

// SetEnabled toggles the alarm. Toggling always clears snooze state; turning
// the alarm off while ringing also silences it. A call that does not change
// the enabled flag is a no-op.
func (m *Machine) SetEnabled(enabled bool) []Effect {
	if m.config.Enabled == enabled {
		return nil
	}

	m.config.Enabled = enabled
	m.runtime.ClearSnooze()

	effects := []Effect{Persist}
	if !enabled && m.ringing {
		m.ringing = false
		effects = append(effects, StopSound)
	}
	return effects
}

// SetTime updates the configured alarm time. Malformed input is rejected at
// this boundary and leaves the machine untouched. A valid edit clears snooze
// state but never changes the enabled or ringing state: while ringing, only
// snooze and dismiss silence the alarm, and future ticks match the new time.
func (m *Machine) SetTime(value string) ([]Effect, error) {
	parsed, err := models.ParseClockTime(value)
	if err != nil {
		return nil, err
	}

	m.runtime.ClearSnooze()

	canonical := parsed.String()
	if canonical == m.config.Time {
		return nil, nil
	}

	m.config.Time = canonical
	return []Effect{Persist}, nil
}

// Snooze defers an active ring by the snooze duration. It is a no-op unless
// currently ringing, and repeated calls have no further effect. StopSound is
// emitted unconditionally; stopping an idle sound controller is safe.
func (m *Machine) Snooze(now time.Time) []Effect {
	if !m.ringing {
		return []Effect{StopSound}
	}

	m.ringing = false
	m.runtime.StartSnooze(now.Add(m.snooze))
	return []Effect{StopSound}
}

// Dismiss ends an active ring and disables the alarm: firing is single-shot,
// so dismissing always switches the alarm off for the day. It is a no-op
// unless currently ringing; StopSound is emitted unconditionally.
func (m *Machine) Dismiss() []Effect {
	if !m.ringing {
		return []Effect{StopSound}
	}

	m.ringing = false
	m.config.Enabled = false
	m.runtime.ClearSnooze()
	return []Effect{StopSound, Persist}
}

// Tick evaluates one clock tick. It is a no-op when the alarm is disabled or
// already ringing. An expired snooze re-enters ringing; otherwise the alarm
// fires when the local time of day matches the configured time on the tick
// where the seconds component is exactly zero. A tick missed at that exact
// second means the alarm does not fire that day; this is accepted behavior,
// not masked.
func (m *Machine) Tick(now time.Time) []Effect {
	if !m.config.Enabled || m.ringing {
		return nil
	}

	if m.runtime.Snoozed {
		if !now.Before(m.runtime.SnoozeUntil) {
			m.runtime.ClearSnooze()
			m.ringing = true
			return []Effect{StartSound}
		}
		return nil
	}

	if now.Second() == 0 && now.Format("15:04") == m.config.Time {
		m.ringing = true
		return []Effect{StartSound}
	}

	return nil
}

// Remaining describes the time until the alarm next fires, for display.
// While snoozed it reports the minutes left (rounded up); while armed it
// reports hours and minutes until the next occurrence of the configured
// time. The second return value is false when the alarm is disabled.
func (m *Machine) Remaining(now time.Time) (string, bool) {
	if !m.config.Enabled {
		return "", false
	}

	if m.runtime.Snoozed {
		minutes := ceilMinutes(m.runtime.SnoozeUntil.Sub(now))
		return fmt.Sprintf("Snoozed: %d min remaining", minutes), true
	}

	parsed, err := models.ParseClockTime(m.config.Time)
	if err != nil {
		// The machine never holds an invalid time; fail safe anyway.
		return "", false
	}

	total := ceilMinutes(parsed.NextAfter(now).Sub(now))
	return fmt.Sprintf("%dh %dm until alarm", total/60, total%60), true
}

// ceilMinutes converts a duration to whole minutes, rounding up and never
// below zero.
func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}
