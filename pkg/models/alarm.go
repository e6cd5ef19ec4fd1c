package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DefaultAlarmTime is the alarm time used on first run and whenever the
// persisted record cannot be read back.
const DefaultAlarmTime = "07:00"

// ErrInvalidTimeInput reports a malformed "HH:MM" value at the input boundary.
// The alarm machine itself only ever sees validated times.
var ErrInvalidTimeInput = errors.New("time must be HH:MM between 00:00 and 23:59")

// AlarmConfig is the persisted alarm record. It holds exactly the two fields
// that survive a restart; transient ringing/snooze state lives in RuntimeState.
type AlarmConfig struct {
	Time    string `json:"time"`    // canonical "HH:MM", local time of day
	Enabled bool   `json:"enabled"` // whether the alarm is armed
}

// DefaultAlarmConfig returns the first-run configuration: 07:00, disabled.
func DefaultAlarmConfig() AlarmConfig {
	return AlarmConfig{Time: DefaultAlarmTime, Enabled: false}
}

// Validate checks that the configured time is well-formed.
func (c AlarmConfig) Validate() error {
	_, err := ParseClockTime(c.Time)
	return err
}

// RuntimeState is the transient part of the alarm: snooze bookkeeping that is
// never persisted and never survives a reload.
type RuntimeState struct {
	Snoozed     bool
	SnoozeUntil time.Time // zero unless Snoozed
}

// StartSnooze records a snooze that expires at the given instant.
func (s *RuntimeState) StartSnooze(until time.Time) {
	s.Snoozed = true
	s.SnoozeUntil = until
}

// ClearSnooze resets the runtime state to its idle value.
func (s *RuntimeState) ClearSnooze() {
	s.Snoozed = false
	s.SnoozeUntil = time.Time{}
}

// ClockTime is a validated local time of day.
type ClockTime struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// ParseClockTime parses a strict "HH:MM" string. Anything else, including
// missing zero padding, sign characters, or out-of-range components, returns
// ErrInvalidTimeInput.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, ErrInvalidTimeInput
	}

	// All four positions must be digits; Atoi alone would let "+1" through.
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return ClockTime{}, ErrInvalidTimeInput
		}
	}

	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return ClockTime{}, ErrInvalidTimeInput
	}

	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return ClockTime{}, ErrInvalidTimeInput
	}

	if hour > 23 || minute > 59 {
		return ClockTime{}, ErrInvalidTimeInput
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// String renders the canonical "HH:MM" form.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// NextAfter returns the next occurrence of this time of day strictly after
// now, rolling to the next calendar day when today's occurrence has passed.
func (t ClockTime) NextAfter(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, t.Hour, t.Minute, 0, 0, now.Location())
	}
	return next
}
