package shift

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeWindow = errors.New("invalid time window")
	ErrWindowInPast      = errors.New("time window is in the past")
	ErrInvalidRate       = errors.New("hourly rate must be positive")
	ErrEmptyTitle        = errors.New("title must not be empty")
)

type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w TimeWindow) Hours() float64 {
	return w.Duration().Hours()
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w TimeWindow) EndedBy(now time.Time) bool {
	return !now.Before(w.end)
}

func (w TimeWindow) ValidateNotPastAt(now time.Time) error {
	if w.start.Before(now) {
		return ErrWindowInPast
	}
	return nil
}

// HourlyRate is stored in cents to avoid floating point money.
type HourlyRate struct {
	cents int64
}

func NewHourlyRate(cents int64) (HourlyRate, error) {
	if cents <= 0 {
		return HourlyRate{}, ErrInvalidRate
	}
	return HourlyRate{cents: cents}, nil
}

func (r HourlyRate) Cents() int64 {
	return r.cents
}

// EstimateCents is the authorization amount for a window at this rate.
func (r HourlyRate) EstimateCents(w TimeWindow) int64 {
	return int64(w.Hours() * float64(r.cents))
}

type Location struct {
	value string
}

func NewLocation(value string) Location {
	return Location{value: value}
}

func (l Location) String() string {
	return l.value
}
