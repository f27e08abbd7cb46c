package reservation

import (
	"errors"
	"fmt"
	"time"
)

// TimeSlot is a half-open [start,end) interval truncated to whole minutes.
// Sub-minute differences are not distinguishing for booking identity, and
// back-to-back sessions never count as overlapping.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	start = ToMinute(start)
	end = ToMinute(end)
	if !start.Before(end) {
		return TimeSlot{}, errors.New("start time must be before end time")
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rehydrates a slot from the store without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: ToMinute(start), end: ToMinute(end)}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// HasStarted reports whether the session has begun; the boundary instant
// itself counts as started.
func (ts TimeSlot) HasStarted(now time.Time) bool {
	return !ts.start.After(now)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// ToMinute truncates a timestamp to the wall-clock minute used for all
// booking identity comparisons.
func ToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}

// SameMinute compares two timestamps at minute precision.
func SameMinute(a, b time.Time) bool {
	return ToMinute(a).Equal(ToMinute(b))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Euros() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}
