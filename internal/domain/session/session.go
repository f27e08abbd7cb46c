package session

import (
	"errors"
	"time"

	"cinebook/internal/domain/reservation"
)

var ErrInvalidDayOffset = errors.New("day offset must be 0 (today) or 1 (tomorrow)")

// DefaultRuntimeMinutes is assumed when the movie's true runtime is unknown.
const DefaultRuntimeMinutes = 120

const MaxDayOffset = 1

// Session is a candidate showtime derived from the fixed schedule template.
// Sessions are generated fresh on every query and never persisted.
type Session struct {
	id      int64
	roomID  int64
	movieID int64
	slot    reservation.TimeSlot
	version reservation.Version
}

func (s Session) ID() int64                    { return s.id }
func (s Session) RoomID() int64                { return s.roomID }
func (s Session) MovieID() int64               { return s.movieID }
func (s Session) Slot() reservation.TimeSlot   { return s.slot }
func (s Session) Start() time.Time             { return s.slot.Start() }
func (s Session) End() time.Time               { return s.slot.End() }
func (s Session) Version() reservation.Version { return s.version }

func (s Session) HasStarted(now time.Time) bool {
	return s.slot.HasStarted(now)
}

type slotTemplate struct {
	hour    int
	minute  int
	roomID  int64
	version reservation.Version
}

// The fixed daily schedule: each time-of-day slot is bound to a specific
// room and screening version.
var baseSlots = []slotTemplate{
	{hour: 10, minute: 45, roomID: 10, version: reservation.VersionVOSTFR},
	{hour: 14, minute: 15, roomID: 10, version: reservation.VersionVOSTFR},
	{hour: 16, minute: 0, roomID: 1, version: reservation.VersionVO},
	{hour: 19, minute: 30, roomID: 1, version: reservation.VersionVO},
}

// GenerateDaySessions derives the showtime candidates for a movie on local
// today (dayOffset 0) or tomorrow (dayOffset 1). Deterministic for a given
// day and runtime; no side effects. Only today/tomorrow are supported, a
// deliberate scope limit of the schedule template.
func GenerateDaySessions(dayOffset int, movieID int64, runtimeMinutes int, now time.Time) ([]Session, error) {
	if dayOffset < 0 || dayOffset > MaxDayOffset {
		return nil, ErrInvalidDayOffset
	}
	if runtimeMinutes <= 0 {
		runtimeMinutes = DefaultRuntimeMinutes
	}

	sessions := make([]Session, 0, len(baseSlots))
	for i, slot := range baseSlots {
		start := time.Date(now.Year(), now.Month(), now.Day()+dayOffset, slot.hour, slot.minute, 0, 0, now.Location())
		timeSlot, err := reservation.NewTimeSlot(start, start.Add(time.Duration(runtimeMinutes)*time.Minute))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, Session{
			id:      int64(dayOffset*len(baseSlots) + i + 1),
			roomID:  slot.roomID,
			movieID: movieID,
			slot:    timeSlot,
			version: slot.version,
		})
	}
	return sessions, nil
}
