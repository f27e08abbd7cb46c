package queries

import (
	"context"
	"time"

	"cinebook/internal/domain/room"
	"cinebook/internal/domain/session"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
)

// SessionQueries produces the bookable showtime options for a movie. Views
// are recomputed from the current ledger snapshot on every call; caching
// across mutations would serve stale seat counts.
type SessionQueries interface {
	TimesForMovie(ctx context.Context, movieID int64, runtimeMinutes int) (*MovieShowtimesView, error)
	SeatsLeft(ctx context.Context, r *room.Room, s session.Session) (int, error)
}

type sessionQueriesImpl struct {
	rooms     *room.Catalog
	readStore ReservationReadStore
	clock     clock.Clock
}

func NewSessionQueries(rooms *room.Catalog, readStore ReservationReadStore, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{
		rooms:     rooms,
		readStore: readStore,
		clock:     clk,
	}
}

func (q *sessionQueriesImpl) TimesForMovie(ctx context.Context, movieID int64, runtimeMinutes int) (*MovieShowtimesView, error) {
	now := q.clock.Now()

	today, err := q.buildDayViews(ctx, 0, movieID, runtimeMinutes, now)
	if err != nil {
		return nil, err
	}
	tomorrow, err := q.buildDayViews(ctx, 1, movieID, runtimeMinutes, now)
	if err != nil {
		return nil, err
	}

	return &MovieShowtimesView{Today: today, Tomorrow: tomorrow}, nil
}

func (q *sessionQueriesImpl) SeatsLeft(ctx context.Context, r *room.Room, s session.Session) (int, error) {
	booked, err := q.readStore.ConfirmedQuantity(ctx, r.ID(), s.MovieID(), s.Start())
	if err != nil {
		return 0, err
	}
	left := r.Capacity() - booked
	if left < 0 {
		left = 0
	}
	return left, nil
}

func (q *sessionQueriesImpl) buildDayViews(ctx context.Context, dayOffset int, movieID int64, runtimeMinutes int, now time.Time) ([]*SessionView, error) {
	sessions, err := session.GenerateDaySessions(dayOffset, movieID, runtimeMinutes, now)
	if err != nil {
		return nil, err
	}

	views := make([]*SessionView, 0, len(sessions))
	for _, s := range sessions {
		r, err := q.rooms.Find(s.RoomID())
		if err != nil {
			// Template and catalog are static; a miss means broken wiring.
			return nil, errs.Mark(err, errs.ErrRoomNotFound)
		}

		left, err := q.SeatsLeft(ctx, r, s)
		if err != nil {
			return nil, err
		}

		views = append(views, &SessionView{
			ID:        s.ID(),
			RoomID:    r.ID(),
			RoomName:  r.Name(),
			MovieID:   s.MovieID(),
			StartTime: s.Start(),
			EndTime:   s.End(),
			Version:   s.Version().String(),
			Capacity:  r.Capacity(),
			SeatsLeft: left,
		})
	}
	return views, nil
}
