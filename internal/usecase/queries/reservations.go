package queries

import (
	"context"
	"sort"
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/pkg/errs"
)

type ReservationReadStore interface {
	All(ctx context.Context) ([]*reservation.Reservation, error)
	FindByID(ctx context.Context, id int64) (*reservation.Reservation, error)
	ByUser(ctx context.Context, userID int64) ([]*reservation.Reservation, error)
	ConfirmedQuantity(ctx context.Context, roomID, movieID int64, start time.Time) (int, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id int64) (*ReservationView, error)
	UserReservations(ctx context.Context, userID int64) (*UserReservationsView, error)
	PendingBySession(ctx context.Context, userID, movieID int64, start time.Time) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id int64) (*ReservationView, error) {
	res, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewReservationView(res), nil
}

func (q *reservationQueriesImpl) UserReservations(ctx context.Context, userID int64) (*UserReservationsView, error) {
	all, err := q.readStore.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &UserReservationsView{
		Pending:   []*ReservationView{},
		Confirmed: []*ReservationView{},
		Cancelled: []*ReservationView{},
	}
	for _, res := range all {
		switch res.Status() {
		case reservation.StatusPending:
			view.Pending = append(view.Pending, NewReservationView(res))
		case reservation.StatusConfirmed:
			view.Confirmed = append(view.Confirmed, NewReservationView(res))
		case reservation.StatusCancelled:
			view.Cancelled = append(view.Cancelled, NewReservationView(res))
		}
	}

	sortByStart(view.Pending)
	sortByStart(view.Confirmed)
	sortByStart(view.Cancelled)
	return view, nil
}

// PendingBySession finds the user's open pending booking for an exact
// showtime, so re-entering the booking flow resumes it instead of creating a
// duplicate.
func (q *reservationQueriesImpl) PendingBySession(ctx context.Context, userID, movieID int64, start time.Time) (*ReservationView, error) {
	all, err := q.readStore.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, res := range all {
		if res.Status() == reservation.StatusPending && res.MatchesCompositeKey(userID, movieID, start) {
			return NewReservationView(res), nil
		}
	}
	return nil, errs.ErrReservationNotFound
}

func sortByStart(views []*ReservationView) {
	sort.Slice(views, func(i, j int) bool {
		return views[i].StartTime.Before(views[j].StartTime)
	})
}
