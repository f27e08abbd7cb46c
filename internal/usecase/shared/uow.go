package shared

import (
	"context"
	"time"

	"cinebook/internal/domain/reservation"
)

// ReservationTx is the view of the reservation collection inside a unit of
// work. Entities returned by the lookup methods may be mutated in place;
// MarkDirty flags the collection for persistence when the unit commits.
type ReservationTx interface {
	All() []*reservation.Reservation
	FindByID(id int64) (*reservation.Reservation, bool)
	FindByKeys(id, userID, movieID int64) (*reservation.Reservation, bool)
	FindByCompositeKey(userID, movieID int64, start time.Time) (*reservation.Reservation, bool)
	ActiveForUser(userID int64) []*reservation.Reservation
	ConfirmedQuantity(roomID, movieID int64, start time.Time, excludeID int64) int
	Insert(build func(id int64) (*reservation.Reservation, error)) (*reservation.Reservation, error)
	MarkDirty()
}

// ReservationUnitOfWork runs fn against the full current collection and, when
// fn succeeds with staged changes, writes the whole collection back in one
// step. A failed fn aborts before any persistence write, so the store is
// never left in an intermediate state.
type ReservationUnitOfWork interface {
	Within(ctx context.Context, fn func(tx ReservationTx) error) error
}
