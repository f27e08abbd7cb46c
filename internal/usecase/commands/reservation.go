package commands

import (
	"context"
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/domain/room"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/pkg/patch"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"
)

// SessionSelection identifies the showtime a user picked when starting a
// booking.
type SessionSelection struct {
	MovieID         int64
	RoomID          int64
	StartTime       time.Time
	EndTime         time.Time
	Version         reservation.Version
	MovieTitle      string
	MoviePosterPath string
}

// MatchKeys locates a reservation for patching. All three must match; the
// extra keys defend against cross-user id collisions.
type MatchKeys struct {
	ID      int64
	UserID  int64
	MovieID int64
}

// ReservationPatch is a partial update. The identity pointers exist only so
// an attempt to alter them can be rejected with ErrImmutableKeys.
type ReservationPatch struct {
	ID      *int64
	UserID  *int64
	MovieID *int64
	reservation.Patch
}

// ReservationCommands is the write side of the reservation ledger: the sole
// mutator of the persisted collection, owner of the overlap, duplicate,
// capacity and past-session invariants.
type ReservationCommands interface {
	CreatePending(ctx context.Context, userID int64, sel SessionSelection) (*queries.ReservationView, error)
	UpdateReservation(ctx context.Context, keys MatchKeys, p ReservationPatch) (*queries.ReservationView, error)
	ConfirmReservation(ctx context.Context, id int64, category reservation.TicketCategory, quantity int) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id int64) (*queries.ReservationView, error)
	ReserveAgain(ctx context.Context, id int64) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow   shared.ReservationUnitOfWork
	rooms *room.Catalog
	clock clock.Clock
}

func NewReservationCommands(uow shared.ReservationUnitOfWork, rooms *room.Catalog, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		rooms: rooms,
		clock: clk,
	}
}

func (c *reservationCommandsImpl) CreatePending(ctx context.Context, userID int64, sel SessionSelection) (*queries.ReservationView, error) {
	slot, err := reservation.NewTimeSlot(sel.StartTime, sel.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	var view *queries.ReservationView
	err = c.uow.Within(ctx, func(tx shared.ReservationTx) error {
		now := c.clock.Now()
		if slot.HasStarted(now) {
			return errs.ErrSessionPassed
		}

		// A booking at the same composite key is handled below, not as an
		// overlap, so the duplicate/resurrect semantics stay reachable.
		for _, other := range tx.ActiveForUser(userID) {
			if other.MatchesCompositeKey(userID, sel.MovieID, slot.Start()) {
				continue
			}
			if other.Slot().Overlaps(slot) {
				return errs.ErrOverlap
			}
		}

		if existing, ok := tx.FindByCompositeKey(userID, sel.MovieID, slot.Start()); ok {
			if existing.IsActive() {
				return errs.ErrDuplicateReservation
			}
			if err := existing.Rebook(sel.RoomID, slot, sel.Version, sel.MovieTitle, sel.MoviePosterPath, now); err != nil {
				return err
			}
			tx.MarkDirty()
			view = queries.NewReservationView(existing)
			return nil
		}

		created, err := tx.Insert(func(id int64) (*reservation.Reservation, error) {
			return reservation.NewPendingReservation(
				id, userID, sel.MovieID, sel.RoomID,
				slot, sel.Version, sel.MovieTitle, sel.MoviePosterPath, now,
			)
		})
		if err != nil {
			return err
		}
		view = queries.NewReservationView(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *reservationCommandsImpl) UpdateReservation(ctx context.Context, keys MatchKeys, p ReservationPatch) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(tx shared.ReservationTx) error {
		res, ok := tx.FindByKeys(keys.ID, keys.UserID, keys.MovieID)
		if !ok {
			return errs.ErrReservationNotFound
		}

		if patch.Changed(p.ID, res.ID()) ||
			patch.Changed(p.UserID, res.UserID()) ||
			patch.Changed(p.MovieID, res.MovieID()) {
			return errs.ErrImmutableKeys
		}

		now := c.clock.Now()
		if res.HasStarted(now) {
			return errs.ErrSessionPassed
		}

		merged, err := c.mergedSlot(res, p.Patch)
		if err != nil {
			return err
		}
		status := patch.Coalesce(p.Status, res.Status())
		quantity := patch.Coalesce(p.Quantity, res.Quantity())
		roomID := patch.Coalesce(p.RoomID, res.RoomID())

		if status.IsActive() {
			if err := c.ensureNoOverlap(tx, res.UserID(), res.ID(), merged); err != nil {
				return err
			}
		}
		if status == reservation.StatusConfirmed {
			if err := c.ensureCapacity(tx, roomID, res.MovieID(), merged.Start(), res.ID(), quantity); err != nil {
				return err
			}
		}

		if err := res.Apply(p.Patch, now); err != nil {
			return err
		}
		tx.MarkDirty()
		view = queries.NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ConfirmReservation settles category and quantity and moves the reservation
// to CONFIRMED. Idempotent when nothing would change; a silent no-op when the
// session has already started. Capacity is re-validated here, not only at
// session generation time.
func (c *reservationCommandsImpl) ConfirmReservation(ctx context.Context, id int64, category reservation.TicketCategory, quantity int) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(tx shared.ReservationTx) error {
		res, ok := tx.FindByID(id)
		if !ok {
			return errs.ErrReservationNotFound
		}

		now := c.clock.Now()
		if res.HasStarted(now) || res.IsSettledAs(category, quantity) {
			view = queries.NewReservationView(res)
			return nil
		}

		if err := c.ensureCapacity(tx, res.RoomID(), res.MovieID(), res.StartTime(), res.ID(), quantity); err != nil {
			return err
		}

		if err := res.Confirm(category, quantity, now); err != nil {
			return err
		}
		tx.MarkDirty()
		view = queries.NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, id int64) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(tx shared.ReservationTx) error {
		res, ok := tx.FindByID(id)
		if !ok {
			return errs.ErrReservationNotFound
		}

		now := c.clock.Now()
		if res.HasStarted(now) || res.IsCancelled() {
			view = queries.NewReservationView(res)
			return nil
		}

		res.Cancel(now)
		tx.MarkDirty()
		view = queries.NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ReserveAgain re-activates a cancelled reservation to CONFIRMED with its
// stored category and quantity, provided the session has not started and the
// slot still fits the user's other bookings and the room's capacity.
func (c *reservationCommandsImpl) ReserveAgain(ctx context.Context, id int64) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := c.uow.Within(ctx, func(tx shared.ReservationTx) error {
		res, ok := tx.FindByID(id)
		if !ok {
			return errs.ErrReservationNotFound
		}

		now := c.clock.Now()
		if res.HasStarted(now) {
			return errs.ErrSessionPassed
		}

		if err := c.ensureNoOverlap(tx, res.UserID(), res.ID(), res.Slot()); err != nil {
			return err
		}
		if err := c.ensureCapacity(tx, res.RoomID(), res.MovieID(), res.StartTime(), res.ID(), res.Quantity()); err != nil {
			return err
		}

		if err := res.Reactivate(now); err != nil {
			return err
		}
		tx.MarkDirty()
		view = queries.NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *reservationCommandsImpl) mergedSlot(res *reservation.Reservation, p reservation.Patch) (reservation.TimeSlot, error) {
	if p.StartTime == nil && p.EndTime == nil {
		return res.Slot(), nil
	}
	slot, err := reservation.NewTimeSlot(
		patch.Coalesce(p.StartTime, res.StartTime()),
		patch.Coalesce(p.EndTime, res.EndTime()),
	)
	if err != nil {
		return reservation.TimeSlot{}, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}
	return slot, nil
}

func (c *reservationCommandsImpl) ensureNoOverlap(tx shared.ReservationTx, userID, excludeID int64, slot reservation.TimeSlot) error {
	for _, other := range tx.ActiveForUser(userID) {
		if other.ID() == excludeID {
			continue
		}
		if other.Slot().Overlaps(slot) {
			return errs.ErrOverlap
		}
	}
	return nil
}

func (c *reservationCommandsImpl) ensureCapacity(tx shared.ReservationTx, roomID, movieID int64, start time.Time, excludeID int64, quantity int) error {
	r, err := c.rooms.Find(roomID)
	if err != nil {
		return errs.Mark(err, errs.ErrRoomNotFound)
	}
	booked := tx.ConfirmedQuantity(roomID, movieID, start, excludeID)
	if booked+quantity > r.Capacity() {
		return errs.ErrCapacityExceeded
	}
	return nil
}
