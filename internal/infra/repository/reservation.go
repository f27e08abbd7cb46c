package repository

import (
	"context"
	"sync"
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/infra/converter"
	"cinebook/internal/infra/store"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/shared"
)

const reservationsKey = "reservations"

// ReservationRepository owns the persisted reservation collection. Every
// mutation goes through Within: the full collection is read, changed in
// memory, and written back under one lock, so no partial write is ever
// observable.
type ReservationRepository struct {
	mu    sync.Mutex
	store *store.Store
}

func NewReservationRepository(s *store.Store) *ReservationRepository {
	return &ReservationRepository{store: s}
}

func (r *ReservationRepository) Within(_ context.Context, fn func(tx shared.ReservationTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.loadTx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	return r.persist(tx.items)
}

func (r *ReservationRepository) All(_ context.Context) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.loadTx()
	if err != nil {
		return nil, err
	}
	return tx.items, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, res := range all {
		if res.ID() == id {
			return res, nil
		}
	}
	return nil, errs.ErrReservationNotFound
}

func (r *ReservationRepository) ByUser(ctx context.Context, userID int64) ([]*reservation.Reservation, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var mine []*reservation.Reservation
	for _, res := range all {
		if res.UserID() == userID {
			mine = append(mine, res)
		}
	}
	return mine, nil
}

func (r *ReservationRepository) ConfirmedQuantity(ctx context.Context, roomID, movieID int64, start time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.loadTx()
	if err != nil {
		return 0, err
	}
	return tx.ConfirmedQuantity(roomID, movieID, start, 0), nil
}

func (r *ReservationRepository) loadTx() (*reservationTx, error) {
	records, err := store.Load[[]converter.ReservationRecord](r.store, reservationsKey)
	if err != nil {
		return nil, err
	}

	items := make([]*reservation.Reservation, 0, len(records))
	var maxID int64
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
		items = append(items, converter.ToReservationEntity(rec))
	}
	return &reservationTx{items: items, nextID: maxID + 1}, nil
}

func (r *ReservationRepository) persist(items []*reservation.Reservation) error {
	records := make([]converter.ReservationRecord, 0, len(items))
	for _, res := range items {
		rec, err := converter.ToReservationRecord(res)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	return store.Save(r.store, reservationsKey, records)
}

type reservationTx struct {
	items  []*reservation.Reservation
	nextID int64
	dirty  bool
}

func (t *reservationTx) All() []*reservation.Reservation {
	return t.items
}

func (t *reservationTx) FindByID(id int64) (*reservation.Reservation, bool) {
	for _, res := range t.items {
		if res.ID() == id {
			return res, true
		}
	}
	return nil, false
}

func (t *reservationTx) FindByKeys(id, userID, movieID int64) (*reservation.Reservation, bool) {
	res, ok := t.FindByID(id)
	if !ok || res.UserID() != userID || res.MovieID() != movieID {
		return nil, false
	}
	return res, true
}

func (t *reservationTx) FindByCompositeKey(userID, movieID int64, start time.Time) (*reservation.Reservation, bool) {
	for _, res := range t.items {
		if res.MatchesCompositeKey(userID, movieID, start) {
			return res, true
		}
	}
	return nil, false
}

func (t *reservationTx) ActiveForUser(userID int64) []*reservation.Reservation {
	var active []*reservation.Reservation
	for _, res := range t.items {
		if res.UserID() == userID && res.IsActive() {
			active = append(active, res)
		}
	}
	return active
}

func (t *reservationTx) ConfirmedQuantity(roomID, movieID int64, start time.Time, excludeID int64) int {
	total := 0
	for _, res := range t.items {
		if res.ID() == excludeID {
			continue
		}
		if res.Status() != reservation.StatusConfirmed {
			continue
		}
		if res.RoomID() == roomID && res.MovieID() == movieID && reservation.SameMinute(res.StartTime(), start) {
			total += res.Quantity()
		}
	}
	return total
}

func (t *reservationTx) Insert(build func(id int64) (*reservation.Reservation, error)) (*reservation.Reservation, error) {
	res, err := build(t.nextID)
	if err != nil {
		return nil, err
	}
	t.nextID++
	t.items = append(t.items, res)
	t.dirty = true
	return res, nil
}

func (t *reservationTx) MarkDirty() {
	t.dirty = true
}
