package reservation

import (
	"errors"
	"time"

	"cinebook/internal/pkg/patch"
)

var (
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrInvalidTicketCategory = errors.New("unknown ticket category")
	ErrInvalidVersion        = errors.New("unknown screening version")
	ErrInvalidStatus         = errors.New("invalid reservation status")
	ErrReservationCancelled  = errors.New("reservation is cancelled")
	ErrNotCancelled          = errors.New("reservation is not cancelled")
)

// Reservation is the sole persisted mutable entity of the booking core.
// id, userID and movieID are immutable once assigned; everything else is
// patched through the mutation methods, which keep the price derived from
// (ticketCategory, quantity) at all times.
type Reservation struct {
	id              int64
	userID          int64
	movieID         int64
	roomID          int64
	slot            TimeSlot
	version         Version
	ticketCategory  TicketCategory
	quantity        int
	price           Money
	movieTitle      string
	moviePosterPath string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewPendingReservation creates the pending booking a user gets when
// selecting a showtime: default category, one seat, derived price.
func NewPendingReservation(
	id, userID, movieID, roomID int64,
	slot TimeSlot,
	version Version,
	movieTitle, moviePosterPath string,
	now time.Time,
) (*Reservation, error) {
	if !version.IsValid() {
		return nil, ErrInvalidVersion
	}

	price, err := PriceFor(DefaultCategory, 1)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:              id,
		userID:          userID,
		movieID:         movieID,
		roomID:          roomID,
		slot:            slot,
		version:         version,
		ticketCategory:  DefaultCategory,
		quantity:        1,
		price:           price,
		movieTitle:      movieTitle,
		moviePosterPath: moviePosterPath,
		status:          StatusPending,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructReservation(
	id, userID, movieID, roomID int64,
	slot TimeSlot,
	version Version,
	ticketCategory TicketCategory,
	quantity int,
	price Money,
	movieTitle, moviePosterPath string,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		userID:          userID,
		movieID:         movieID,
		roomID:          roomID,
		slot:            slot,
		version:         version,
		ticketCategory:  ticketCategory,
		quantity:        quantity,
		price:           price,
		movieTitle:      movieTitle,
		moviePosterPath: moviePosterPath,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Reservation) ID() int64                      { return r.id }
func (r *Reservation) UserID() int64                  { return r.userID }
func (r *Reservation) MovieID() int64                 { return r.movieID }
func (r *Reservation) RoomID() int64                  { return r.roomID }
func (r *Reservation) Slot() TimeSlot                 { return r.slot }
func (r *Reservation) StartTime() time.Time           { return r.slot.Start() }
func (r *Reservation) EndTime() time.Time             { return r.slot.End() }
func (r *Reservation) Version() Version               { return r.version }
func (r *Reservation) TicketCategory() TicketCategory { return r.ticketCategory }
func (r *Reservation) Quantity() int                  { return r.quantity }
func (r *Reservation) Price() Money                   { return r.price }
func (r *Reservation) PriceCents() int64              { return r.price.Cents() }
func (r *Reservation) MovieTitle() string             { return r.movieTitle }
func (r *Reservation) MoviePosterPath() string        { return r.moviePosterPath }
func (r *Reservation) Status() Status                 { return r.status }
func (r *Reservation) CreatedAt() time.Time           { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time           { return r.updatedAt }

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// HasStarted reports whether the reserved session has begun. Past
// reservations are frozen: no mutation method may be applied to them.
func (r *Reservation) HasStarted(now time.Time) bool {
	return r.slot.HasStarted(now)
}

// IsSettledAs reports whether confirming with the given category and
// quantity would change anything. Used for the idempotent re-confirm no-op.
func (r *Reservation) IsSettledAs(category TicketCategory, quantity int) bool {
	return r.status == StatusConfirmed &&
		r.ticketCategory == category &&
		r.quantity == quantity
}

// MatchesCompositeKey reports identity at the (userID, movieID, start-minute)
// booking key.
func (r *Reservation) MatchesCompositeKey(userID, movieID int64, start time.Time) bool {
	return r.userID == userID && r.movieID == movieID && SameMinute(r.slot.Start(), start)
}

// Confirm settles the reservation with the final category and quantity and
// recomputes the price. Confirming a cancelled reservation is not a valid
// transition; that path goes through Reactivate.
func (r *Reservation) Confirm(category TicketCategory, quantity int, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrReservationCancelled
	}

	price, err := PriceFor(category, quantity)
	if err != nil {
		return err
	}

	r.ticketCategory = category
	r.quantity = quantity
	r.price = price
	r.status = StatusConfirmed
	r.updatedAt = now
	return nil
}

// Cancel marks the reservation cancelled. Idempotent.
func (r *Reservation) Cancel(now time.Time) {
	if r.status == StatusCancelled {
		return
	}
	r.status = StatusCancelled
	r.updatedAt = now
}

// Reactivate restores a cancelled reservation to confirmed, recomputing the
// price from its stored category and quantity.
func (r *Reservation) Reactivate(now time.Time) error {
	if r.status != StatusCancelled {
		return ErrNotCancelled
	}

	price, err := PriceFor(r.ticketCategory, r.quantity)
	if err != nil {
		return err
	}

	r.price = price
	r.status = StatusConfirmed
	r.updatedAt = now
	return nil
}

// Rebook overwrites a cancelled reservation in place with new slot details,
// resetting it to pending under the same id. Category and quantity carry
// over; the price is recomputed.
func (r *Reservation) Rebook(roomID int64, slot TimeSlot, version Version, movieTitle, moviePosterPath string, now time.Time) error {
	if r.status != StatusCancelled {
		return ErrNotCancelled
	}
	if !version.IsValid() {
		return ErrInvalidVersion
	}

	price, err := PriceFor(r.ticketCategory, r.quantity)
	if err != nil {
		return err
	}

	r.roomID = roomID
	r.slot = slot
	r.version = version
	r.movieTitle = movieTitle
	r.moviePosterPath = moviePosterPath
	r.price = price
	r.status = StatusPending
	r.createdAt = now
	r.updatedAt = now
	return nil
}

// Patch carries the mutable fields of a reservation. Identity fields are not
// patchable; attempts to alter them are rejected before Apply is reached.
type Patch struct {
	RoomID          *int64
	StartTime       *time.Time
	EndTime         *time.Time
	Version         *Version
	TicketCategory  *TicketCategory
	Quantity        *int
	Status          *Status
	MovieTitle      *string
	MoviePosterPath *string
}

// Apply merges the patch over the current record. Timestamps are normalized
// to the minute, and the price is recomputed from the merged category and
// quantity.
func (r *Reservation) Apply(p Patch, now time.Time) error {
	version := patch.Coalesce(p.Version, r.version)
	if !version.IsValid() {
		return ErrInvalidVersion
	}

	status := patch.Coalesce(p.Status, r.status)
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	slot := r.slot
	if p.StartTime != nil || p.EndTime != nil {
		merged, err := NewTimeSlot(
			patch.Coalesce(p.StartTime, r.slot.Start()),
			patch.Coalesce(p.EndTime, r.slot.End()),
		)
		if err != nil {
			return err
		}
		slot = merged
	}

	category := patch.Coalesce(p.TicketCategory, r.ticketCategory)
	quantity := patch.Coalesce(p.Quantity, r.quantity)
	price, err := PriceFor(category, quantity)
	if err != nil {
		return err
	}

	r.roomID = patch.Coalesce(p.RoomID, r.roomID)
	r.slot = slot
	r.version = version
	r.ticketCategory = category
	r.quantity = quantity
	r.price = price
	r.status = status
	r.movieTitle = patch.Coalesce(p.MovieTitle, r.movieTitle)
	r.moviePosterPath = patch.Coalesce(p.MoviePosterPath, r.moviePosterPath)
	r.updatedAt = now
	return nil
}
