package converter

import (
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

// ReservationRecord is the persisted shape of a reservation. Field names
// line up with the entity's getters so copier can project the entity onto
// the record.
type ReservationRecord struct {
	ID              int64                      `json:"id"`
	UserID          int64                      `json:"userId"`
	MovieID         int64                      `json:"movieId"`
	RoomID          int64                      `json:"roomId"`
	StartTime       time.Time                  `json:"startTime"`
	EndTime         time.Time                  `json:"endTime"`
	Version         reservation.Version        `json:"version"`
	TicketCategory  reservation.TicketCategory `json:"ticketCategory"`
	Quantity        int                        `json:"quantity"`
	PriceCents      int64                      `json:"priceCents"`
	MovieTitle      string                     `json:"movieTitle,omitempty"`
	MoviePosterPath string                     `json:"moviePosterPath,omitempty"`
	Status          reservation.Status         `json:"status"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

func ToReservationRecord(res *reservation.Reservation) (ReservationRecord, error) {
	var rec ReservationRecord
	if err := copier.Copy(&rec, res); err != nil {
		return ReservationRecord{}, errs.Wrap(err, "serialize reservation")
	}
	return rec, nil
}

func ToReservationEntity(rec ReservationRecord) *reservation.Reservation {
	return reservation.ReconstructReservation(
		rec.ID, rec.UserID, rec.MovieID, rec.RoomID,
		reservation.ReconstructTimeSlot(rec.StartTime, rec.EndTime),
		rec.Version,
		rec.TicketCategory,
		rec.Quantity,
		reservation.NewMoney(rec.PriceCents),
		rec.MovieTitle, rec.MoviePosterPath,
		rec.Status,
		rec.CreatedAt, rec.UpdatedAt,
	)
}
