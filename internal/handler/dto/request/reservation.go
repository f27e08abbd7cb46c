package request

import (
	"time"

	"cinebook/internal/domain/reservation"
	"cinebook/internal/usecase/commands"
)

type CreateReservationRequest struct {
	MovieID         int64     `json:"movie_id" binding:"required"`
	RoomID          int64     `json:"room_id" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	Version         string    `json:"version" binding:"required"`
	MovieTitle      string    `json:"movie_title,omitempty"`
	MoviePosterPath string    `json:"movie_poster_path,omitempty"`
}

func (r CreateReservationRequest) ToSelection() (commands.SessionSelection, error) {
	version := reservation.Version(r.Version)
	if !version.IsValid() {
		return commands.SessionSelection{}, reservation.ErrInvalidVersion
	}

	return commands.SessionSelection{
		MovieID:         r.MovieID,
		RoomID:          r.RoomID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Version:         version,
		MovieTitle:      r.MovieTitle,
		MoviePosterPath: r.MoviePosterPath,
	}, nil
}

// UpdateReservationRequest carries a partial update; absent fields keep the
// stored value. Identity fields are accepted so the write side can reject an
// attempt to change them.
type UpdateReservationRequest struct {
	ID              *int64     `json:"id,omitempty"`
	UserID          *int64     `json:"user_id,omitempty"`
	MovieID         *int64     `json:"movie_id,omitempty"`
	RoomID          *int64     `json:"room_id,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Version         *string    `json:"version,omitempty"`
	TicketCategory  *string    `json:"ticket_category,omitempty"`
	Quantity        *int       `json:"quantity,omitempty"`
	Status          *string    `json:"status,omitempty"`
	MovieTitle      *string    `json:"movie_title,omitempty"`
	MoviePosterPath *string    `json:"movie_poster_path,omitempty"`
}

func (r UpdateReservationRequest) ToPatch() (commands.ReservationPatch, error) {
	p := commands.ReservationPatch{
		ID:      r.ID,
		UserID:  r.UserID,
		MovieID: r.MovieID,
	}
	p.RoomID = r.RoomID
	p.StartTime = r.StartTime
	p.EndTime = r.EndTime
	p.Quantity = r.Quantity
	p.MovieTitle = r.MovieTitle
	p.MoviePosterPath = r.MoviePosterPath

	if r.Version != nil {
		version := reservation.Version(*r.Version)
		if !version.IsValid() {
			return commands.ReservationPatch{}, reservation.ErrInvalidVersion
		}
		p.Version = &version
	}
	if r.TicketCategory != nil {
		category := reservation.TicketCategory(*r.TicketCategory)
		if !category.IsValid() {
			return commands.ReservationPatch{}, reservation.ErrInvalidTicketCategory
		}
		p.TicketCategory = &category
	}
	if r.Status != nil {
		status := reservation.Status(*r.Status)
		if !status.IsValid() {
			return commands.ReservationPatch{}, reservation.ErrInvalidStatus
		}
		p.Status = &status
	}
	return p, nil
}

type ConfirmReservationRequest struct {
	TicketCategory string `json:"ticket_category" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
}

func (r ConfirmReservationRequest) Category() (reservation.TicketCategory, error) {
	category := reservation.TicketCategory(r.TicketCategory)
	if !category.IsValid() {
		return "", reservation.ErrInvalidTicketCategory
	}
	return category, nil
}
