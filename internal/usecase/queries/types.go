package queries

import (
	"time"

	"cinebook/internal/domain/reservation"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	MovieID         int64     `json:"movie_id"`
	RoomID          int64     `json:"room_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Version         string    `json:"version"`
	TicketCategory  string    `json:"ticket_category"`
	Quantity        int       `json:"quantity"`
	PriceCents      int64     `json:"price_cents"`
	MovieTitle      string    `json:"movie_title,omitempty"`
	MoviePosterPath string    `json:"movie_poster_path,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserReservationsView groups a user's reservations by lifecycle stage,
// each bucket sorted by session start.
type UserReservationsView struct {
	Pending   []*ReservationView `json:"pending"`
	Confirmed []*ReservationView `json:"confirmed"`
	Cancelled []*ReservationView `json:"cancelled"`
}

type SessionView struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	RoomName  string    `json:"room_name"`
	MovieID   int64     `json:"movie_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Version   string    `json:"version"`
	Capacity  int       `json:"capacity"`
	SeatsLeft int       `json:"seats_left"`
}

// IsPast reports whether the candidate showtime has already started.
func (v *SessionView) IsPast(now time.Time) bool {
	return !v.StartTime.After(now)
}

// MovieShowtimesView is the bookable slot list for a movie, split between
// local today and tomorrow.
type MovieShowtimesView struct {
	Today    []*SessionView `json:"today"`
	Tomorrow []*SessionView `json:"tomorrow"`
}

type MovieView struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
}

type MovieDetailsView struct {
	MovieView
	RuntimeMinutes int `json:"runtime_minutes"`
}

type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReservationView projects a domain reservation onto the read model.
func NewReservationView(r *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:              r.ID(),
		UserID:          r.UserID(),
		MovieID:         r.MovieID(),
		RoomID:          r.RoomID(),
		StartTime:       r.StartTime(),
		EndTime:         r.EndTime(),
		Version:         r.Version().String(),
		TicketCategory:  r.TicketCategory().String(),
		Quantity:        r.Quantity(),
		PriceCents:      r.PriceCents(),
		MovieTitle:      r.MovieTitle(),
		MoviePosterPath: r.MoviePosterPath(),
		Status:          r.Status().String(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}
