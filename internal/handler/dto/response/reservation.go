package response

import (
	"time"

	"cinebook/internal/usecase/queries"
)

type ReservationResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	MovieID         int64     `json:"movieId"`
	RoomID          int64     `json:"roomId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Version         string    `json:"version"`
	TicketCategory  string    `json:"ticketCategory"`
	Quantity        int       `json:"quantity"`
	PriceCents      int64     `json:"priceCents"`
	MovieTitle      string    `json:"movieTitle,omitempty"`
	MoviePosterPath string    `json:"moviePosterPath,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type UserReservationsResponse struct {
	Pending   []*ReservationResponse `json:"pending"`
	Confirmed []*ReservationResponse `json:"confirmed"`
	Cancelled []*ReservationResponse `json:"cancelled"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		MovieID:         rm.MovieID,
		RoomID:          rm.RoomID,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Version:         rm.Version,
		TicketCategory:  rm.TicketCategory,
		Quantity:        rm.Quantity,
		PriceCents:      rm.PriceCents,
		MovieTitle:      rm.MovieTitle,
		MoviePosterPath: rm.MoviePosterPath,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromUserReservationsView(rm *queries.UserReservationsView) *UserReservationsResponse {
	return &UserReservationsResponse{
		Pending:   fromReservationViews(rm.Pending),
		Confirmed: fromReservationViews(rm.Confirmed),
		Cancelled: fromReservationViews(rm.Cancelled),
	}
}

func fromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}
