package response

import (
	"time"

	"cinebook/internal/usecase/queries"
)

type SessionResponse struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	RoomName  string    `json:"roomName"`
	MovieID   int64     `json:"movieId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Version   string    `json:"version"`
	Capacity  int       `json:"capacity"`
	SeatsLeft int       `json:"seatsLeft"`
}

type MovieShowtimesResponse struct {
	Today    []*SessionResponse `json:"today"`
	Tomorrow []*SessionResponse `json:"tomorrow"`
}

func FromMovieShowtimesView(rm *queries.MovieShowtimesView) *MovieShowtimesResponse {
	return &MovieShowtimesResponse{
		Today:    fromSessionViews(rm.Today),
		Tomorrow: fromSessionViews(rm.Tomorrow),
	}
}

func fromSessionViews(views []*queries.SessionView) []*SessionResponse {
	out := make([]*SessionResponse, len(views))
	for i, v := range views {
		out[i] = &SessionResponse{
			ID:        v.ID,
			RoomID:    v.RoomID,
			RoomName:  v.RoomName,
			MovieID:   v.MovieID,
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
			Version:   v.Version,
			Capacity:  v.Capacity,
			SeatsLeft: v.SeatsLeft,
		}
	}
	return out
}
