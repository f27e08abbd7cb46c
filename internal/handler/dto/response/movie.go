package response

import (
	"cinebook/internal/usecase/queries"
)

type MovieResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
	Overview    string  `json:"overview,omitempty"`
}

type MovieDetailsResponse struct {
	MovieResponse
	RuntimeMinutes int `json:"runtimeMinutes"`
}

func FromMovieView(rm *queries.MovieView) *MovieResponse {
	return &MovieResponse{
		ID:          rm.ID,
		Title:       rm.Title,
		PosterURL:   rm.PosterURL,
		ReleaseDate: rm.ReleaseDate,
		VoteAverage: rm.VoteAverage,
		Overview:    rm.Overview,
	}
}

func FromMovieDetailsView(rm *queries.MovieDetailsView) *MovieDetailsResponse {
	return &MovieDetailsResponse{
		MovieResponse:  *FromMovieView(&rm.MovieView),
		RuntimeMinutes: rm.RuntimeMinutes,
	}
}
