package queries

import (
	"context"

	"cinebook/internal/infra/tmdb"
	"cinebook/internal/pkg/errs"
)

// MovieCategory selects which catalog list to browse.
type MovieCategory string

const (
	CategoryNowPlaying MovieCategory = "now_playing"
	CategoryPopular    MovieCategory = "popular"
	CategoryTopRated   MovieCategory = "top_rated"
)

func (c MovieCategory) IsValid() bool {
	switch c {
	case CategoryNowPlaying, CategoryPopular, CategoryTopRated:
		return true
	default:
		return false
	}
}

var ErrInvalidMovieCategory = errs.New("invalid movie category")

// CatalogClient is the third-party movie catalog consumed as a black box.
type CatalogClient interface {
	NowPlaying(ctx context.Context, page int) ([]tmdb.Movie, error)
	Popular(ctx context.Context, page int) ([]tmdb.Movie, error)
	TopRated(ctx context.Context, page int) ([]tmdb.Movie, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
	ImageURL(path, size string) string
}

type MovieQueries interface {
	ListMovies(ctx context.Context, category MovieCategory, page int) ([]*MovieView, error)
	GetMovie(ctx context.Context, id int64) (*MovieDetailsView, error)
}

type movieQueriesImpl struct {
	catalog CatalogClient
}

func NewMovieQueries(catalog CatalogClient) MovieQueries {
	return &movieQueriesImpl{catalog: catalog}
}

func (q *movieQueriesImpl) ListMovies(ctx context.Context, category MovieCategory, page int) ([]*MovieView, error) {
	if page < 1 {
		page = 1
	}

	var (
		movies []tmdb.Movie
		err    error
	)
	switch category {
	case CategoryNowPlaying:
		movies, err = q.catalog.NowPlaying(ctx, page)
	case CategoryPopular:
		movies, err = q.catalog.Popular(ctx, page)
	case CategoryTopRated:
		movies, err = q.catalog.TopRated(ctx, page)
	default:
		return nil, ErrInvalidMovieCategory
	}
	if err != nil {
		return nil, err
	}

	views := make([]*MovieView, 0, len(movies))
	for _, m := range movies {
		views = append(views, q.newMovieView(m))
	}
	return views, nil
}

func (q *movieQueriesImpl) GetMovie(ctx context.Context, id int64) (*MovieDetailsView, error) {
	details, err := q.catalog.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	return &MovieDetailsView{
		MovieView:      *q.newMovieView(details.Movie),
		RuntimeMinutes: details.Runtime,
	}, nil
}

func (q *movieQueriesImpl) newMovieView(m tmdb.Movie) *MovieView {
	return &MovieView{
		ID:          m.ID,
		Title:       m.Title,
		PosterURL:   q.catalog.ImageURL(m.PosterPath, tmdb.PosterSizeMedium),
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
	}
}
