package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"cinebook/internal/pkg/config"
	"cinebook/internal/pkg/errs"
)

// Poster sizes exposed by the image CDN.
const (
	PosterSizeSmall    = "w185"
	PosterSizeMedium   = "w342"
	PosterSizeLarge    = "w500"
	PosterSizeOriginal = "original"
)

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type MovieDetails struct {
	Movie
	Runtime int `json:"runtime"`
}

type listResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

// Client talks to the TMDB v3 REST API using a bearer token.
type Client struct {
	baseURL      string
	imageBaseURL string
	token        string
	httpClient   *http.Client
}

func NewClient(cfg config.TMDBConfig) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		token:        cfg.APIToken,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) NowPlaying(ctx context.Context, page int) ([]Movie, error) {
	return c.list(ctx, "/movie/now_playing", page)
}

func (c *Client) Popular(ctx context.Context, page int) ([]Movie, error) {
	return c.list(ctx, "/movie/popular", page)
}

func (c *Client) TopRated(ctx context.Context, page int) ([]Movie, error) {
	return c.list(ctx, "/movie/top_rated", page)
}

func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// ImageURL resolves a relative poster path against the image CDN. An empty
// path means the catalog has no poster for that movie.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + size + path
}

func (c *Client) list(ctx context.Context, path string, page int) ([]Movie, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	var resp listResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "catalog request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.ErrMovieNotFound
	case resp.StatusCode != http.StatusOK:
		return errs.New(fmt.Sprintf("catalog returned status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode catalog response")
	}
	return nil
}
