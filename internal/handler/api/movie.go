package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "cinebook/internal/handler/dto/response"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieQueries   queries.MovieQueries
	sessionQueries queries.SessionQueries
}

func NewMovieHandler(movieQueries queries.MovieQueries, sessionQueries queries.SessionQueries) *MovieHandler {
	return &MovieHandler{
		movieQueries:   movieQueries,
		sessionQueries: sessionQueries,
	}
}

func (h *MovieHandler) ListMovies(c *gin.Context) {
	category := queries.MovieCategory(c.DefaultQuery("category", string(queries.CategoryNowPlaying)))
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid movie category",
		})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	views, err := h.movieQueries.ListMovies(c.Request.Context(), category, page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Movie catalog is unavailable",
		})
		return
	}

	response := make([]*resdto.MovieResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromMovieView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	view, err := h.movieQueries.GetMovie(c.Request.Context(), id)
	if err != nil {
		h.abortWithCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMovieDetailsView(view))
}

// GetMovieSessions lists today's and tomorrow's showtimes for a movie. The
// movie's runtime drives the session end times, so the catalog is consulted
// first.
func (h *MovieHandler) GetMovieSessions(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	details, err := h.movieQueries.GetMovie(c.Request.Context(), id)
	if err != nil {
		h.abortWithCatalogError(c, err)
		return
	}

	view, err := h.sessionQueries.TimesForMovie(c.Request.Context(), id, details.RuntimeMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMovieShowtimesView(view))
}

func (h *MovieHandler) movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid movie ID format",
		})
		return 0, false
	}
	return id, true
}

func (h *MovieHandler) abortWithCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Movie not found",
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Movie catalog is unavailable",
		})
	}
}
