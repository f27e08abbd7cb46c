//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinebook/internal/domain/room"
	"cinebook/internal/handler"
	"cinebook/internal/handler/api"
	"cinebook/internal/handler/middleware"
	"cinebook/internal/infra/repository"
	"cinebook/internal/infra/store"
	"cinebook/internal/infra/tmdb"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/config"
	"cinebook/internal/pkg/jwt"
	"cinebook/internal/usecase"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type testServer struct {
	engine *gin.Engine
	clock  *clock.MockClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.Store.Dir = t.TempDir()

	s, err := store.New(cfg.Store)
	require.NoError(t, err)

	clk := clock.NewMockClock(now)
	rooms := room.DefaultCatalog()
	jwtService := jwt.NewService(cfg.JWT.Secret, time.Hour)

	reservations := repository.NewReservationRepository(s)
	users := repository.NewUserRepository(s)

	reservationCommands := commands.NewReservationCommands(reservations, rooms, clk)
	reservationQueries := queries.NewReservationQueries(reservations)
	sessionQueries := queries.NewSessionQueries(rooms, reservations, clk)
	movieQueries := queries.NewMovieQueries(tmdb.NewClient(cfg.TMDB))
	authCommands := commands.NewAuthCommands(users, jwtService, clk)
	userCommands := commands.NewUserCommands(users)
	userQueries := queries.NewUserQueries(users)

	engine := gin.New()
	handler.NewRouter(
		engine,
		cfg,
		api.NewAuthHandler(authCommands, userQueries),
		api.NewMovieHandler(movieQueries, sessionQueries),
		api.NewReservationHandler(reservationCommands, reservationQueries),
		api.NewAdminHandler(userCommands, userQueries),
		middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService)),
	)

	return &testServer{engine: engine, clock: clk}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) tokenFor(t *testing.T, userID int64) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    fmt.Sprintf("user%d@example.com", userID),
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    fmt.Sprintf("user%d@example.com", userID),
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func createBody() gin.H {
	return gin.H{
		"movie_id":    550,
		"room_id":     1,
		"start_time":  "2026-03-14T16:00:00Z",
		"end_time":    "2026-03-14T18:00:00Z",
		"version":     "VO",
		"movie_title": "Heat",
	}
}

func TestReservationEndpoints(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.request(t, http.MethodPost, "/api/reservations", "", createBody())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("full booking lifecycle over HTTP", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.tokenFor(t, 1)

		// Create
		rec := ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var created struct {
			ID         int64  `json:"id"`
			Status     string `json:"status"`
			PriceCents int64  `json:"priceCents"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "PENDING", created.Status)
		assert.Equal(t, int64(1000), created.PriceCents)

		// Confirm
		rec = ts.request(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/confirm", created.ID), token, gin.H{
			"ticket_category": "STUDENT",
			"quantity":        2,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var confirmed struct {
			Status     string `json:"status"`
			PriceCents int64  `json:"priceCents"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmed))
		assert.Equal(t, "CONFIRMED", confirmed.Status)
		assert.Equal(t, int64(1700), confirmed.PriceCents)

		// List shows it under confirmed
		rec = ts.request(t, http.MethodGet, "/api/reservations", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var listed struct {
			Confirmed []json.RawMessage `json:"confirmed"`
			Pending   []json.RawMessage `json:"pending"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Len(t, listed.Confirmed, 1)
		assert.Empty(t, listed.Pending)

		// Cancel, then book the same seat again
		rec = ts.request(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", created.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.request(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/rebook", created.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var rebooked struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rebooked))
		assert.Equal(t, "CONFIRMED", rebooked.Status)
	})

	t.Run("recreating a pending booking resumes it", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.tokenFor(t, 1)

		rec := ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var first struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

		rec = ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		require.Equal(t, http.StatusOK, rec.Code)

		var second struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "PENDING", second.Status)
	})

	t.Run("overlapping booking is a conflict", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.tokenFor(t, 1)

		rec := ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		body := createBody()
		body["movie_id"] = 99
		body["start_time"] = "2026-03-14T17:00:00Z"
		body["end_time"] = "2026-03-14T19:00:00Z"

		rec = ts.request(t, http.MethodPost, "/api/reservations", token, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("foreign reservations read as not found", func(t *testing.T) {
		ts := newTestServer(t)
		owner := ts.tokenFor(t, 1)
		other := ts.tokenFor(t, 2)

		rec := ts.request(t, http.MethodPost, "/api/reservations", owner, createBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var created struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = ts.request(t, http.MethodGet, fmt.Sprintf("/api/reservations/%d", created.ID), other, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("a session that has started cannot be booked", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.tokenFor(t, 1)
		ts.clock.Set(time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC))

		rec := ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("identity patch is rejected", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.tokenFor(t, 1)

		rec := ts.request(t, http.MethodPost, "/api/reservations", token, createBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var created struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = ts.request(t, http.MethodPatch, fmt.Sprintf("/api/reservations/%d", created.ID), token, gin.H{
			"movie_id": 99,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Run("first registered user can manage accounts", func(t *testing.T) {
		ts := newTestServer(t)
		admin := ts.tokenFor(t, 1)
		ts.tokenFor(t, 2)

		rec := ts.request(t, http.MethodGet, "/api/admin/users", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var users []struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		require.Len(t, users, 2)
		assert.Equal(t, "admin", users[0].Role)
		assert.Equal(t, "user", users[1].Role)

		rec = ts.request(t, http.MethodDelete, "/api/admin/users/2", admin, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("regular users are forbidden", func(t *testing.T) {
		ts := newTestServer(t)
		ts.tokenFor(t, 1)
		regular := ts.tokenFor(t, 2)

		rec := ts.request(t, http.MethodGet, "/api/admin/users", regular, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
