package api

import (
	"errors"
	"net/http"
	"strconv"

	"cinebook/internal/domain/reservation"
	reqdto "cinebook/internal/handler/dto/request"
	resdto "cinebook/internal/handler/dto/response"
	"cinebook/internal/handler/middleware"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	sel, err := req.ToSelection()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid screening version",
		})
		return
	}

	view, err := h.reservationCommands.CreatePending(c.Request.Context(), userID, sel)
	if err != nil {
		// Picking the same session again resumes the open pending booking
		// instead of failing.
		if errors.Is(err, errs.ErrDuplicateReservation) {
			if pending, qErr := h.reservationQueries.PendingBySession(c.Request.Context(), userID, sel.MovieID, sel.StartTime); qErr == nil {
				c.JSON(http.StatusOK, resdto.FromReservationView(pending))
				return
			}
		}
		switch {
		case errors.Is(err, errs.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time slot",
			})
		case errors.Is(err, errs.ErrSessionPassed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Session has already started",
			})
		case errors.Is(err, errs.ErrOverlap):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation overlaps an existing booking",
			})
		case errors.Is(err, errs.ErrDuplicateReservation):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Session is already booked",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	view, ok := h.ownedReservation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.reservationQueries.UserReservations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserReservationsView(view))
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	current, ok := h.ownedReservation(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	p, err := req.ToPatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid field value",
		})
		return
	}

	keys := commands.MatchKeys{
		ID:      current.ID,
		UserID:  current.UserID,
		MovieID: current.MovieID,
	}
	view, err := h.reservationCommands.UpdateReservation(c.Request.Context(), keys, p)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	current, ok := h.ownedReservation(c)
	if !ok {
		return
	}

	var req reqdto.ConfirmReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	category, err := req.Category()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ticket category",
		})
		return
	}

	view, err := h.reservationCommands.ConfirmReservation(c.Request.Context(), current.ID, category, req.Quantity)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	current, ok := h.ownedReservation(c)
	if !ok {
		return
	}

	view, err := h.reservationCommands.CancelReservation(c.Request.Context(), current.ID)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) ReserveAgain(c *gin.Context) {
	current, ok := h.ownedReservation(c)
	if !ok {
		return
	}

	view, err := h.reservationCommands.ReserveAgain(c.Request.Context(), current.ID)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// ownedReservation resolves the :id path param and enforces that the caller
// owns the reservation. A foreign reservation reads as not found so ids do
// not leak across users.
func (h *ReservationHandler) ownedReservation(c *gin.Context) (*queries.ReservationView, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return nil, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return nil, false
	}

	view, err := h.reservationQueries.GetReservation(c.Request.Context(), id)
	if err != nil || view.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
		return nil, false
	}
	return view, true
}

func (h *ReservationHandler) abortWithCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, errs.ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time slot",
		})
	case errors.Is(err, reservation.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ticket quantity",
		})
	case errors.Is(err, errs.ErrImmutableKeys):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation identity cannot be changed",
		})
	case errors.Is(err, errs.ErrSessionPassed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Session has already started",
		})
	case errors.Is(err, reservation.ErrReservationCancelled):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation is cancelled",
		})
	case errors.Is(err, reservation.ErrNotCancelled):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation is not cancelled",
		})
	case errors.Is(err, errs.ErrOverlap):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation overlaps an existing booking",
		})
	case errors.Is(err, errs.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Not enough seats left",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
