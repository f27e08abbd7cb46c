package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "cinebook/internal/handler/dto/response"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the admin-only user management endpoints.
type AdminHandler struct {
	userCommands commands.UserCommands
	userQueries  queries.UserQueries
}

func NewAdminHandler(userCommands commands.UserCommands, userQueries queries.UserQueries) *AdminHandler {
	return &AdminHandler{
		userCommands: userCommands,
		userQueries:  userQueries,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	views, err := h.userQueries.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.UserResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromUserView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	if err := h.userCommands.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
