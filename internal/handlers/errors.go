package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thermal_planner/internal/building"
	"thermal_planner/internal/catalog"
	"thermal_planner/internal/repository"
	"thermal_planner/internal/service"
	"thermal_planner/internal/simulation"
)

const errInternal = "internal error"

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, building.ErrRoomOverlap):
		return http.StatusConflict
	case errors.Is(err, building.ErrInvalidReference),
		errors.Is(err, repository.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, building.ErrInvalidInput),
		errors.Is(err, simulation.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidParams),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, catalog.ErrUnknownEntry):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if id, ok := userID(c); ok {
			fields = append(fields, "user_id", id)
		}
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError answers with the status matching err. Client errors carry the error text,
// server errors a generic message.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = errInternal
	}
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}
