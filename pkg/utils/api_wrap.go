package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrTourNotFound):
		RespondError(c, http.StatusNotFound, "Tour not found")
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrMalformedCompletion):
		log.Printf("Malformed completion: %v", err)
		RespondError(c, http.StatusUnprocessableEntity, "Generated itinerary was malformed, please retry")
	case errors.Is(err, ErrUpstreamUnavailable):
		log.Printf("Upstream unavailable: %v", err)
		RespondError(c, http.StatusBadGateway, "Itinerary generator is unavailable")
	case errors.Is(err, ErrAllocationExhausted):
		log.Printf("Allocation exhausted: %v", err)
		RespondError(c, http.StatusInternalServerError, "Could not allocate a tour id")
	case errors.Is(err, ErrPersistenceFailure):
		log.Printf("Persistence failure: %v", err)
		RespondError(c, http.StatusInternalServerError, "Failed to save the generated itinerary")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
