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

// HandleServiceError maps service sentinel errors onto HTTP responses.
// Recoverable failures keep their reason string so the client can offer retry.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation),
		errors.Is(err, ErrIncompleteAnswers):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrTripNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrLookupMiss):
		RespondError(c, http.StatusNotFound, "Place details not found")
	case errors.Is(err, ErrOutOfRange):
		// UI-driven indices should never miss; log loudly and reject the call.
		log.Printf("out of range access: %v", err)
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrSubmissionPending), errors.Is(err, ErrMutationPending):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSubmissionFailed), errors.Is(err, ErrMutationFailed),
		errors.Is(err, ErrUnexpectedAI):
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
