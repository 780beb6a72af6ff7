package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"slidetext/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Reasons is populated for
// validation rejections so a caller sees every violation at once.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "VALIDATION_REJECTED", "file failed validation"
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrParseFailed):
		return http.StatusUnprocessableEntity, "PARSE_FAILED", "file could not be opened as a valid presentation"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation rejections attach the full reason list.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Error().Err(err).Interface("request_id", requestID).Msg("internal error")
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(status, APIResponse{
			Success: false,
			Error:   &APIError{Code: code, Message: msg, Reasons: vErr.Reasons},
		})
		return
	}
	RespondError(c, status, code, msg)
}
