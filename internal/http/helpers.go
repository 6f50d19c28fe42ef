package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/audiobook-store/internal/services"
)

// Machine-readable error codes returned in ErrorResponse.Code.
const (
	CodeConflict           = "conflict"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_error"
	CodeStorageUnavailable = "storage_unavailable"
	CodeReadOnly           = "read_only"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message, Code: CodeNotFound})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: CodeConflict})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s]: %v", context, requestID(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeStorageUnavailable})
}

// respondServiceError maps a StoreService error onto the matching HTTP status.
func respondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondBadRequest(c, validationMessage(err))
	case errors.Is(err, services.ErrAlreadyPurchased):
		respondConflict(c, "Audiobook already purchased.")
	case errors.Is(err, services.ErrAudiobookNotFound):
		respondNotFound(c, "Audiobook not found.")
	case errors.Is(err, services.ErrProgressNotFound):
		respondNotFound(c, "No playback progress found.")
	default:
		respondInternalError(c, err, context)
	}
}

// validationMessage strips the sentinel prefix so clients see only the field message.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return services.ErrInvalidInput.Error()
	}
	return msg
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
