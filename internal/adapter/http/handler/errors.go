package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// For chat errors Message is the reply shown to the user.
func MapUsecaseError(err error) ErrorResponse {
	var inferenceErr *usecase.InferenceError
	var reloadErr *usecase.ReloadError

	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "EMPTY_MESSAGE",
			Message:    usecase.ReplyEmptyMessage,
		}
	case errors.Is(err, usecase.ErrGenerationFailed):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "GENERATION_FAILED",
			Message:    usecase.ReplyUnavailable,
		}
	case errors.Is(err, usecase.ErrHistoryUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "UNAVAILABLE",
			Message:    "chat history is not configured",
		}
	case errors.Is(err, usecase.ErrModelNotLoaded):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "MODEL_NOT_LOADED",
			Message:    "Model not loaded",
		}
	case errors.As(err, &reloadErr):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "RELOAD_FAILED",
			Message:    "Reload failed: " + reloadErr.Err.Error(),
		}
	case errors.As(err, &inferenceErr):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INFERENCE_ERROR",
			Message:    "Inference error: " + inferenceErr.Err.Error(),
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    usecase.ReplyInvalidInput,
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// It maps the error to an HTTP status and sends a JSON error response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleChatError sends a chat error as a reply body
func HandleChatError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondReply(c, errResp.StatusCode, errResp.Message)
}

// HandleModelError sends a model server error as a detail body. When verbose
// is false the inference cause is left out.
func HandleModelError(c *gin.Context, err error, verbose bool) {
	errResp := MapUsecaseError(err)
	if errResp.Code == "INFERENCE_ERROR" && !verbose {
		errResp.Message = "Inference error"
	}
	respondDetail(c, errResp.StatusCode, errResp.Message)
}
