package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "empty message",
			err:                usecase.ErrEmptyMessage,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "EMPTY_MESSAGE",
			expectedMessage:    "Kripya koi prashn likhiye.",
		},
		{
			name:               "generation failed",
			err:                usecase.ErrGenerationFailed,
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "GENERATION_FAILED",
			expectedMessage:    usecase.ReplyUnavailable,
		},
		{
			name:               "history unavailable",
			err:                usecase.ErrHistoryUnavailable,
			expectedStatusCode: http.StatusServiceUnavailable,
			expectedCode:       "UNAVAILABLE",
			expectedMessage:    "chat history is not configured",
		},
		{
			name:               "model not loaded",
			err:                usecase.ErrModelNotLoaded,
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "MODEL_NOT_LOADED",
			expectedMessage:    "Model not loaded",
		},
		{
			name:               "reload failed",
			err:                &usecase.ReloadError{Err: errors.New("open crop.gob: no such file or directory")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "RELOAD_FAILED",
			expectedMessage:    "Reload failed: open crop.gob: no such file or directory",
		},
		{
			name:               "inference error",
			err:                &usecase.InferenceError{Err: errors.New("2 class labels for 3 probabilities")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "INFERENCE_ERROR",
			expectedMessage:    "Inference error: 2 class labels for 3 probabilities",
		},
		{
			name:               "invalid request",
			err:                usecase.ErrInvalidRequest,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    usecase.ReplyInvalidInput,
		},
		{
			name:               "unknown error",
			err:                errors.New("some unknown error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "INTERNAL_ERROR",
			expectedMessage:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapUsecaseError(tt.err)

			assert.Equal(t, tt.expectedStatusCode, result.StatusCode)
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.Equal(t, tt.expectedMessage, result.Message)
		})
	}
}

func TestHandleUsecaseError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
	}{
		{
			name:               "history unavailable",
			err:                usecase.ErrHistoryUnavailable,
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:               "internal error",
			err:                errors.New("internal"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleUsecaseError(c, tt.err)

			assert.Equal(t, tt.expectedStatusCode, w.Code)
		})
	}
}

func TestHandleModelError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	err := &usecase.InferenceError{Err: errors.New("column \"ph\" not found")}

	t.Run("verbose", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleModelError(c, err, true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"detail":"Inference error: column \"ph\" not found"}`, w.Body.String())
	})

	t.Run("quiet", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleModelError(c, err, false)

		assert.JSONEq(t, `{"detail":"Inference error"}`, w.Body.String())
	})
}

func TestHandleChatError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleChatError(c, usecase.ErrGenerationFailed)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"reply":"`+usecase.ReplyUnavailable+`"}`, w.Body.String())
}
