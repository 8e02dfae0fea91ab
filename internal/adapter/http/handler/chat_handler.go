package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

// ChatHandler handles chat relay HTTP requests
type ChatHandler struct {
	chatUC usecase.ChatUsecase
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatUC usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chatUC: chatUC}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var input usecase.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleChatError(c, chatBindError(err))
		return
	}

	output, err := h.chatUC.Ask(c.Request.Context(), c.GetString("request_id"), &input)
	if err != nil {
		HandleChatError(c, err)
		return
	}

	respondReply(c, http.StatusOK, output.Reply)
}

// History handles GET /api/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	pagination := ParsePagination(c)

	output, err := h.chatUC.History(c.Request.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// chatBindError classifies a body that could not be bound. A body without a
// readable message carries no question; a mistyped side field is invalid input.
func chatBindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "message" {
		return usecase.ErrInvalidRequest
	}
	return usecase.ErrEmptyMessage
}
