package repository

import (
	"context"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/entity"
)

// ChatRepository defines the interface for chat history operations
type ChatRepository interface {
	// Create stores one exchange
	Create(ctx context.Context, exchange *entity.ChatExchange) error

	// List retrieves exchanges newest first with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.ChatExchange, int64, error)
}
