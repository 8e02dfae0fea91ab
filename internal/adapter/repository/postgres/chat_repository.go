package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/entity"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/repository"
)

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat history repository
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, exchange *entity.ChatExchange) error {
	return r.db.WithContext(ctx).Create(exchange).Error
}

func (r *chatRepository) List(ctx context.Context, limit, offset int) ([]*entity.ChatExchange, int64, error) {
	var exchanges []*entity.ChatExchange
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.ChatExchange{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&exchanges).Error
	if err != nil {
		return nil, 0, err
	}

	return exchanges, total, nil
}
