package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/entity"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/repository"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/service"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/metrics"
)

// ChatInput represents one chat request
type ChatInput struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

// ChatOutput represents the reply sent back to the user
type ChatOutput struct {
	Reply string `json:"reply"`
}

// ChatHistoryOutput represents a page of stored exchanges
type ChatHistoryOutput struct {
	Exchanges []*entity.ChatExchange `json:"exchanges"`
	Total     int64                  `json:"total"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
	HasMore   bool                   `json:"has_more"`
}

// ChatUsecase defines the interface for the chat relay
type ChatUsecase interface {
	Ask(ctx context.Context, requestID string, input *ChatInput) (*ChatOutput, error)
	History(ctx context.Context, limit, offset int) (*ChatHistoryOutput, error)
}

type chatUsecase struct {
	generator service.TextGenerator
	chatRepo  repository.ChatRepository
	logger    *zap.Logger
}

// NewChatUsecase creates a new chat usecase. chatRepo may be nil, in which
// case exchanges are not stored and History reports ErrHistoryUnavailable.
func NewChatUsecase(generator service.TextGenerator, chatRepo repository.ChatRepository, logger *zap.Logger) ChatUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chatUsecase{
		generator: generator,
		chatRepo:  chatRepo,
		logger:    logger,
	}
}

func (u *chatUsecase) Ask(ctx context.Context, requestID string, input *ChatInput) (*ChatOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		metrics.ChatRequestsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrEmptyMessage
	}
	lang := entity.ParseLanguage(input.Lang)

	start := time.Now()
	text, err := u.generator.Generate(ctx, BuildPrompt(message, lang))
	latency := time.Since(start)
	metrics.GenerationDuration.Observe(latency.Seconds())

	if err != nil {
		u.logger.Error("Generation failed",
			zap.String("request_id", requestID),
			zap.String("provider", u.generator.Name()),
			zap.Error(err))
		metrics.ChatRequestsTotal.WithLabelValues(string(entity.ChatOutcomeFailed)).Inc()
		u.record(ctx, entity.NewChatExchange(requestID, lang, message, ReplyUnavailable, entity.ChatOutcomeFailed, latency))
		return nil, ErrGenerationFailed
	}

	reply := strings.TrimSpace(text)
	outcome := entity.ChatOutcomeAnswered
	if reply == "" {
		reply = ReplyNoAnswer
		outcome = entity.ChatOutcomeFallback
	}
	metrics.ChatRequestsTotal.WithLabelValues(string(outcome)).Inc()
	u.record(ctx, entity.NewChatExchange(requestID, lang, message, reply, outcome, latency))

	return &ChatOutput{Reply: reply}, nil
}

// record stores an exchange. Failures are logged only.
func (u *chatUsecase) record(ctx context.Context, exchange *entity.ChatExchange) {
	if u.chatRepo == nil {
		return
	}
	if err := u.chatRepo.Create(ctx, exchange); err != nil {
		u.logger.Warn("Failed to store chat exchange",
			zap.String("request_id", exchange.RequestID),
			zap.Error(err))
	}
}

func (u *chatUsecase) History(ctx context.Context, limit, offset int) (*ChatHistoryOutput, error) {
	if u.chatRepo == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	exchanges, total, err := u.chatRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if exchanges == nil {
		exchanges = []*entity.ChatExchange{}
	}

	return &ChatHistoryOutput{
		Exchanges: exchanges,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		HasMore:   int64(offset+len(exchanges)) < total,
	}, nil
}
