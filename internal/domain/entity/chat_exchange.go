package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatOutcome records how a chat request was answered
type ChatOutcome string

const (
	// ChatOutcomeAnswered means the model returned usable text
	ChatOutcomeAnswered ChatOutcome = "answered"
	// ChatOutcomeFallback means the model returned nothing and the fallback reply was sent
	ChatOutcomeFallback ChatOutcome = "fallback"
	// ChatOutcomeFailed means generation errored and the apology was sent
	ChatOutcomeFailed ChatOutcome = "failed"
)

// ChatExchange is one answered chat request
type ChatExchange struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	RequestID string      `json:"request_id" gorm:"type:varchar(64);index"`
	Lang      Language    `json:"lang" gorm:"type:varchar(10);not null;default:'auto'"`
	Message   string      `json:"message" gorm:"type:text;not null"`
	Reply     string      `json:"reply" gorm:"type:text;not null"`
	Outcome   ChatOutcome `json:"outcome" gorm:"type:varchar(20);not null"`
	LatencyMs int64       `json:"latency_ms" gorm:"default:0"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (ChatExchange) TableName() string {
	return "chat_exchanges"
}

// NewChatExchange creates an exchange with a fresh ID
func NewChatExchange(requestID string, lang Language, message, reply string, outcome ChatOutcome, latency time.Duration) *ChatExchange {
	return &ChatExchange{
		ID:        uuid.New(),
		RequestID: requestID,
		Lang:      lang,
		Message:   message,
		Reply:     reply,
		Outcome:   outcome,
		LatencyMs: latency.Milliseconds(),
	}
}
