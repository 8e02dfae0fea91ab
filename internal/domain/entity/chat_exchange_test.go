package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewChatExchange(t *testing.T) {
	ex := NewChatExchange("req-1", LanguageHindi, "dhaan kab boyein?", "June mein.", ChatOutcomeAnswered, 1500*time.Millisecond)

	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, "req-1", ex.RequestID)
	assert.Equal(t, LanguageHindi, ex.Lang)
	assert.Equal(t, "dhaan kab boyein?", ex.Message)
	assert.Equal(t, "June mein.", ex.Reply)
	assert.Equal(t, ChatOutcomeAnswered, ex.Outcome)
	assert.Equal(t, int64(1500), ex.LatencyMs)
	assert.Equal(t, "chat_exchanges", ChatExchange{}.TableName())
}
