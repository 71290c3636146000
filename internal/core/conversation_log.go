// ABOUTME: ConversationLog appends every chat exchange for future context
// ABOUTME: Best-effort: a failed write is logged and never changes the reply
package core

import (
	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// ConversationLog records chat turns
type ConversationLog struct {
	store  storage.ConversationStore
	logger *log.Logger
}

// NewConversationLog creates a log writing to store
func NewConversationLog(store storage.ConversationStore, logger *log.Logger) *ConversationLog {
	return &ConversationLog{store: store, logger: orDiscard(logger)}
}

// Record appends one turn and reports whether it was stored
func (l *ConversationLog) Record(userMessage, reply string) bool {
	turn, err := models.NewConversationTurn(userMessage, reply)
	if err != nil {
		l.logger.Warn("conversation not recorded", "err", err)
		return false
	}
	if err := l.store.AddConversation(turn); err != nil {
		l.logger.Error("failed to record conversation", "err", err)
		return false
	}
	return true
}
