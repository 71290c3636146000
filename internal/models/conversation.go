// ABOUTME: ConversationTurn records one user message and the coach's reply
// ABOUTME: Append-only history used to ground future replies
package models

import (
	"errors"
	"strings"
	"time"
)

// ConversationTurn represents a single chat exchange
type ConversationTurn struct {
	ID          string    `json:"id" yaml:"id"`
	UserMessage string    `json:"user_message" yaml:"user_message"`
	AIResponse  string    `json:"ai_response" yaml:"ai_response"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewConversationTurn creates a ConversationTurn with validation
func NewConversationTurn(userMessage, aiResponse string) (*ConversationTurn, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, errors.New("user message cannot be empty")
	}
	return &ConversationTurn{
		ID:          newID("turn"),
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		Timestamp:   time.Now(),
	}, nil
}
