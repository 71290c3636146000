// ABOUTME: Conversation storage operations for SQLite
// ABOUTME: Append-only log of user messages and coach replies
package sqlite

import (
	"github.com/harper/daily-coach/internal/models"
)

// ConversationStore handles conversation turn persistence
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a new ConversationStore
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Add appends a turn
func (s *ConversationStore) Add(turn *models.ConversationTurn) error {
	_, err := s.db.Exec(`
		INSERT INTO conversations (id, user_message, ai_response, timestamp)
		VALUES (?, ?, ?, ?)
	`, turn.ID, turn.UserMessage, turn.AIResponse, turn.Timestamp)
	return err
}

// Recent retrieves the latest turns, newest first
func (s *ConversationStore) Recent(limit int) ([]models.ConversationTurn, error) {
	query := `
		SELECT id, user_message, ai_response, timestamp
		FROM conversations
		ORDER BY timestamp DESC, rowid DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var turns []models.ConversationTurn
	for rows.Next() {
		var turn models.ConversationTurn
		if err := rows.Scan(&turn.ID, &turn.UserMessage, &turn.AIResponse, &turn.Timestamp); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}
