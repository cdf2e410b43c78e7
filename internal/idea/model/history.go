package model

import (
	"context"
	"time"
)

// IdeaRecord is one successful generation kept in history.
type IdeaRecord struct {
	ID            string    `json:"id"`
	Request       string    `json:"request"`
	Idea          string    `json:"idea"`
	Encouragement string    `json:"encouragement"`
	Model         string    `json:"model"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryRepository interface {
	// Add stores a record as the newest entry
	Add(ctx context.Context, record *IdeaRecord) error

	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, limit int) ([]*IdeaRecord, error)

	// Clear removes every record
	Clear(ctx context.Context) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)
}
