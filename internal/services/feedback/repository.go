package feedback

import (
	"context"
	"fmt"

	"bella-vista/internal/database"
)

const insertFeedbackSQL = `
	INSERT INTO feedback (customer_name, feedback_text)
	VALUES ($1, $2)`

// Repository persists feedback in PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new feedback repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a feedback row. Rows are never updated or deleted.
func (r *Repository) Insert(ctx context.Context, customerName, feedbackText string) error {
	if err := r.db.Exec(ctx, insertFeedbackSQL, customerName, feedbackText); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}
