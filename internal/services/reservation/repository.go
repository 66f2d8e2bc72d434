package reservation

import (
	"context"
	"fmt"

	"bella-vista/internal/database"
)

const (
	insertReservationSQL = `
		INSERT INTO reservations (customer_name, contact_number, num_people)
		VALUES ($1, $2, $3)
		RETURNING id`

	deleteReservationSQL = `
		DELETE FROM reservations WHERE id = $1`
)

// Repository persists reservations in PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new reservation repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a reservation row and returns its generated id.
func (r *Repository) Insert(ctx context.Context, customerName, contactNumber string, numPeople int) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, insertReservationSQL, customerName, contactNumber, numPeople).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return id, nil
}

// Delete removes a reservation row. Deleting an id that does not exist
// is not an error.
func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.db.Exec(ctx, deleteReservationSQL, id); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
