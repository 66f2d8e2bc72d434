package reservation

import (
	"context"
)

// repository is what the service needs from reservation persistence.
type repository interface {
	Insert(ctx context.Context, customerName, contactNumber string, numPeople int) (int, error)
	Delete(ctx context.Context, id int) error
}

// Service drives the reservation workflow: create a booking, cancel it
// by id.
type Service struct {
	repo repository
}

// NewService creates a new reservation service
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// Create persists a reservation and returns its generated id for the
// confirmation page. Party size and contact format are not validated.
func (s *Service) Create(ctx context.Context, customerName, contactNumber string, numPeople int) (int, error) {
	return s.repo.Insert(ctx, customerName, contactNumber, numPeople)
}

// Cancel deletes a reservation unconditionally. Cancelling an id that
// does not exist succeeds, so the operation is idempotent.
func (s *Service) Cancel(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
