package feedback

import "context"

// repository is what the service needs from feedback persistence.
type repository interface {
	Insert(ctx context.Context, customerName, feedbackText string) error
}

// Service records customer feedback.
type Service struct {
	repo repository
}

// NewService creates a new feedback service
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// Submit persists feedback unconditionally. Length and content are not
// validated.
func (s *Service) Submit(ctx context.Context, customerName, feedbackText string) error {
	return s.repo.Insert(ctx, customerName, feedbackText)
}
