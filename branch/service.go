package branch

import (
	"context"
	"errors"
	"strings"
)

// ErrNameRequired signals a create request with an empty branch name.
var ErrNameRequired = errors.New("branch: name required")

// Service exposes business-level branch operations.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new branch.
func (s *Service) Create(ctx context.Context, name string) (Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Branch{}, ErrNameRequired
	}
	return s.repo.Create(ctx, name)
}

// List returns all branches in id order.
func (s *Service) List(ctx context.Context) ([]Branch, error) {
	return s.repo.List(ctx)
}
