package balance

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName      = errors.New("source name must not be empty")
	ErrNegativeAmount = errors.New("source amount must not be negative")
)

// NameTakenError reports an upsert that hit an existing source without
// overwrite permission. The UI asks the user and retries with overwrite set.
type NameTakenError struct {
	Existing *Source
}

func (e *NameTakenError) Error() string {
	return fmt.Sprintf("balance source %q already exists", e.Existing.Name)
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=balance
type Repository interface {
	Create(ctx context.Context, src *Source) error
	FindByName(ctx context.Context, name string) (*Source, error)
	UpdateAmount(ctx context.Context, id, amount int64) (*Source, error)
	RemoveByID(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Source, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert creates a source, or updates the amount of an existing one whose
// name matches case-insensitively. Overwriting requires the caller to have
// confirmed: without overwrite, a name hit returns a NameTakenError carrying
// the existing record and changes nothing.
func (s *Service) Upsert(ctx context.Context, name string, amount int64, overwrite bool) (*Source, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, ErrEmptyName
	}

	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !overwrite {
			return nil, &NameTakenError{Existing: existing}
		}

		return s.repo.UpdateAmount(ctx, existing.ID, amount)
	}

	src := &Source{Name: name, Amount: amount}
	if err := s.repo.Create(ctx, src); err != nil {
		return src, err
	}

	return src, nil
}

// Delete removes a source by ID. Unknown IDs are a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.RemoveByID(ctx, id)
}

// List returns all sources in insertion order.
func (s *Service) List(ctx context.Context) ([]*Source, error) {
	return s.repo.List(ctx)
}
