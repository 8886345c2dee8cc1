package transaction

import (
	"context"
	"errors"
	"strings"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
)

// Validation errors. They are returned before any mutation happens.
var (
	ErrEmptyDescription  = errors.New("description must not be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrNoDate            = errors.New("date must be set")
	ErrBadKind           = errors.New("kind must be income or expense")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Append(ctx context.Context, tx *Transaction) error
	RemoveByID(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Transaction, error)
	ReplaceAll(ctx context.Context, txs []*Transaction) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date        dateutil.Day
	Description string
	Amount      int64
	Kind        Kind
	Category    string
}

// Add validates the params and appends a new transaction. The repository
// assigns the ID and creation timestamp.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Transaction, error) {
	desc := strings.TrimSpace(params.Description)

	switch {
	case desc == "":
		return nil, ErrEmptyDescription
	case params.Amount <= 0:
		return nil, ErrNonPositiveAmount
	case strings.TrimSpace(params.Category) == "":
		return nil, ErrEmptyCategory
	case params.Date.IsZero():
		return nil, ErrNoDate
	case !params.Kind.Valid():
		return nil, ErrBadKind
	}

	tx := &Transaction{
		Date:        params.Date,
		Description: desc,
		Amount:      params.Amount,
		Kind:        params.Kind,
		Category:    strings.TrimSpace(params.Category),
	}

	if err := s.repo.Append(ctx, tx); err != nil {
		return tx, err
	}

	return tx, nil
}

// Delete removes the transaction with the given ID. Deleting an unknown ID
// is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.RemoveByID(ctx, id)
}

// List returns the full transaction list in insertion order.
func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.List(ctx)
}

// ReplaceAll swaps the entire transaction list. Used by backup import; there
// is no merge.
func (s *Service) ReplaceAll(ctx context.Context, txs []*Transaction) error {
	return s.repo.ReplaceAll(ctx, txs)
}
