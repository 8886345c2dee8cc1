// Package backup moves the transaction ledger in and out of the app as a
// JSON file: a plain array of transaction records, human-readable enough
// to inspect or hand-edit.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nnazuaff/LaporanKeuangan/internal/dateutil"
	"github.com/nnazuaff/LaporanKeuangan/internal/encoding"
	"github.com/nnazuaff/LaporanKeuangan/internal/transaction"
)

var (
	// ErrNotArray is reported when an imported file is valid JSON but not
	// a top-level array of transactions.
	ErrNotArray = errors.New("backup must be a JSON array of transactions")
)

type Service struct {
	repo transaction.Repository
}

func NewService(repo transaction.Repository) *Service {
	return &Service{repo: repo}
}

// FileName returns the suggested export file name for the given day,
// e.g. "laporan-keuangan-2024-01-15.json".
func FileName(day dateutil.Day) string {
	return fmt.Sprintf("laporan-keuangan-%s.json", day)
}

// Export writes the full ledger to w as indented JSON. An empty ledger
// exports as "[]", never "null".
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	return nil
}

// ExportToFile exports the ledger to dir using the date-stamped file
// name and returns the full path written.
func (s *Service) ExportToFile(ctx context.Context, dir string, today dateutil.Day) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(today))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	if err := s.Export(ctx, f); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}

	return path, nil
}

// Import replaces the entire ledger with the transactions read from r.
// The current ledger is untouched when the input cannot be parsed.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}

	trimmed := bytes.TrimLeftFunc(data, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, ErrNotArray
	}

	var txs []*transaction.Transaction
	if err := json.Unmarshal(trimmed, &txs); err != nil {
		return 0, fmt.Errorf("parse backup: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// ImportFromFile replaces the ledger with the backup at path.
func (s *Service) ImportFromFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	return s.Import(ctx, f)
}
