// Package userstore persists the full set of user records as a single
// JSON document behind a pluggable byte backend.
package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/edustack/accounts-api/internal/domain"
)

// Backend reads and writes the raw store bytes as a whole. Load reports a
// missing store with fs.ErrNotExist.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store is the durable collection of all user records, read and written
// wholesale per operation. The mutex serializes the store's own I/O so a
// save never interleaves with a load; callers still run unsynchronized
// load-modify-save cycles.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load returns every user record. A missing store is created empty, and
// malformed persisted data degrades to an empty store with a logged warning
// so the system self-heals instead of failing every request.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("user store does not exist yet, creating an empty one")
		if err := s.backend.Write(ctx, []byte("[]")); err != nil {
			return nil, fmt.Errorf("create user store: %w", err)
		}
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user store: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("user store holds malformed data, starting empty", "err", err)
		return []domain.User{}, nil
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Save replaces the persisted records with the given sequence. A failed
// write is surfaced to the caller and never retried.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user store: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write user store: %w", err)
	}
	return nil
}

// FindByEmail returns a pointer into users for the record matching the email
// case-insensitively, or nil. Mutations through the pointer are picked up by
// a subsequent Save of the same slice.
func FindByEmail(users []domain.User, email string) *domain.User {
	norm := domain.NormalizeEmail(email)
	for i := range users {
		if strings.ToLower(users[i].Email) == norm {
			return &users[i]
		}
	}
	return nil
}
