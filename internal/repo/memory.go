package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type user struct {
	id       int
	email    string
	password string
}

// MemoryRepository keeps everything in process memory. Used for development
// and tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[string]user
	nextUserID   int
	calculations map[uuid.UUID]Calculation
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]user),
		nextUserID:   1,
		calculations: make(map[uuid.UUID]Calculation),
	}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[login]; ok {
		return 0, fmt.Errorf("user %q: %w", login, ErrConflict)
	}
	id := r.nextUserID
	r.nextUserID++
	r.users[login] = user{id: id, email: email, password: password}
	return id, nil
}

func (r *MemoryRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[login]
	if !ok {
		return 0, "", ErrNotFound
	}
	return u.id, u.password, nil
}

func (r *MemoryRepository) SaveCalculation(ctx context.Context, c *Calculation) error {
	prepare(c)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calculations[c.ID] = *c
	return nil
}

func (r *MemoryRepository) GetCalculation(ctx context.Context, userID int, id uuid.UUID) (*Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.calculations[id]
	if !ok || c.UserID != userID {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Calculation{}
	for _, c := range r.calculations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if n := clampLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *MemoryRepository) DeleteCalculation(ctx context.Context, userID int, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.calculations[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(r.calculations, id)
	return nil
}
