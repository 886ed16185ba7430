package repo

import (
	"context"
	"errors"
	"time"

	laser "Aperture/internal/calc/laser"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Calculation is a saved laser calculation owned by one user.
type Calculation struct {
	ID         uuid.UUID        `json:"id"`
	UserID     int              `json:"user_id"`
	Name       string           `json:"name"`
	Parameters laser.Parameters `json:"parameters"`
	Result     laser.Result     `json:"result"`
	CreatedAt  time.Time        `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	SaveCalculation(ctx context.Context, c *Calculation) error
	GetCalculation(ctx context.Context, userID int, id uuid.UUID) (*Calculation, error)
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
	DeleteCalculation(ctx context.Context, userID int, id uuid.UUID) error
}

// prepare fills ID and CreatedAt when the caller left them empty.
func prepare(c *Calculation) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}

const DefaultListLimit = 50

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit*10 {
		return DefaultListLimit
	}
	return limit
}
