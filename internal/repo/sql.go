package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sqlRepository holds the queries shared by Postgres and SQLite. Queries are
// written with ? placeholders and rebound per dialect.
type sqlRepository struct {
	db       *sql.DB
	numbered bool
	isUnique func(error) bool
}

func (r *sqlRepository) bind(q string) string {
	if !r.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, ch := range q {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}

func (r *sqlRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := r.bind("INSERT INTO users (login, email, password) VALUES (?, ?, ?) RETURNING id")
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	if err != nil && r.isUnique(err) {
		return 0, fmt.Errorf("user %q: %w", login, ErrConflict)
	}
	return id, err
}

func (r *sqlRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := r.bind("SELECT id, password FROM users WHERE login = ?")
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *sqlRepository) SaveCalculation(ctx context.Context, c *Calculation) error {
	prepare(c)
	params, err := json.Marshal(c.Parameters)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	result, err := json.Marshal(c.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	query := r.bind(`INSERT INTO calculations (id, user_id, name, parameters, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, c.ID.String(), c.UserID, c.Name, string(params), string(result), c.CreatedAt.UnixMicro()); err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (*Calculation, error) {
	var (
		c       Calculation
		id      string
		params  []byte
		result  []byte
		created int64
	)
	if err := s.Scan(&id, &c.UserID, &c.Name, &params, &result, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("calculation id %q: %w", id, err)
	}
	c.ID = parsed
	if err := json.Unmarshal(params, &c.Parameters); err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	if err := json.Unmarshal(result, &c.Result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	c.CreatedAt = time.UnixMicro(created).UTC()
	return &c, nil
}

const calculationColumns = "id, user_id, name, parameters, result, created_at"

func (r *sqlRepository) GetCalculation(ctx context.Context, userID int, id uuid.UUID) (*Calculation, error) {
	query := r.bind("SELECT " + calculationColumns + " FROM calculations WHERE id = ? AND user_id = ?")
	c, err := scanCalculation(r.db.QueryRowContext(ctx, query, id.String(), userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *sqlRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	query := r.bind("SELECT " + calculationColumns + " FROM calculations WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?")
	rows, err := r.db.QueryContext(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *sqlRepository) DeleteCalculation(ctx context.Context, userID int, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.bind("DELETE FROM calculations WHERE id = ? AND user_id = ?"), id.String(), userID)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
