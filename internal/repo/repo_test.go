package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	laser "Aperture/internal/calc/laser"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	sq, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Repository{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func calculation(t *testing.T, userID int, name string, created time.Time) *Calculation {
	t.Helper()
	in := laser.Parameters{WavelengthNm: 632.8, PowerMW: 5, BeamDiameterMM: 1, DivergenceMrad: 1, ExposureTimeS: 0.25}
	res, err := laser.Calculate(in)
	require.NoError(t, err)
	return &Calculation{UserID: userID, Name: name, Parameters: in, Result: res, CreatedAt: created}
}

func TestUsers(t *testing.T) {
	for name, r := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := r.CreateUser(ctx, "lso", "lso@example.com", "hash")
			require.NoError(t, err)
			assert.Greater(t, id, 0)

			_, err = r.CreateUser(ctx, "lso", "other@example.com", "hash2")
			require.ErrorIs(t, err, ErrConflict)

			gotID, hash, err := r.GetBylogin(ctx, "lso")
			require.NoError(t, err)
			assert.Equal(t, id, gotID)
			assert.Equal(t, "hash", hash)

			_, _, err = r.GetBylogin(ctx, "nobody")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestCalculations(t *testing.T) {
	for name, r := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			owner, err := r.CreateUser(ctx, "owner", "o@example.com", "h")
			require.NoError(t, err)
			other, err := r.CreateUser(ctx, "other", "x@example.com", "h")
			require.NoError(t, err)

			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			first := calculation(t, owner, "bench", base)
			second := calculation(t, owner, "lab", base.Add(time.Hour))
			foreign := calculation(t, other, "theirs", base)
			for _, c := range []*Calculation{first, second, foreign} {
				require.NoError(t, r.SaveCalculation(ctx, c))
				assert.NotEqual(t, uuid.Nil, c.ID)
			}

			got, err := r.GetCalculation(ctx, owner, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "bench", got.Name)
			assert.Equal(t, first.Parameters, got.Parameters)
			assert.Equal(t, first.Result, got.Result)
			assert.True(t, base.Equal(got.CreatedAt))

			_, err = r.GetCalculation(ctx, other, first.ID)
			require.ErrorIs(t, err, ErrNotFound)

			list, err := r.ListCalculations(ctx, owner, 0)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "lab", list[0].Name)
			assert.Equal(t, "bench", list[1].Name)

			limited, err := r.ListCalculations(ctx, owner, 1)
			require.NoError(t, err)
			assert.Len(t, limited, 1)

			require.NoError(t, r.DeleteCalculation(ctx, owner, first.ID))
			require.ErrorIs(t, r.DeleteCalculation(ctx, owner, first.ID), ErrNotFound)
			require.ErrorIs(t, r.DeleteCalculation(ctx, owner, foreign.ID), ErrNotFound)

			empty, err := r.ListCalculations(ctx, 999, 10)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestBindNumbered(t *testing.T) {
	r := &sqlRepository{numbered: true}
	assert.Equal(t, "SELECT a FROM b WHERE c = $1 AND d = $2", r.bind("SELECT a FROM b WHERE c = ? AND d = ?"))
	assert.Equal(t, "x = ?", (&sqlRepository{}).bind("x = ?"))
}
