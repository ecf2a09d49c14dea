package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

func TestFinanceRepository_Upsert(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	createTestUser(t, tx, "uid-fin-upsert")
	repo := NewFinanceRepository(tx)

	t.Run("creates the finance row on first write", func(t *testing.T) {
		fin := &models.Finance{
			UserID:         "uid-fin-upsert",
			CurrentBalance: decimal.NewFromInt(500),
			TotalIncome:    decimal.NewFromInt(300),
			TotalExpenses:  decimal.NewFromInt(200),
		}
		err := repo.Upsert(ctx, fin)
		require.NoError(t, err)
		require.False(t, fin.LastUpdated.IsZero())
	})

	t.Run("second write updates in place", func(t *testing.T) {
		fin := &models.Finance{
			UserID:         "uid-fin-upsert",
			CurrentBalance: decimal.NewFromInt(800),
			TotalIncome:    decimal.NewFromInt(600),
			TotalExpenses:  decimal.NewFromInt(200),
		}
		err := repo.Upsert(ctx, fin)
		require.NoError(t, err)

		fetched, err := repo.GetByUserID(ctx, "uid-fin-upsert")
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.True(t, fetched.CurrentBalance.Equal(decimal.NewFromInt(800)))
		require.True(t, fetched.TotalIncome.Equal(decimal.NewFromInt(600)))
	})
}

func TestFinanceRepository_GetByUserID(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	createTestUser(t, tx, "uid-fin-get")
	repo := NewFinanceRepository(tx)

	t.Run("returns nil before first write", func(t *testing.T) {
		fin, err := repo.GetByUserID(ctx, "uid-fin-get")
		require.NoError(t, err)
		require.Nil(t, fin)
	})

	t.Run("locked read also returns nil before first write", func(t *testing.T) {
		fin, err := repo.GetByUserIDForUpdate(ctx, "uid-fin-get")
		require.NoError(t, err)
		require.Nil(t, fin)
	})
}

func TestFinanceRepository_UpdateBalances(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	createTestUser(t, tx, "uid-fin-bal")
	repo := NewFinanceRepository(tx)

	fin := &models.Finance{
		UserID:         "uid-fin-bal",
		CurrentBalance: decimal.NewFromInt(100),
		TotalIncome:    decimal.NewFromInt(100),
		TotalExpenses:  decimal.Zero,
	}
	require.NoError(t, repo.Upsert(ctx, fin))

	err := repo.UpdateBalances(ctx, "uid-fin-bal",
		decimal.NewFromInt(250), decimal.NewFromInt(200), decimal.NewFromInt(50))
	require.NoError(t, err)

	fetched, err := repo.GetByUserID(ctx, "uid-fin-bal")
	require.NoError(t, err)
	require.True(t, fetched.CurrentBalance.Equal(decimal.NewFromInt(250)))
	require.True(t, fetched.TotalIncome.Equal(decimal.NewFromInt(200)))
	require.True(t, fetched.TotalExpenses.Equal(decimal.NewFromInt(50)))
}
