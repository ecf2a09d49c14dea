package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/contasweb/contas-backend/internal/auth"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
	"pgregory.net/rapid"
)

func setupFinanceService(t *testing.T, uid string) (*FinanceService, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: uid})

	user := &models.User{ID: uid, Name: "Test User", Email: uid + "@example.com", Phone: "+55 11 99999-0000"}
	require.NoError(t, repository.NewUserRepository(tx).Create(context.Background(), user))

	return NewFinanceService(tx), ctx
}

// requireIncomeInvariant asserts totalIncome = currentBalance - totalExpenses.
func requireIncomeInvariant(t require.TestingT, fin *models.Finance) {
	require.True(t, fin.TotalIncome.Equal(fin.CurrentBalance.Sub(fin.TotalExpenses)),
		"income %s != balance %s - expenses %s",
		fin.TotalIncome, fin.CurrentBalance, fin.TotalExpenses)
}

func TestFinanceService_CreateOrUpdateFinance(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-create")

	t.Run("first write derives income and records creation", func(t *testing.T) {
		fin, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
			CurrentBalance: decimal.NewFromInt(500),
			TotalExpenses:  decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		require.True(t, fin.TotalIncome.Equal(decimal.NewFromInt(300)))
		requireIncomeInvariant(t, fin)

		history, err := svc.GetUserFinanceHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, models.FinanceActionCreated, history[0].Action)
		require.Nil(t, history[0].OldValue)
		require.True(t, history[0].NewValue.Equal(decimal.NewFromInt(500)))
		require.Equal(t, "Criação do registro financeiro", history[0].Description)
	})

	t.Run("second write updates without another creation entry", func(t *testing.T) {
		fin, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
			CurrentBalance: decimal.NewFromInt(1000),
			TotalExpenses:  decimal.NewFromInt(400),
		})
		require.NoError(t, err)
		require.True(t, fin.TotalIncome.Equal(decimal.NewFromInt(600)))

		history, err := svc.GetUserFinanceHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		_, err := svc.CreateOrUpdateFinance(context.Background(), FinanceInput{})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestFinanceService_UpdateCurrentBalance(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-bal")

	_, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
		CurrentBalance: decimal.NewFromInt(500),
		TotalExpenses:  decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	t.Run("re-derives income against unchanged expenses", func(t *testing.T) {
		fin, err := svc.UpdateCurrentBalance(ctx, decimal.NewFromInt(800))
		require.NoError(t, err)
		require.True(t, fin.CurrentBalance.Equal(decimal.NewFromInt(800)))
		require.True(t, fin.TotalIncome.Equal(decimal.NewFromInt(600)))
		require.True(t, fin.TotalExpenses.Equal(decimal.NewFromInt(200)))
		requireIncomeInvariant(t, fin)
	})

	t.Run("appends a balance_update entry with old and new values", func(t *testing.T) {
		history, err := svc.GetUserFinanceHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		// Newest first.
		require.Equal(t, models.FinanceActionBalanceUpdate, history[0].Action)
		require.NotNil(t, history[0].OldValue)
		require.True(t, history[0].OldValue.Equal(decimal.NewFromInt(500)))
		require.True(t, history[0].NewValue.Equal(decimal.NewFromInt(800)))
		require.Equal(t, "Atualização do saldo atual", history[0].Description)
	})
}

func TestFinanceService_UpdateTotalExpenses(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-exp")

	_, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
		CurrentBalance: decimal.NewFromInt(500),
		TotalExpenses:  decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	fin, err := svc.UpdateTotalExpenses(ctx, decimal.NewFromInt(350))
	require.NoError(t, err)
	require.True(t, fin.TotalExpenses.Equal(decimal.NewFromInt(350)))
	require.True(t, fin.TotalIncome.Equal(decimal.NewFromInt(150)))
	requireIncomeInvariant(t, fin)

	history, err := svc.GetUserFinanceHistory(ctx)
	require.NoError(t, err)
	require.Equal(t, models.FinanceActionExpenseUpdate, history[0].Action)
	require.Equal(t, "Atualização do total de despesas", history[0].Description)
}

func TestFinanceService_UpdateTotalIncome(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-inc")

	_, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
		CurrentBalance: decimal.NewFromInt(500),
		TotalExpenses:  decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	fin, err := svc.UpdateTotalIncome(ctx, decimal.NewFromInt(900))
	require.NoError(t, err)
	require.True(t, fin.TotalIncome.Equal(decimal.NewFromInt(900)))

	history, err := svc.GetUserFinanceHistory(ctx)
	require.NoError(t, err)
	require.Equal(t, models.FinanceActionIncomeUpdate, history[0].Action)
	require.True(t, history[0].OldValue.Equal(decimal.NewFromInt(300)))
	require.True(t, history[0].NewValue.Equal(decimal.NewFromInt(900)))
}

func TestFinanceService_UpdateWithoutRecord(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-none")

	_, err := svc.UpdateCurrentBalance(ctx, decimal.NewFromInt(100))
	require.ErrorIs(t, err, ErrFinanceNotFound)

	_, err = svc.UpdateTotalExpenses(ctx, decimal.NewFromInt(100))
	require.ErrorIs(t, err, ErrFinanceNotFound)
}

func TestFinanceService_Reads(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-read")

	t.Run("missing finance reads as nil", func(t *testing.T) {
		fin, err := svc.GetCurrentUserFinance(ctx)
		require.NoError(t, err)
		require.Nil(t, fin)
	})

	t.Run("anonymous reads are empty, not errors", func(t *testing.T) {
		fin, err := svc.GetCurrentUserFinance(context.Background())
		require.NoError(t, err)
		require.Nil(t, fin)

		history, err := svc.GetUserFinanceHistory(context.Background())
		require.NoError(t, err)
		require.Empty(t, history)
	})
}

func TestFinanceService_DeleteFinanceHistoryEntry(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-del")

	_, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
		CurrentBalance: decimal.NewFromInt(100),
		TotalExpenses:  decimal.Zero,
	})
	require.NoError(t, err)

	history, err := svc.GetUserFinanceHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)

	require.NoError(t, svc.DeleteFinanceHistoryEntry(ctx, history[0].ID))

	history, err = svc.GetUserFinanceHistory(ctx)
	require.NoError(t, err)
	require.Empty(t, history)
}

// TestFinanceService_IncomeInvariant drives random update sequences and
// checks the derived-income equality after every mutation.
func TestFinanceService_IncomeInvariant(t *testing.T) {
	svc, ctx := setupFinanceService(t, "uid-fin-svc-prop")

	_, err := svc.CreateOrUpdateFinance(ctx, FinanceInput{
		CurrentBalance: decimal.NewFromInt(1000),
		TotalExpenses:  decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	// Amounts in cents, within the DECIMAL(12,2) range.
	amount := rapid.Custom(func(t *rapid.T) decimal.Decimal {
		cents := rapid.Int64Range(-9_999_999_999, 9_999_999_999).Draw(t, "cents")
		return decimal.New(cents, -2)
	})

	rapid.Check(t, func(rt *rapid.T) {
		var fin *models.Finance
		var err error

		switch rapid.IntRange(0, 2).Draw(rt, "op") {
		case 0:
			fin, err = svc.UpdateCurrentBalance(ctx, amount.Draw(rt, "balance"))
		case 1:
			fin, err = svc.UpdateTotalExpenses(ctx, amount.Draw(rt, "expenses"))
		default:
			fin, err = svc.CreateOrUpdateFinance(ctx, FinanceInput{
				CurrentBalance: amount.Draw(rt, "newBalance"),
				TotalExpenses:  amount.Draw(rt, "newExpenses"),
			})
		}
		if err != nil {
			rt.Fatalf("finance update failed: %v", err)
		}
		requireIncomeInvariant(rt, fin)

		stored, err := svc.GetCurrentUserFinance(ctx)
		if err != nil {
			rt.Fatalf("finance read failed: %v", err)
		}
		requireIncomeInvariant(rt, stored)
	})
}
