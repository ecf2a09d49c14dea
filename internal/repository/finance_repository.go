package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// FinanceRepository handles the per-user finance singleton row.
type FinanceRepository struct {
	db database.PGXDB
}

// NewFinanceRepository creates a new FinanceRepository.
func NewFinanceRepository(db database.PGXDB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// GetByUserID retrieves the finance row for a user.
// Returns nil when the user has no finance record yet.
func (r *FinanceRepository) GetByUserID(ctx context.Context, userID string) (*models.Finance, error) {
	var fin models.Finance
	err := r.db.QueryRow(ctx, `
		SELECT user_id, current_balance, total_income, total_expenses, last_updated
		FROM finances WHERE user_id = $1
	`, userID).Scan(&fin.UserID, &fin.CurrentBalance, &fin.TotalIncome, &fin.TotalExpenses, &fin.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finance: %w", err)
	}
	return &fin, nil
}

// GetByUserIDForUpdate locks and reads the finance row inside the
// current transaction, so the recompute-and-write sequence cannot race.
func (r *FinanceRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*models.Finance, error) {
	var fin models.Finance
	err := r.db.QueryRow(ctx, `
		SELECT user_id, current_balance, total_income, total_expenses, last_updated
		FROM finances WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&fin.UserID, &fin.CurrentBalance, &fin.TotalIncome, &fin.TotalExpenses, &fin.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock finance: %w", err)
	}
	return &fin, nil
}

// Upsert writes the finance row, creating it on first use.
func (r *FinanceRepository) Upsert(ctx context.Context, fin *models.Finance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO finances (user_id, current_balance, total_income, total_expenses, last_updated)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_balance = EXCLUDED.current_balance,
			total_income = EXCLUDED.total_income,
			total_expenses = EXCLUDED.total_expenses,
			last_updated = NOW()
		RETURNING last_updated
	`, fin.UserID, fin.CurrentBalance, fin.TotalIncome, fin.TotalExpenses).
		Scan(&fin.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert finance: %w", err)
	}
	return nil
}

// UpdateBalances writes the three aggregate fields for a user.
func (r *FinanceRepository) UpdateBalances(ctx context.Context, userID string, balance, income, expenses decimal.Decimal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE finances SET
			current_balance = $2,
			total_income = $3,
			total_expenses = $4,
			last_updated = NOW()
		WHERE user_id = $1
	`, userID, balance, income, expenses)
	if err != nil {
		return fmt.Errorf("failed to update finance balances: %w", err)
	}
	return nil
}
