package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/logger"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
)

// FinanceService maintains the per-user finance aggregate and its audit
// trail. Every mutation keeps the derived-income invariant:
//
//	totalIncome = currentBalance - totalExpenses
//
// The read-recompute-write sequence and the history append run inside a
// single transaction with the finance row locked, so concurrent updates
// from multiple tabs serialize instead of losing writes.
type FinanceService struct {
	db      database.TxBeginner
	finance *repository.FinanceRepository
	history *repository.FinanceHistoryRepository
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(db database.TxBeginner) *FinanceService {
	return &FinanceService{
		db:      db,
		finance: repository.NewFinanceRepository(db),
		history: repository.NewFinanceHistoryRepository(db),
	}
}

// FinanceInput carries balance and expenses for createOrUpdate.
// Income is derived, never caller-supplied.
type FinanceInput struct {
	CurrentBalance decimal.Decimal
	TotalExpenses  decimal.Decimal
}

// CreateOrUpdateFinance writes the finance record, deriving income. The
// first write for a user also appends a finance_created history entry
// with a null old value.
func (s *FinanceService) CreateOrUpdateFinance(ctx context.Context, in FinanceInput) (*models.Finance, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	finRepo := repository.NewFinanceRepository(tx)
	existing, err := finRepo.GetByUserIDForUpdate(ctx, id.UID)
	if err != nil {
		return nil, err
	}

	fin := &models.Finance{
		UserID:         id.UID,
		CurrentBalance: in.CurrentBalance,
		TotalExpenses:  in.TotalExpenses,
		TotalIncome:    in.CurrentBalance.Sub(in.TotalExpenses),
	}
	if err := finRepo.Upsert(ctx, fin); err != nil {
		return nil, err
	}

	if existing == nil {
		entry := &models.FinanceHistoryEntry{
			FinanceID:   id.UID,
			UserID:      id.UID,
			Action:      models.FinanceActionCreated,
			OldValue:    nil,
			NewValue:    in.CurrentBalance,
			Description: "Criação do registro financeiro",
		}
		if err := repository.NewFinanceHistoryRepository(tx).Create(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit finance write: %w", err)
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(id.UID)).
		Bool("created", existing == nil).
		Msg("Finance record written")
	return fin, nil
}

// GetCurrentUserFinance returns the caller's finance record, or nil if
// none exists yet.
func (s *FinanceService) GetCurrentUserFinance(ctx context.Context) (*models.Finance, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.finance.GetByUserID(ctx, id)
}

// UpdateCurrentBalance sets a new balance, recomputes income against
// the unchanged expenses and appends a balance_update entry.
func (s *FinanceService) UpdateCurrentBalance(ctx context.Context, newBalance decimal.Decimal) (*models.Finance, error) {
	return s.update(ctx, models.FinanceActionBalanceUpdate, "Atualização do saldo atual",
		func(fin *models.Finance) (old decimal.Decimal) {
			old = fin.CurrentBalance
			fin.CurrentBalance = newBalance
			fin.TotalIncome = newBalance.Sub(fin.TotalExpenses)
			return old
		})
}

// UpdateTotalExpenses sets new total expenses, recomputes income
// against the unchanged balance and appends an expense_update entry.
func (s *FinanceService) UpdateTotalExpenses(ctx context.Context, newExpenses decimal.Decimal) (*models.Finance, error) {
	return s.update(ctx, models.FinanceActionExpenseUpdate, "Atualização do total de despesas",
		func(fin *models.Finance) (old decimal.Decimal) {
			old = fin.TotalExpenses
			fin.TotalExpenses = newExpenses
			fin.TotalIncome = fin.CurrentBalance.Sub(newExpenses)
			return old
		})
}

// UpdateTotalIncome overrides the derived income directly and appends
// an income_update entry. Kept for parity with the original service;
// the next balance or expense update re-derives it.
func (s *FinanceService) UpdateTotalIncome(ctx context.Context, newIncome decimal.Decimal) (*models.Finance, error) {
	return s.update(ctx, models.FinanceActionIncomeUpdate, "Atualização do total de receitas",
		func(fin *models.Finance) (old decimal.Decimal) {
			old = fin.TotalIncome
			fin.TotalIncome = newIncome
			return old
		})
}

// update runs one locked read-mutate-write cycle plus its history
// append in a single transaction. mutate returns the old value for the
// history entry.
func (s *FinanceService) update(ctx context.Context, action, description string, mutate func(*models.Finance) decimal.Decimal) (*models.Finance, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	finRepo := repository.NewFinanceRepository(tx)
	fin, err := finRepo.GetByUserIDForUpdate(ctx, id.UID)
	if err != nil {
		return nil, err
	}
	if fin == nil {
		return nil, ErrFinanceNotFound
	}

	oldValue := mutate(fin)
	if err := finRepo.UpdateBalances(ctx, id.UID, fin.CurrentBalance, fin.TotalIncome, fin.TotalExpenses); err != nil {
		return nil, err
	}

	var newValue decimal.Decimal
	switch action {
	case models.FinanceActionBalanceUpdate:
		newValue = fin.CurrentBalance
	case models.FinanceActionExpenseUpdate:
		newValue = fin.TotalExpenses
	default:
		newValue = fin.TotalIncome
	}

	entry := &models.FinanceHistoryEntry{
		FinanceID:   id.UID,
		UserID:      id.UID,
		Action:      action,
		OldValue:    &oldValue,
		NewValue:    newValue,
		Description: description,
	}
	if err := repository.NewFinanceHistoryRepository(tx).Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit finance update: %w", err)
	}

	logger.Log.Debug().
		Str("user", logger.HashUserID(id.UID)).
		Str("action", action).
		Msg("Finance aggregate updated")
	return fin, nil
}

// GetUserFinanceHistory returns the caller's audit trail, newest first.
func (s *FinanceService) GetUserFinanceHistory(ctx context.Context) ([]models.FinanceHistoryEntry, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.history.GetByUserID(ctx, id)
}

// GetFinanceHistory returns the history of one finance record, oldest first.
func (s *FinanceService) GetFinanceHistory(ctx context.Context, financeID string) ([]models.FinanceHistoryEntry, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.history.GetByFinanceID(ctx, id, financeID)
}

// DeleteFinanceHistoryEntry removes one of the caller's history rows.
func (s *FinanceService) DeleteFinanceHistoryEntry(ctx context.Context, entryID int) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.history.Delete(ctx, id.UID, entryID)
}
