package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// FinanceHistoryRepository handles the append-only finance audit trail.
type FinanceHistoryRepository struct {
	db database.PGXDB
}

// NewFinanceHistoryRepository creates a new FinanceHistoryRepository.
func NewFinanceHistoryRepository(db database.PGXDB) *FinanceHistoryRepository {
	return &FinanceHistoryRepository{db: db}
}

// Create appends a history entry.
func (r *FinanceHistoryRepository) Create(ctx context.Context, entry *models.FinanceHistoryEntry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO finance_history (finance_id, user_id, action, old_value, new_value, description, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, timestamp
	`, entry.FinanceID, entry.UserID, entry.Action, entry.OldValue, entry.NewValue, entry.Description).
		Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create finance history entry: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user's finance history, newest first.
func (r *FinanceHistoryRepository) GetByUserID(ctx context.Context, userID string) ([]models.FinanceHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, finance_id, user_id, action, old_value, new_value, description, timestamp
		FROM finance_history
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query finance history: %w", err)
	}
	defer rows.Close()

	return scanFinanceHistory(rows)
}

// GetByFinanceID retrieves the history of one finance record, oldest
// first so a balance timeline reads forward.
func (r *FinanceHistoryRepository) GetByFinanceID(ctx context.Context, userID, financeID string) ([]models.FinanceHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, finance_id, user_id, action, old_value, new_value, description, timestamp
		FROM finance_history
		WHERE finance_id = $1 AND user_id = $2
		ORDER BY timestamp ASC, id ASC
	`, financeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query finance history by finance: %w", err)
	}
	defer rows.Close()

	return scanFinanceHistory(rows)
}

// Delete removes one history entry owned by the user.
func (r *FinanceHistoryRepository) Delete(ctx context.Context, userID string, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM finance_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete finance history entry: %w", err)
	}
	return nil
}

// scanFinanceHistory is a helper to scan history rows.
func scanFinanceHistory(rows pgx.Rows) ([]models.FinanceHistoryEntry, error) {
	var entries []models.FinanceHistoryEntry
	for rows.Next() {
		var e models.FinanceHistoryEntry
		if err := rows.Scan(&e.ID, &e.FinanceID, &e.UserID, &e.Action,
			&e.OldValue, &e.NewValue, &e.Description, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan finance history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating finance history: %w", err)
	}
	return entries, nil
}
