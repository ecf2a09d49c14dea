package repository

import (
	"context"
	"fmt"

	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// BillHistoryRepository handles the bill state-transition audit trail.
type BillHistoryRepository struct {
	db database.PGXDB
}

// NewBillHistoryRepository creates a new BillHistoryRepository.
func NewBillHistoryRepository(db database.PGXDB) *BillHistoryRepository {
	return &BillHistoryRepository{db: db}
}

// Create appends a bill history entry with before/after snapshots.
func (r *BillHistoryRepository) Create(ctx context.Context, entry *models.BillHistoryEntry) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO bill_history (user_id, bill_id, action, old_data, new_data, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, timestamp
	`, entry.UserID, entry.BillID, entry.Action, entry.OldData, entry.NewData).
		Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create bill history entry: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user's bill history, newest first.
func (r *BillHistoryRepository) GetByUserID(ctx context.Context, userID string) ([]models.BillHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, bill_id, action, old_data, new_data, timestamp
		FROM bill_history
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill history: %w", err)
	}
	defer rows.Close()

	var entries []models.BillHistoryEntry
	for rows.Next() {
		var e models.BillHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BillID, &e.Action,
			&e.OldData, &e.NewData, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan bill history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill history: %w", err)
	}
	return entries, nil
}

// GetByBillID retrieves the history rows for one bill, oldest first.
func (r *BillHistoryRepository) GetByBillID(ctx context.Context, userID string, billID int) ([]models.BillHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, bill_id, action, old_data, new_data, timestamp
		FROM bill_history
		WHERE user_id = $1 AND bill_id = $2
		ORDER BY timestamp ASC, id ASC
	`, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill history by bill: %w", err)
	}
	defer rows.Close()

	var entries []models.BillHistoryEntry
	for rows.Next() {
		var e models.BillHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BillID, &e.Action,
			&e.OldData, &e.NewData, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan bill history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill history: %w", err)
	}
	return entries, nil
}
