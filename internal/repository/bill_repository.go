package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

const billColumns = `id, user_id, name, due_date, amount, category, paid, payment_date, description, tags, created_at`

// BillRepository handles bill database operations.
type BillRepository struct {
	db database.PGXDB
}

// NewBillRepository creates a new BillRepository.
func NewBillRepository(db database.PGXDB) *BillRepository {
	return &BillRepository{db: db}
}

// Create adds a new bill. Bills always start unpaid with no payment date.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	bill.Paid = false
	bill.PaymentDate = nil
	if bill.Tags == nil {
		bill.Tags = []string{}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO bills (user_id, name, due_date, amount, category, paid, payment_date, description, tags)
		VALUES ($1, $2, $3, $4, $5, FALSE, NULL, $6, $7)
		RETURNING id, created_at
	`, bill.UserID, bill.Name, bill.DueDate, bill.Amount, bill.Category,
		bill.Description, bill.Tags,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetByID retrieves a bill owned by the given user.
// Returns nil when no such bill exists.
func (r *BillRepository) GetByID(ctx context.Context, userID string, id int) (*models.Bill, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+billColumns+` FROM bills WHERE id = $1 AND user_id = $2
	`, id, userID)
	bill, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// GetByIDForUpdate locks and reads a bill row inside the current
// transaction. Used by the paid-bill write path.
func (r *BillRepository) GetByIDForUpdate(ctx context.Context, userID string, id int) (*models.Bill, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+billColumns+` FROM bills WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID)
	bill, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock bill: %w", err)
	}
	return bill, nil
}

// GetByUserID retrieves all bills for a user, soonest due first.
func (r *BillRepository) GetByUserID(ctx context.Context, userID string) ([]models.Bill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+billColumns+` FROM bills
		WHERE user_id = $1
		ORDER BY due_date ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

// BillUpdate carries the fields a bill update may change.
// Nil fields are left untouched.
type BillUpdate struct {
	Name        *string
	DueDate     *time.Time
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Tags        []string
}

// Update merges the supplied fields into a bill owned by the user.
// Paid state is never writable here; MarkPaid owns that transition.
func (r *BillRepository) Update(ctx context.Context, userID string, id int, upd BillUpdate) error {
	var set []string
	args := []any{id, userID}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.DueDate != nil {
		add("due_date", *upd.DueDate)
	}
	if upd.Amount != nil {
		add("amount", *upd.Amount)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Tags != nil {
		add("tags", upd.Tags)
	}

	if len(set) == 0 {
		return nil
	}

	query := "UPDATE bills SET " + joinSet(set) + " WHERE id = $1 AND user_id = $2"
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return nil
}

// MarkPaid flips the paid flag and stamps the payment date.
func (r *BillRepository) MarkPaid(ctx context.Context, userID string, id int, paymentDate time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bills SET paid = TRUE, payment_date = $3 WHERE id = $1 AND user_id = $2
	`, id, userID, paymentDate)
	if err != nil {
		return fmt.Errorf("failed to mark bill paid: %w", err)
	}
	return nil
}

// Delete removes a bill owned by the user. Hard delete.
func (r *BillRepository) Delete(ctx context.Context, userID string, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

// scanBill scans a single bill row.
func scanBill(row pgx.Row) (*models.Bill, error) {
	var bill models.Bill
	err := row.Scan(&bill.ID, &bill.UserID, &bill.Name, &bill.DueDate, &bill.Amount,
		&bill.Category, &bill.Paid, &bill.PaymentDate, &bill.Description, &bill.Tags, &bill.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// scanBills is a helper to scan bill rows.
func scanBills(rows pgx.Rows) ([]models.Bill, error) {
	var bills []models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

// joinSet joins SET clauses for dynamic partial updates.
func joinSet(set []string) string {
	return strings.Join(set, ", ")
}
