package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/logger"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
)

// BillService implements bill operations, including the transactional
// paid-bill write path.
type BillService struct {
	db          database.TxBeginner
	bills       *repository.BillRepository
	payments    *repository.PaymentRepository
	billHistory *repository.BillHistoryRepository
}

// NewBillService creates a new BillService.
func NewBillService(db database.TxBeginner) *BillService {
	return &BillService{
		db:          db,
		bills:       repository.NewBillRepository(db),
		payments:    repository.NewPaymentRepository(db),
		billHistory: repository.NewBillHistoryRepository(db),
	}
}

// BillInput carries the caller-supplied fields for a new bill. Paid
// state and payment date are server-assigned.
type BillInput struct {
	Name        string
	DueDate     time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Tags        []string
}

// CreateBill registers a new pending bill and returns its id.
func (s *BillService) CreateBill(ctx context.Context, in BillInput) (int, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return 0, err
	}
	if !in.Amount.IsPositive() {
		return 0, ErrInvalidAmount
	}

	bill := &models.Bill{
		UserID:      id.UID,
		Name:        in.Name,
		DueDate:     in.DueDate,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Tags:        in.Tags,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return 0, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(id.UID)).
		Int("bill_id", bill.ID).
		Msg("Bill created")
	return bill.ID, nil
}

// GetUserBills returns the caller's bills. Anonymous callers get an
// empty list, matching the original read behavior.
func (s *BillService) GetUserBills(ctx context.Context) ([]models.Bill, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.bills.GetByUserID(ctx, id)
}

// GetBillByID returns one of the caller's bills, or nil when absent.
func (s *BillService) GetBillByID(ctx context.Context, billID int) (*models.Bill, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.bills.GetByID(ctx, id, billID)
}

// UpdateBill merges the supplied fields into a bill. Business
// invariants are the caller's responsibility, as in the original.
func (s *BillService) UpdateBill(ctx context.Context, billID int, upd repository.BillUpdate) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.bills.Update(ctx, id.UID, billID, upd)
}

// DeleteBill hard-deletes a bill. Payments cascade with it.
func (s *BillService) DeleteBill(ctx context.Context, billID int) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.bills.Delete(ctx, id.UID, billID)
}

// PaymentInput carries the payment details for settling a bill.
// Status defaults to Confirmado when empty.
type PaymentInput struct {
	AmountPaid    decimal.Decimal
	PaymentMethod string
	PaymentStatus string
}

// MarkAsPaid settles a bill: flips paid, records the payment and
// appends a history entry, all in one transaction so either all three
// writes commit or none do. Paying an already-paid bill fails
// ErrBillAlreadyPaid rather than minting a second payment.
func (s *BillService) MarkAsPaid(ctx context.Context, billID int, in PaymentInput) (*models.Payment, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !in.AmountPaid.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bills := repository.NewBillRepository(tx)
	bill, err := bills.GetByIDForUpdate(ctx, id.UID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.Paid {
		return nil, ErrBillAlreadyPaid
	}

	now := time.Now()
	if err := bills.MarkPaid(ctx, id.UID, billID, now); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:        id.UID,
		BillID:        billID,
		AmountPaid:    in.AmountPaid,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
	}
	if err := repository.NewPaymentRepository(tx).Create(ctx, payment); err != nil {
		return nil, err
	}

	entry := &models.BillHistoryEntry{
		UserID: id.UID,
		BillID: billID,
		Action: models.BillActionPaid,
		OldData: map[string]any{"paid": false},
		NewData: map[string]any{"paid": true, "paymentDate": now},
	}
	if err := repository.NewBillHistoryRepository(tx).Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(id.UID)).
		Int("bill_id", billID).
		Str("method", in.PaymentMethod).
		Msg("Bill marked as paid")
	return payment, nil
}

// GetUserPayments returns the caller's payments, newest first.
func (s *BillService) GetUserPayments(ctx context.Context) ([]models.Payment, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.payments.GetByUserID(ctx, id)
}

// GetBillPayments returns the payments recorded against one bill.
func (s *BillService) GetBillPayments(ctx context.Context, billID int) ([]models.Payment, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.payments.GetByBillID(ctx, id, billID)
}

// CreatePayment records a standalone payment, outside the paid-bill
// path. Used by imports of settlements made elsewhere.
func (s *BillService) CreatePayment(ctx context.Context, billID int, in PaymentInput) (*models.Payment, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !in.AmountPaid.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payment := &models.Payment{
		UserID:        id.UID,
		BillID:        billID,
		AmountPaid:    in.AmountPaid,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetUserHistory returns the caller's bill audit trail, newest first.
func (s *BillService) GetUserHistory(ctx context.Context) ([]models.BillHistoryEntry, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.billHistory.GetByUserID(ctx, id)
}
