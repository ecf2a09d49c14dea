// Package models defines the domain entities for the finance tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values as stored. The app is Brazilian-Portuguese
// facing, so the wire values are too.
const (
	PaymentStatusConfirmed = "Confirmado"
	PaymentStatusPending   = "Pendente"
	PaymentStatusCancelled = "Cancelado"
)

// Finance history action tags.
const (
	FinanceActionCreated       = "finance_created"
	FinanceActionBalanceUpdate = "balance_update"
	FinanceActionExpenseUpdate = "expense_update"
	FinanceActionIncomeUpdate  = "income_update"
)

// BillActionPaid is the bill history action written when a bill is settled.
const BillActionPaid = "Pagamento confirmado"

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// Address is a user's postal address, stored inline on the user row.
type Address struct {
	Street string `json:"street"`
	Number string `json:"number"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// User represents a registered account. The ID is the identity
// provider's uid; the backend never stores credentials.
type User struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Address        *Address
	ProfilePicture string
	CreatedAt      time.Time
	LastLogin      time.Time
}

// ProfileComplete reports whether the registration flow finished.
// A phone number is the marker the original signup flow requires.
func (u *User) ProfileComplete() bool {
	return u != nil && u.Phone != ""
}

// Bill represents a payable obligation owned by a user.
type Bill struct {
	ID          int
	UserID      string
	Name        string
	DueDate     time.Time
	Amount      decimal.Decimal
	Category    string
	Paid        bool
	PaymentDate *time.Time
	Description string
	Tags        []string
	CreatedAt   time.Time
}

// Payment is an immutable record of a bill settlement.
type Payment struct {
	ID            int
	UserID        string
	BillID        int
	AmountPaid    decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	PaymentDate   time.Time
}

// Finance is the per-user singleton aggregate. TotalIncome is derived:
// it must equal CurrentBalance - TotalExpenses after every mutation.
type Finance struct {
	UserID         string
	CurrentBalance decimal.Decimal
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	LastUpdated    time.Time
}

// FinanceHistoryEntry is an append-only audit row for a finance field
// change. OldValue is nil for the creation entry.
type FinanceHistoryEntry struct {
	ID          int
	FinanceID   string
	UserID      string
	Action      string
	OldValue    *decimal.Decimal
	NewValue    decimal.Decimal
	Description string
	Timestamp   time.Time
}

// BillHistoryEntry records a bill state transition with before/after
// snapshots of the changed fields.
type BillHistoryEntry struct {
	ID        int
	UserID    string
	BillID    int
	Action    string
	OldData   map[string]any
	NewData   map[string]any
	Timestamp time.Time
}

// Category is a lookup entry for classifying bills.
type Category struct {
	ID          int
	Name        string
	Description string
	CreatedAt   time.Time
}
