package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/contasweb/contas-backend/internal/auth"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/logger"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
)

func TestMain(m *testing.M) {
	logger.InitHashSaltForTesting("test-salt")
	os.Exit(m.Run())
}

// setupBillService wires a BillService on a rolled-back test
// transaction, with a signed-in user row in place.
func setupBillService(t *testing.T, uid string) (*BillService, database.TxBeginner, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UID: uid, Email: uid + "@example.com"})

	user := &models.User{ID: uid, Name: "Test User", Email: uid + "@example.com", Phone: "+55 11 99999-0000"}
	require.NoError(t, repository.NewUserRepository(tx).Create(context.Background(), user))

	return NewBillService(tx), tx, ctx
}

func billInput() BillInput {
	return BillInput{
		Name:     "Conta de internet",
		DueDate:  time.Now().Add(24 * time.Hour),
		Amount:   decimal.NewFromInt(100),
		Category: "Assinaturas",
	}
}

func TestBillService_CreateBill(t *testing.T) {
	svc, _, ctx := setupBillService(t, "uid-svc-create")

	t.Run("creates a pending bill", func(t *testing.T) {
		id, err := svc.CreateBill(ctx, billInput())
		require.NoError(t, err)
		require.NotZero(t, id)

		bill, err := svc.GetBillByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, bill)
		require.False(t, bill.Paid)
		require.Nil(t, bill.PaymentDate)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		in := billInput()
		in.Amount = decimal.Zero
		_, err := svc.CreateBill(ctx, in)
		require.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		_, err := svc.CreateBill(context.Background(), billInput())
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestBillService_MarkAsPaid(t *testing.T) {
	svc, _, ctx := setupBillService(t, "uid-svc-pay")

	billID, err := svc.CreateBill(ctx, billInput())
	require.NoError(t, err)

	t.Run("settles the bill in one transaction", func(t *testing.T) {
		payment, err := svc.MarkAsPaid(ctx, billID, PaymentInput{
			AmountPaid:    decimal.NewFromInt(100),
			PaymentMethod: "PIX",
		})
		require.NoError(t, err)
		require.NotZero(t, payment.ID)
		require.Equal(t, models.PaymentStatusConfirmed, payment.PaymentStatus)
		require.True(t, payment.AmountPaid.Equal(decimal.NewFromInt(100)))

		bill, err := svc.GetBillByID(ctx, billID)
		require.NoError(t, err)
		require.True(t, bill.Paid)
		require.NotNil(t, bill.PaymentDate)

		payments, err := svc.GetBillPayments(ctx, billID)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		require.Equal(t, "PIX", payments[0].PaymentMethod)

		history, err := svc.GetUserHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, models.BillActionPaid, history[0].Action)
		require.Equal(t, false, history[0].OldData["paid"])
		require.Equal(t, true, history[0].NewData["paid"])
		require.Contains(t, history[0].NewData, "paymentDate")
	})

	t.Run("paying twice fails and writes nothing", func(t *testing.T) {
		_, err := svc.MarkAsPaid(ctx, billID, PaymentInput{
			AmountPaid:    decimal.NewFromInt(100),
			PaymentMethod: "PIX",
		})
		require.ErrorIs(t, err, ErrBillAlreadyPaid)

		payments, err := svc.GetBillPayments(ctx, billID)
		require.NoError(t, err)
		require.Len(t, payments, 1)

		history, err := svc.GetUserHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
	})

	t.Run("missing bill fails", func(t *testing.T) {
		_, err := svc.MarkAsPaid(ctx, 99999, PaymentInput{AmountPaid: decimal.NewFromInt(10)})
		require.ErrorIs(t, err, ErrBillNotFound)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := svc.MarkAsPaid(ctx, billID, PaymentInput{AmountPaid: decimal.NewFromInt(-5)})
		require.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		_, err := svc.MarkAsPaid(context.Background(), billID, PaymentInput{AmountPaid: decimal.NewFromInt(10)})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestBillService_Reads(t *testing.T) {
	svc, _, ctx := setupBillService(t, "uid-svc-read")

	_, err := svc.CreateBill(ctx, billInput())
	require.NoError(t, err)

	t.Run("anonymous list reads are empty, not errors", func(t *testing.T) {
		bills, err := svc.GetUserBills(context.Background())
		require.NoError(t, err)
		require.Empty(t, bills)

		payments, err := svc.GetUserPayments(context.Background())
		require.NoError(t, err)
		require.Empty(t, payments)

		history, err := svc.GetUserHistory(context.Background())
		require.NoError(t, err)
		require.Empty(t, history)
	})

	t.Run("anonymous single read is nil, not an error", func(t *testing.T) {
		bill, err := svc.GetBillByID(context.Background(), 1)
		require.NoError(t, err)
		require.Nil(t, bill)
	})

	t.Run("missing bill reads as nil", func(t *testing.T) {
		bill, err := svc.GetBillByID(ctx, 99999)
		require.NoError(t, err)
		require.Nil(t, bill)
	})
}

func TestBillService_UpdateAndDelete(t *testing.T) {
	svc, _, ctx := setupBillService(t, "uid-svc-ud")

	billID, err := svc.CreateBill(ctx, billInput())
	require.NoError(t, err)

	t.Run("updates supplied fields", func(t *testing.T) {
		name := "Conta de fibra"
		err := svc.UpdateBill(ctx, billID, repository.BillUpdate{Name: &name})
		require.NoError(t, err)

		bill, err := svc.GetBillByID(ctx, billID)
		require.NoError(t, err)
		require.Equal(t, "Conta de fibra", bill.Name)
	})

	t.Run("deletes the bill", func(t *testing.T) {
		err := svc.DeleteBill(ctx, billID)
		require.NoError(t, err)

		bill, err := svc.GetBillByID(ctx, billID)
		require.NoError(t, err)
		require.Nil(t, bill)
	})

	t.Run("rejects anonymous mutations", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateBill(context.Background(), billID, repository.BillUpdate{}), ErrUnauthenticated)
		require.ErrorIs(t, svc.DeleteBill(context.Background(), billID), ErrUnauthenticated)
	})
}
