package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

func newTestLedger(t *testing.T) *Ledger {
	dir := t.TempDir()
	return New(filepath.Join(dir, "payments.csv"), filepath.Join(dir, "transactions.csv"))
}

func TestLedger_PaymentHeaderWrittenOnce(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	require.NoError(t, l.AppendPayment(ctx, models.PaymentRow{
		Timestamp:       "2024-01-01 10:00:00",
		TotalAmount:     "13.00",
		PaymentAmount:   "20",
		CartDescription: "2 x Coffee (10.00), 1 x Tea (3.00)",
	}))
	require.NoError(t, l.AppendPayment(ctx, models.PaymentRow{
		Timestamp:       "2024-01-01 18:00:00",
		TotalAmount:     "5.00",
		PaymentAmount:   "5",
		CartDescription: "1 x Coffee (5.00)",
	}))

	raw, err := os.ReadFile(l.PaymentsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "timestamp,total_amount,payment_amount,cart_description", lines[0])
	require.Equal(t, `2024-01-01 10:00:00,13.00,20,"2 x Coffee (10.00), 1 x Tea (3.00)"`, lines[1])

	rows, err := l.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2 x Coffee (10.00), 1 x Tea (3.00)", rows[0].CartDescription)
	require.Equal(t, "5.00", rows[1].TotalAmount)
}

func TestLedger_TransactionsAppendInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	for _, total := range []string{"10", "20", "30"} {
		require.NoError(t, l.AppendTransaction(ctx, models.TransactionRow{
			Timestamp: "2024-01-01 10:00:00",
			Total:     total,
			Payment:   "50",
			Change:    "0",
		}))
	}

	rows, err := l.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "10", rows[0].Total)
	require.Equal(t, "30", rows[2].Total)

	raw, err := os.ReadFile(l.TransactionsPath)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(raw), "timestamp,total,payment,change"))
}

func TestLedger_MissingOrEmptyFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	rows, err := l.Payments(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)

	require.NoError(t, os.WriteFile(l.PaymentsPath, nil, 0o644))
	rows, err = l.Payments(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestLedger_HeaderlessLegacyPayments(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	legacy := "2024-01-01 10:00:00,10,20,1 x Tea ($10.0)\n" +
		"2024-01-02 11:30:00,13,15,\"2 x Coffee ($10.0), 1 x Tea ($3.0)\"\n"
	require.NoError(t, os.WriteFile(l.PaymentsPath, []byte(legacy), 0o644))

	rows, err := l.Payments(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.PaymentRow{
		{Timestamp: "2024-01-01 10:00:00", TotalAmount: "10", PaymentAmount: "20", CartDescription: "1 x Tea ($10.0)"},
		{Timestamp: "2024-01-02 11:30:00", TotalAmount: "13", PaymentAmount: "15", CartDescription: "2 x Coffee ($10.0), 1 x Tea ($3.0)"},
	}, rows)

	require.NoError(t, l.AppendPayment(ctx, models.PaymentRow{
		Timestamp: "2024-01-03 09:00:00", TotalAmount: "3.00", PaymentAmount: "3.00", CartDescription: "1 x Tea (3.00)",
	}))

	raw, err := os.ReadFile(l.PaymentsPath)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "timestamp")

	rows, err = l.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "1 x Tea (3.00)", rows[2].CartDescription)
}

func TestLedger_LegacyTransactions(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	legacy := "Total,Payment,Change\n8,10,2\nTotal,Payment,Change\n5,5,0\n"
	require.NoError(t, os.WriteFile(l.TransactionsPath, []byte(legacy), 0o644))

	require.NoError(t, l.AppendTransaction(ctx, models.TransactionRow{
		Timestamp: "2024-01-03 09:00:00", Total: "3.00", Payment: "5.00", Change: "2.00",
	}))

	rows, err := l.Transactions(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.TransactionRow{
		{Total: "8", Payment: "10", Change: "2"},
		{Total: "5", Payment: "5", Change: "0"},
		{Timestamp: "2024-01-03 09:00:00", Total: "3.00", Payment: "5.00", Change: "2.00"},
	}, rows)
}
