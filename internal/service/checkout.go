package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pos_shop/internal/ledger"
	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
	"github.com/Skotchmaster/pos_shop/internal/mykafka"
	"github.com/Skotchmaster/pos_shop/internal/transport"
)

type CheckoutService struct {
	Ledger  *ledger.Ledger
	Catalog *CatalogService
	Events  mykafka.Publisher

	// Strict reprices every line from the catalog before the payment is logged.
	Strict bool
	Now    func() time.Time
}

func (s *CheckoutService) RecordPayment(ctx context.Context, req transport.SavePaymentRequest) (*models.PaymentRow, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if req.TotalAmount.IsNegative() || req.PaymentAmount.IsNegative() {
		return nil, fmt.Errorf("amounts must be >= 0: %w", ErrValidation)
	}

	lines := req.Cart
	total := *req.TotalAmount
	if s.Strict {
		repriced, sum, err := s.reprice(ctx, lines)
		if err != nil {
			return nil, err
		}
		if !sum.Round(2).Equal(total.Round(2)) {
			return nil, fmt.Errorf("total %s does not match catalog prices (%s): %w",
				total.StringFixed(2), sum.StringFixed(2), ErrValidation)
		}
		lines, total = repriced, sum
	}

	row := models.PaymentRow{
		Timestamp:       s.now().Format(ledger.TimestampLayout),
		TotalAmount:     total.StringFixed(2),
		PaymentAmount:   req.PaymentAmount.StringFixed(2),
		CartDescription: ledger.FormatCart(lines),
	}
	if err := s.Ledger.AppendPayment(ctx, row); err != nil {
		return nil, err
	}

	s.publish(ctx, row.Timestamp, map[string]interface{}{
		"type":      "payment_recorded",
		"timestamp": row.Timestamp,
		"total":     row.TotalAmount,
		"payment":   row.PaymentAmount,
		"lines":     len(lines),
	})
	return &row, nil
}

// RecordTransaction logs a till transaction. Absent values are rejected;
// an explicit zero is a valid amount.
func (s *CheckoutService) RecordTransaction(ctx context.Context, req transport.SaveTransactionRequest) (*models.TransactionRow, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if req.Total.IsNegative() || req.Payment.IsNegative() || req.Change.IsNegative() {
		return nil, fmt.Errorf("amounts must be >= 0: %w", ErrValidation)
	}

	row := models.TransactionRow{
		Timestamp: s.now().Format(ledger.TimestampLayout),
		Total:     req.Total.StringFixed(2),
		Payment:   req.Payment.StringFixed(2),
		Change:    req.Change.StringFixed(2),
	}
	if err := s.Ledger.AppendTransaction(ctx, row); err != nil {
		return nil, err
	}

	s.publish(ctx, row.Timestamp, map[string]interface{}{
		"type":      "transaction_recorded",
		"timestamp": row.Timestamp,
		"total":     row.Total,
		"payment":   row.Payment,
		"change":    row.Change,
	})
	return &row, nil
}

func (s *CheckoutService) reprice(ctx context.Context, lines []models.CartLine) ([]models.CartLine, decimal.Decimal, error) {
	products, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byName := make(map[string]models.Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}

	out := make([]models.CartLine, 0, len(lines))
	sum := decimal.Zero
	for _, line := range lines {
		p, ok := byName[line.Product]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("unknown product %q: %w", line.Product, ErrValidation)
		}
		unit := decimal.NewFromFloat(p.Price)
		line.Price = unit
		line.TotalPrice = unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		sum = sum.Add(line.TotalPrice)
		out = append(out, line)
	}
	return out, sum, nil
}

func (s *CheckoutService) publish(ctx context.Context, key string, event map[string]interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, mykafka.SalesEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", mykafka.SalesEvents, "error", err)
	}
}

func (s *CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
