package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pos_shop/internal/ledger"
	"github.com/Skotchmaster/pos_shop/internal/logging"
	"github.com/Skotchmaster/pos_shop/internal/models"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var bucketLayouts = map[Period]string{
	PeriodDay:   "2006-01-02",
	PeriodMonth: "2006-01",
	PeriodYear:  "2006",
}

// ParsePeriod accepts exactly "day", "month" or "year".
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := bucketLayouts[p]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidPeriod)
	}
	return p, nil
}

type SalesService struct {
	Ledger *ledger.Ledger
}

func (s *SalesService) Payments(ctx context.Context) ([]models.PaymentRow, error) {
	return s.Ledger.Payments(ctx)
}

func (s *SalesService) Transactions(ctx context.Context) ([]models.TransactionRow, error) {
	return s.Ledger.Transactions(ctx)
}

// LineItems re-parses the cart description of every payment row.
func (s *SalesService) LineItems(ctx context.Context) ([]models.SalesLineItem, error) {
	rows, err := s.Ledger.Payments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.SalesLineItem, 0)
	for _, row := range rows {
		for _, frag := range ledger.ParseCartDescription(row.CartDescription) {
			out = append(out, models.SalesLineItem{
				Product:    frag.Product,
				Date:       row.Timestamp,
				Quantity:   frag.Quantity,
				Price:      frag.Total.Div(decimal.NewFromInt(int64(frag.Quantity))).InexactFloat64(),
				TotalSales: frag.Total.InexactFloat64(),
			})
		}
	}
	return out, nil
}

// Summary sums total_amount per day, month or year, ordered by key. Rows
// with an unparsable timestamp or amount are skipped.
func (s *SalesService) Summary(ctx context.Context, period string) ([]models.SalesSummaryEntry, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	rows, err := s.Ledger.Payments(ctx)
	if err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx)
	layout := bucketLayouts[p]
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		ts, err := time.Parse(ledger.TimestampLayout, strings.TrimSpace(row.Timestamp))
		if err != nil {
			l.Debug("sales_summary_skip_row", "timestamp", row.Timestamp, "error", err)
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(row.TotalAmount), "$"))
		if err != nil {
			l.Debug("sales_summary_skip_row", "total_amount", row.TotalAmount, "error", err)
			continue
		}
		key := ts.Format(layout)
		totals[key] = totals[key].Add(amount)
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.SalesSummaryEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.SalesSummaryEntry{Period: k, Total: totals[k].InexactFloat64()})
	}
	return out, nil
}
