// Package ledger appends payment and till transaction rows to CSV files and
// reads them back for reporting.
package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

const TimestampLayout = "2006-01-02 15:04:05"

// timestampColumn is the first header cell of both logs.
const timestampColumn = "timestamp"

var utf8BOM = []byte("\xef\xbb\xbf")

type Ledger struct {
	PaymentsPath     string
	TransactionsPath string

	mu sync.Mutex
}

func New(paymentsPath, transactionsPath string) *Ledger {
	return &Ledger{PaymentsPath: paymentsPath, TransactionsPath: transactionsPath}
}

func (l *Ledger) AppendPayment(ctx context.Context, row models.PaymentRow) error {
	return l.appendRow(ctx, l.PaymentsPath, []*models.PaymentRow{&row})
}

func (l *Ledger) AppendTransaction(ctx context.Context, row models.TransactionRow) error {
	return l.appendRow(ctx, l.TransactionsPath, []*models.TransactionRow{&row})
}

// Payments returns every payment row in file order. A missing file is an
// empty log.
func (l *Ledger) Payments(ctx context.Context) ([]models.PaymentRow, error) {
	raw, first, err := readLog(ctx, l.PaymentsPath)
	if err != nil || raw == nil {
		return []models.PaymentRow{}, err
	}

	var rows []*models.PaymentRow
	if err := unmarshalRows(raw, first, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", l.PaymentsPath, err)
	}
	out := make([]models.PaymentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}

// Transactions returns every till transaction in file order. The legacy till
// wrote "Total,Payment,Change" before each row and no timestamp; such rows
// come back with an empty Timestamp.
func (l *Ledger) Transactions(ctx context.Context) ([]models.TransactionRow, error) {
	raw, first, err := readLog(ctx, l.TransactionsPath)
	if err != nil || raw == nil {
		return []models.TransactionRow{}, err
	}

	if isLegacyTransactionHeader(first) {
		return legacyTransactions(raw)
	}

	var rows []*models.TransactionRow
	if err := unmarshalRows(raw, first, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", l.TransactionsPath, err)
	}
	out := make([]models.TransactionRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}

// appendRow writes the header only when the file did not exist before this call.
func (l *Ledger) appendRow(ctx context.Context, path string, rows interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if isNew {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	return f.Close()
}

// readLog returns the file contents and its first record. A missing or
// empty file yields nil contents.
func readLog(ctx context.Context, path string) ([]byte, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, nil
	}

	first, err := gocsv.LazyCSVReader(bytes.NewReader(raw)).Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, first, nil
}

// unmarshalRows decodes by header when the file starts with one, and by
// column order otherwise, as the legacy till wrote its payments log.
func unmarshalRows(raw []byte, first []string, out interface{}) error {
	var err error
	if len(first) > 0 && strings.TrimSpace(first[0]) == timestampColumn {
		err = gocsv.UnmarshalBytes(raw, out)
	} else {
		err = gocsv.UnmarshalCSVWithoutHeaders(gocsv.LazyCSVReader(bytes.NewReader(raw)), out)
	}
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil
	}
	return err
}

func isLegacyTransactionHeader(record []string) bool {
	return len(record) == 3 && strings.EqualFold(strings.TrimSpace(record[0]), "total")
}

// legacyTransactions also accepts rows appended after the switch to the
// timestamped layout, so the reader allows a varying field count.
func legacyTransactions(raw []byte) ([]models.TransactionRow, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.TransactionRow, 0, len(records))
	for _, rec := range records {
		switch {
		case isLegacyTransactionHeader(rec):
		case len(rec) == 3:
			out = append(out, models.TransactionRow{Total: rec[0], Payment: rec[1], Change: rec[2]})
		case len(rec) == 4:
			out = append(out, models.TransactionRow{Timestamp: rec[0], Total: rec[1], Payment: rec[2], Change: rec[3]})
		}
	}
	return out, nil
}
