package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/money"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// Header is the column row written first. It matches the importer's English
// profile so an export can be imported again.
var Header = []string{"Date", "Type", "Category", "Description", "Amount"}

// Delimiter separates columns in exported files.
const Delimiter = ';'

// Lister is the read side of the transaction service.
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service writes transactions as CSV.
type Service struct {
	transactions Lister
}

func NewService(transactions Lister) *Service {
	return &Service{transactions: transactions}
}

// Export writes every transaction matching filter to w, oldest first, and
// returns how many rows were written.
func (s *Service) Export(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	if err := Write(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// Write renders txs, given newest first, as CSV in chronological order.
func Write(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := len(txs) - 1; i >= 0; i-- {
		if err := cw.Write(record(txs[i])); err != nil {
			return fmt.Errorf("writing transaction %s: %w", txs[i].ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func record(tx *transaction.Transaction) []string {
	catName := ""
	if tx.Category != nil {
		catName = tx.Category.Name
	}

	return []string{
		tx.Date.Format(time.DateOnly),
		string(tx.Type),
		catName,
		tx.Description,
		money.Amount(tx.Amount).Decimal().StringFixed(2),
	}
}

// Filename returns the default name of an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", now.Format("20060102"))
}
