package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalid         = errors.New("invalid transaction")
	ErrTypeMismatch    = errors.New("transaction type does not match its category")
	ErrUnknownCategory = errors.New("unknown category")

	ErrAmbiguousCategory = errors.New("more than one category has this name")
)

// Transaction represents a single dated income or expense record.
type Transaction struct {
	ID          uuid.UUID
	Type        category.Type
	CategoryID  uuid.UUID
	Category    *category.Category // Loaded via JOIN
	Description string
	Amount      int64 // Amount in cents, always positive
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Signed returns the amount as it affects the balance: negative for expenses.
func (t *Transaction) Signed() int64 {
	if t.Type == category.TypeExpense {
		return -t.Amount
	}

	return t.Amount
}

// Summary holds the income and expense totals of a set of transactions.
type Summary struct {
	Income  int64
	Expense int64
	Balance int64
}

func Totals(txs []*Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		switch tx.Type {
		case category.TypeIncome:
			s.Income += tx.Amount
		case category.TypeExpense:
			s.Expense += tx.Amount
		}
	}

	s.Balance = s.Income - s.Expense

	return s
}

// RunningBalance returns the balance after each transaction, accumulated in
// the order given.
func RunningBalance(txs []*Transaction) []int64 {
	balances := make([]int64, len(txs))

	var acc int64

	for i, tx := range txs {
		acc += tx.Signed()
		balances[i] = acc
	}

	return balances
}
