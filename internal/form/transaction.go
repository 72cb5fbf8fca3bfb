// Package form holds the editable state behind the add/edit screens.
package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

const DateLayout = time.DateOnly

// TransactionForm keeps the type and category fields of a transaction form in
// step. Picking a category sets the type; switching the type narrows the
// category options and brings back the category last picked for that type.
type TransactionForm struct {
	Type        category.Type
	CategoryID  uuid.UUID
	Description string
	Amount      string
	Date        string

	categories []*category.Category
	lastByType map[category.Type]uuid.UUID
}

func NewTransactionForm(cats []*category.Category) *TransactionForm {
	return &TransactionForm{
		Date:       time.Now().Format(DateLayout),
		categories: cats,
		lastByType: make(map[category.Type]uuid.UUID),
	}
}

// EditTransactionForm prefills the form from tx and remembers its category.
func EditTransactionForm(cats []*category.Category, tx *transaction.Transaction) *TransactionForm {
	f := NewTransactionForm(cats)
	f.Type = tx.Type
	f.Description = tx.Description
	f.Amount = money.Amount(tx.Amount).Decimal().StringFixed(2)
	f.Date = tx.Date.Format(DateLayout)

	if c := f.find(tx.CategoryID); c != nil {
		f.CategoryID = c.ID
		f.lastByType[c.Type] = c.ID
	}

	return f
}

func (f *TransactionForm) find(id uuid.UUID) *category.Category {
	for _, c := range f.categories {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// SelectCategory picks the category with the given id. Unknown ids are ignored.
func (f *TransactionForm) SelectCategory(id uuid.UUID) bool {
	c := f.find(id)
	if c == nil {
		return false
	}

	f.CategoryID = c.ID
	f.Type = c.Type
	f.lastByType[c.Type] = c.ID

	return true
}

// SelectType switches the type. The category becomes the one last picked for
// t, or none if nothing was picked for t yet.
func (f *TransactionForm) SelectType(t category.Type) {
	f.Type = t
	f.CategoryID = f.lastByType[t]
}

// ClearCategory drops the current pick and forgets it for the current type.
func (f *TransactionForm) ClearCategory() {
	f.CategoryID = uuid.Nil
	delete(f.lastByType, f.Type)
}

// Category returns the picked category, or nil.
func (f *TransactionForm) Category() *category.Category {
	if f.CategoryID == uuid.Nil {
		return nil
	}

	return f.find(f.CategoryID)
}

// Options lists the categories selectable for the current type, or all of
// them when no type is chosen.
func (f *TransactionForm) Options() []*category.Category {
	if f.Type == "" {
		return f.categories
	}

	opts := make([]*category.Category, 0, len(f.categories))

	for _, c := range f.categories {
		if c.Type == f.Type {
			opts = append(opts, c)
		}
	}

	return opts
}

// CreateParams validates the text fields and converts them for the service.
func (f *TransactionForm) CreateParams() (transaction.CreateParams, error) {
	if f.CategoryID == uuid.Nil {
		return transaction.CreateParams{}, fmt.Errorf("%w: pick a category", transaction.ErrInvalid)
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	date, err := ParseDate(f.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		Type:        f.Type,
		CategoryID:  f.CategoryID,
		Description: strings.TrimSpace(f.Description),
		Amount:      amount,
		Date:        date,
	}, nil
}

// UpdateParams is CreateParams expressed as a full update.
func (f *TransactionForm) UpdateParams() (transaction.UpdateParams, error) {
	p, err := f.CreateParams()
	if err != nil {
		return transaction.UpdateParams{}, err
	}

	return transaction.UpdateParams{
		Type:        &p.Type,
		CategoryID:  &p.CategoryID,
		Description: &p.Description,
		Amount:      &p.Amount,
		Date:        &p.Date,
	}, nil
}

// ParseAmount reads a positive amount such as "12.50" or "12,50".
func ParseAmount(s string) (int64, error) {
	cents, err := money.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount must be a number like 12.50", transaction.ErrInvalid)
	}

	if cents <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", transaction.ErrInvalid)
	}

	return cents, nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", transaction.ErrInvalid)
	}

	return t, nil
}
