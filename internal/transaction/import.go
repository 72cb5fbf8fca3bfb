package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
)

// ImportRow is one parsed line of an imported file. Categories are referenced
// by name because that is what people write in spreadsheets.
type ImportRow struct {
	Line         int
	Date         time.Time
	Type         category.Type // Optional; defaults to the category's type
	CategoryName string
	Description  string
	Amount       int64
}

// RowError reports the line of an import file that could not be accepted.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Import validates every row and stores all of them in a single database
// transaction. The first invalid row aborts the whole import.
func (s *Service) Import(ctx context.Context, rows []ImportRow) ([]*Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	cats, err := s.categories.List(ctx, category.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	byName := make(map[string][]*category.Category, len(cats))
	for _, c := range cats {
		key := strings.ToLower(c.Name)
		byName[key] = append(byName[key], c)
	}

	txs := make([]*Transaction, 0, len(rows))

	for _, row := range rows {
		c, err := resolveCategory(byName, row)
		if err != nil {
			return nil, &RowError{Line: row.Line, Err: err}
		}

		tx := &Transaction{
			Type:        row.Type,
			CategoryID:  c.ID,
			Description: strings.TrimSpace(row.Description),
			Amount:      row.Amount,
			Date:        row.Date,
		}

		if err := validate(tx); err != nil {
			return nil, &RowError{Line: row.Line, Err: err}
		}

		if err := reconcileType(tx, c); err != nil {
			return nil, &RowError{Line: row.Line, Err: err}
		}

		txs = append(txs, tx)
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

// resolveCategory finds the category a row names. Income and expense
// categories may share a name, so the row's type picks between them; a row
// without a type must name exactly one category.
func resolveCategory(byName map[string][]*category.Category, row ImportRow) (*category.Category, error) {
	candidates := byName[strings.ToLower(strings.TrimSpace(row.CategoryName))]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, row.CategoryName)
	}

	if row.Type != "" {
		var match *category.Category

		for _, c := range candidates {
			if c.Type != row.Type {
				continue
			}

			if match != nil {
				return nil, fmt.Errorf("%w: %q (%s)", ErrAmbiguousCategory, row.CategoryName, row.Type)
			}

			match = c
		}

		if match != nil {
			return match, nil
		}
	}

	if len(candidates) > 1 {
		return nil, fmt.Errorf("%w: %q, give the row a type", ErrAmbiguousCategory, row.CategoryName)
	}

	return candidates[0], nil
}
