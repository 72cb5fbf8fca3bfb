package category

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type classifies a category, and every transaction filed under it, as money in or out.
type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

// Types lists the valid category types in display order.
var Types = []Type{TypeIncome, TypeExpense}

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType resolves a type case-insensitively ("expense" → TypeExpense).
func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}

	return "", false
}

var (
	ErrNotFound = errors.New("category not found")
	ErrInvalid  = errors.New("invalid category")
	ErrInUse    = errors.New("category has transactions")
)

// Category is a user-defined tag for transactions.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	Color     string // Hex colour, "#rgb" or "#rrggbb"
	CreatedAt time.Time
	UpdatedAt time.Time

	// Computed at read time from the referencing transactions.
	TotalAmount      int64 // Amount in cents
	TransactionCount int
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a "#rgb" or "#rrggbb" colour.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

type CreateParams struct {
	Name  string
	Type  Type
	Color string
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalid, TypeIncome, TypeExpense)
	}

	if !ValidColor(p.Color) {
		return fmt.Errorf("%w: color must be a hex colour like #ff0000", ErrInvalid)
	}

	return nil
}

// UpdateParams carries the fields to change; nil fields are left untouched.
type UpdateParams struct {
	Name  *string
	Type  *Type
	Color *string
}

type ListFilter struct {
	Type *Type
}
