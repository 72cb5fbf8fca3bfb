package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/form"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
)

const dbTimeout = 5 * time.Second

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// FormatAmount formats an amount stored as cents, e.g. "12.50 €".
func FormatAmount(cents int64) string {
	return money.Format(cents)
}

// FormatSigned prefixes expenses with a minus sign.
func FormatSigned(t category.Type, cents int64) string {
	if t == category.TypeExpense {
		return "-" + money.Format(cents)
	}

	return "+" + money.Format(cents)
}

func FormatDate(t time.Time) string {
	return t.Format(form.DateLayout)
}

// Swatch renders a small block in the category colour.
func Swatch(color string) string {
	if !category.ValidColor(color) {
		return " "
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

func typeStyle(t category.Type) lipgloss.Style {
	if t == category.TypeIncome {
		return incomeStyle
	}

	return expenseStyle
}

// summaryLine renders "Income … | Expense … | Balance …".
func summaryLine(income, expense int64) string {
	balance := income - expense

	bal := incomeStyle
	if balance < 0 {
		bal = expenseStyle
	}

	return incomeStyle.Render("Income "+FormatAmount(income)) + "  |  " +
		expenseStyle.Render("Expense "+FormatAmount(expense)) + "  |  " +
		bal.Render("Balance "+FormatAmount(balance))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
