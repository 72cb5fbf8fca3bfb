package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/form"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// txFields binds the huh selects to the co-selection state. It lives on the
// heap so the pointers handed to huh stay valid across model copies.
type txFields struct {
	state      *form.TransactionForm
	typ        category.Type
	categoryID uuid.UUID
}

func newTxFields(state *form.TransactionForm) *txFields {
	return &txFields{state: state, typ: state.Type, categoryID: state.CategoryID}
}

// sync pushes whichever select the user changed into the form state and
// mirrors the result back into the other select.
func (f *txFields) sync() {
	switch {
	case f.categoryID != f.state.CategoryID:
		if f.categoryID == uuid.Nil {
			f.state.ClearCategory()
		} else if !f.state.SelectCategory(f.categoryID) {
			f.categoryID = f.state.CategoryID
		}

		f.typ = f.state.Type
	case f.typ != f.state.Type:
		f.state.SelectType(f.typ)
		f.categoryID = f.state.CategoryID
	}
}

func (f *txFields) typeOptions() []huh.Option[category.Type] {
	opts := []huh.Option[category.Type]{huh.NewOption("Any", category.Type(""))}
	for _, t := range category.Types {
		opts = append(opts, huh.NewOption(string(t), t))
	}

	return opts
}

func (f *txFields) categoryOptions() []huh.Option[uuid.UUID] {
	f.sync()

	opts := []huh.Option[uuid.UUID]{huh.NewOption("Select", uuid.Nil)}
	for _, c := range f.state.Options() {
		opts = append(opts, huh.NewOption(c.Name+"  ("+string(c.Type)+")", c.ID))
	}

	return opts
}

func newTransactionHuhForm(f *txFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[category.Type]().
				Key("type").
				Title("Type").
				Options(f.typeOptions()...).
				Value(&f.typ),

			huh.NewSelect[uuid.UUID]().
				Key("category").
				Title("Category").
				OptionsFunc(f.categoryOptions, &f.typ).
				Value(&f.categoryID).
				Validate(func(id uuid.UUID) error {
					if id == uuid.Nil {
						return errors.New("pick a category")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("...").
				Value(&f.state.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0,00 €").
				Value(&f.state.Amount).
				Validate(func(s string) error {
					_, err := form.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.state.Date).
				Validate(func(s string) error {
					_, err := form.ParseDate(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

// saveTransactionCmd creates a transaction, or updates editing when set.
func saveTransactionCmd(svc *transaction.Service, editing *transaction.Transaction, state *form.TransactionForm) tea.Cmd {
	if editing == nil {
		params, err := state.CreateParams()
		if err != nil {
			return func() tea.Msg { return statusMsg{err: err} }
		}

		return func() tea.Msg {
			ctx, cancel := DbCtx()
			defer cancel()

			if _, err := svc.Create(ctx, params); err != nil {
				return statusMsg{err: err}
			}

			return statusMsg{text: "Transaction added."}
		}
	}

	params, err := state.UpdateParams()
	if err != nil {
		return func() tea.Msg { return statusMsg{err: err} }
	}

	id := editing.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := svc.Update(ctx, id, params); err != nil {
			return statusMsg{err: err}
		}

		return statusMsg{text: "Transaction saved."}
	}
}
