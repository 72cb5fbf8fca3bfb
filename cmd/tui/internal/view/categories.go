package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/form"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type catState int

const (
	catStateList catState = iota
	catStateDetail
	catStateForm
)

// typeFilters is cycled with "f"; nil means all types.
var typeFilters = []*category.Type{nil, new(category.TypeIncome), new(category.TypeExpense)}

func typeFilterLabel(t *category.Type) string {
	if t == nil {
		return "All"
	}

	return string(*t)
}

type CategoriesModel struct {
	CommonModel
	catService *category.Service
	txService  *transaction.Service

	state  catState
	table  table.Model
	detail table.Model
	cats   []*category.Category

	filterIdx int

	// Detail view
	selected   *category.Category
	detailTxs  []*transaction.Transaction
	detailErr  error
	detailLoad bool

	// Add/edit form; fields is heap-allocated so huh bindings survive model copies.
	form    *huh.Form
	fields  *form.CategoryForm
	editing *category.Category

	confirm ConfirmDialog

	loading bool
	err     error
	status  string
}

func NewCategoriesModel(catSvc *category.Service, txSvc *transaction.Service) CategoriesModel {
	return CategoriesModel{
		catService: catSvc,
		txService:  txSvc,
		table: newTable([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 9},
			{Title: "Color", Width: 8},
			{Title: "Txs", Width: 5},
			{Title: "Total", Width: 16},
		}),
		detail: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Description", Width: 36},
			{Title: "Amount", Width: 16},
		}),
		loading: true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	switch m.state {
	case catStateDetail:
		return "Esc: back"
	case catStateForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | Enter: details | a: add | e: edit | d: delete | f: type filter | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return loadCategoriesCmd(m.catService, m.filter())
}

func (m CategoriesModel) filter() category.ListFilter {
	return category.ListFilter{Type: typeFilters[m.filterIdx]}
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.cats = msg.cats
			m.refreshTable()
		}

		return m, nil

	case loadCategoryTxsMsg:
		m.detailLoad = false
		m.detailErr = msg.err
		m.detailTxs = msg.txs
		m.refreshDetail()

		return m, nil

	case statusMsg:
		m.status = msg.text
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		}

		m.loading = true

		return m, m.Init()

	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(max(msg.Height-12, 5))
		m.detail.SetHeight(max(msg.Height-14, 5))

		return m, nil
	}

	if m.confirm.Open {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)

		return m, cmd
	}

	switch m.state {
	case catStateList:
		return m.updateList(msg)
	case catStateDetail:
		return m.updateDetail(msg)
	case catStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return m, Back
		case "r":
			m.loading = true
			return m, m.Init()
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(typeFilters)
			m.loading = true

			return m, m.Init()
		case "a":
			return m.openForm(nil)
		case "e":
			if c := m.current(); c != nil {
				return m.openForm(c)
			}

			return m, nil
		case "d":
			if c := m.current(); c != nil {
				m.confirm = deleteCategoryDialog(m.catService, c)
			}

			return m, nil
		case "enter":
			c := m.current()
			if c == nil {
				return m, nil
			}

			m.selected = c
			m.detailLoad = true
			m.state = catStateDetail

			return m, loadCategoryTxsCmd(m.txService, c.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) current() *category.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return nil
	}

	return m.cats[idx]
}

// deleteCategoryDialog asks before deleting c. When c still has transactions
// the dialog spells out that they go too and deletes with cascade.
func deleteCategoryDialog(svc *category.Service, c *category.Category) ConfirmDialog {
	if c.TransactionCount == 0 {
		return NewDeleteDialog(deleteCategoryCmd(svc, c, false), nil)
	}

	msg := fmt.Sprintf("%q has %d transaction(s) totalling %s.\nDeleting it deletes them too. This cannot be undone.",
		c.Name, c.TransactionCount, FormatAmount(c.TotalAmount))

	return NewConfirmDialog("Sure?", msg, "Delete all", deleteCategoryCmd(svc, c, true), nil)
}

func (m CategoriesModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && (keyMsg.String() == "esc" || keyMsg.String() == "q") {
		m.state = catStateList
		m.selected = nil

		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)

	return m, cmd
}

func (m CategoriesModel) openForm(c *category.Category) (tea.Model, tea.Cmd) {
	m.editing = c
	m.fields = form.NewCategoryForm()

	if c != nil {
		m.fields = form.EditCategoryForm(c)
	}

	typeOpts := make([]huh.Option[category.Type], 0, len(category.Types))
	for _, t := range category.Types {
		typeOpts = append(typeOpts, huh.NewOption(string(t), t))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.fields.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[category.Type]().
				Key("type").
				Title("Type").
				Options(typeOpts...).
				Value(&m.fields.Type),

			huh.NewInput().
				Key("color").
				Title("Color").
				Placeholder("#ff8800").
				Value(&m.fields.Color).
				Validate(func(s string) error {
					if !category.ValidColor(s) {
						return fmt.Errorf("use a hex colour like #ff8800")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = catStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = catStateList
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = catStateList
	m.form = nil
	m.table.Focus()

	return m, saveCategoryCmd(m.catService, m.editing, m.fields)
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, len(m.cats))
	for i, c := range m.cats {
		rows[i] = table.Row{
			c.Name,
			string(c.Type),
			c.Color,
			strconv.Itoa(c.TransactionCount),
			FormatAmount(c.TotalAmount),
		}
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *CategoriesModel) refreshDetail() {
	rows := make([]table.Row, len(m.detailTxs))
	for i, tx := range m.detailTxs {
		rows[i] = table.Row{FormatDate(tx.Date), tx.Description, FormatSigned(tx.Type, tx.Amount)}
	}

	m.detail.SetRows(rows)
	m.detail.SetCursor(0)
}

func (m CategoriesModel) View() string {
	if m.confirm.Open {
		return lipgloss.NewStyle().Padding(1).Render(m.confirm.View())
	}

	switch m.state {
	case catStateForm:
		title := "New Category"
		if m.editing != nil {
			title = "Edit " + m.editing.Name
		}

		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render(title) + "\n\n" + m.form.View())

	case catStateDetail:
		return m.detailView()
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render("Failed to load categories: " + m.err.Error()))
	}

	var income, expense int64

	for _, c := range m.cats {
		if c.Type == category.TypeIncome {
			income += c.TotalAmount
		} else {
			expense += c.TotalAmount
		}
	}

	header := fmt.Sprintf("Filter: [f] Type: %s", activeStyle(typeFilterLabel(typeFilters[m.filterIdx])))

	statusLine := ""
	if m.status != "" {
		statusLine = faintStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		summaryLine(income, expense),
		header,
		"",
		tableBox(m.table),
		statusLine,
	))
}

func (m CategoriesModel) detailView() string {
	if m.selected == nil {
		return ""
	}

	c := m.selected
	head := fmt.Sprintf("%s %s  %s  |  %d transaction(s)  |  %s",
		Swatch(c.Color),
		titleStyle.Render(c.Name),
		typeStyle(c.Type).Render(string(c.Type)),
		c.TransactionCount,
		FormatAmount(c.TotalAmount),
	)

	body := tableBox(m.detail)

	switch {
	case m.detailLoad:
		body = "Loading transactions..."
	case m.detailErr != nil:
		body = errorStyle.Render("Failed to load transactions: " + m.detailErr.Error())
	case len(m.detailTxs) == 0:
		body = faintStyle.Render("No transactions in this category.")
	}

	return lipgloss.NewStyle().Padding(1).Render(head + "\n\n" + body)
}

// Messages

type loadCategoriesMsg struct {
	cats []*category.Category
	err  error
}

func loadCategoriesCmd(svc *category.Service, filter category.ListFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := svc.List(ctx, filter)

		return loadCategoriesMsg{cats: cats, err: err}
	}
}

type loadCategoryTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func loadCategoryTxsCmd(svc *transaction.Service, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, transaction.ListFilter{CategoryID: &id})

		return loadCategoryTxsMsg{txs: txs, err: err}
	}
}

func saveCategoryCmd(svc *category.Service, editing *category.Category, fields *form.CategoryForm) tea.Cmd {
	params := *fields

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			c, err := svc.Create(ctx, params.Params())
			if err != nil {
				return statusMsg{err: err}
			}

			return statusMsg{text: fmt.Sprintf("Created %q.", c.Name)}
		}

		c, err := svc.Update(ctx, editing.ID, params.UpdateParams())
		if err != nil {
			return statusMsg{err: err}
		}

		return statusMsg{text: fmt.Sprintf("Saved %q.", c.Name)}
	}
}

func deleteCategoryCmd(svc *category.Service, c *category.Category, cascade bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.Delete(ctx, c.ID, cascade); err != nil {
			return statusMsg{err: err}
		}

		if cascade {
			return statusMsg{text: fmt.Sprintf("Deleted %q and %d transaction(s).", c.Name, c.TransactionCount)}
		}

		return statusMsg{text: fmt.Sprintf("Deleted %q.", c.Name)}
	}
}
