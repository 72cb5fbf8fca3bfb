package view

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/form"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateForm
)

type TransactionsModel struct {
	CommonModel
	txService  *transaction.Service
	catService *category.Service

	state           txState
	timeframePicker TimeframePicker
	timeframe       TimeframeSelectedMsg
	table           table.Model
	txs             []*transaction.Transaction
	balances        []int64

	typeFilterIdx int

	form    *huh.Form
	fields  *txFields
	editing *transaction.Transaction

	// addOnly returns to the menu once the form is done.
	addOnly bool

	confirm ConfirmDialog

	saving  bool
	loading bool
	status  string
}

func NewTransactionsModel(txSvc *transaction.Service, catSvc *category.Service) TransactionsModel {
	return TransactionsModel{
		txService:       txSvc,
		catService:      catSvc,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Category", Width: 16},
			{Title: "Description", Width: 28},
			{Title: "Amount", Width: 14},
			{Title: "Balance", Width: 14},
		}),
	}
}

// NewAddTransactionModel opens straight into an empty transaction form.
func NewAddTransactionModel(txSvc *transaction.Service, catSvc *category.Service) TransactionsModel {
	m := NewTransactionsModel(txSvc, catSvc)
	m.addOnly = true
	m.state = txStateForm

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | a: add | e/Enter: edit | d: delete | x: export | t: type filter | c: timeframe | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	if m.addOnly {
		return openTxFormCmd(m.catService, nil)
	}

	return nil
}

func (m TransactionsModel) filter() transaction.ListFilter {
	filter := transaction.ListFilter{Type: typeFilters[m.typeFilterIdx]}
	m.timeframe.Apply(&filter)

	return filter
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.timeframe = msg
		m.loading = true
		m.state = txStateList

		return m, loadTxsCmd(m.txService, m.filter())

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshTable()

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case txFormReadyMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m.leaveForm()
		}

		return m.openForm(msg)

	case statusMsg:
		if m.state == txStateForm && m.fields != nil {
			return m.afterSave(msg)
		}

		m.status = msg.text
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		}

		if m.state != txStateList {
			return m, nil
		}

		m.loading = true

		return m, loadTxsCmd(m.txService, m.filter())

	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	if m.confirm.Open {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)

		return m, cmd
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return m, Back
		case "c":
			m.timeframePicker.Reset()
			m.state = txStateTimeframe

			return m, nil
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.loading = true

			return m, loadTxsCmd(m.txService, m.filter())
		case "r":
			m.loading = true
			return m, loadTxsCmd(m.txService, m.filter())
		case "a":
			m.table.Blur()
			return m, openTxFormCmd(m.catService, nil)
		case "e", "enter":
			if tx := m.current(); tx != nil {
				m.table.Blur()
				return m, openTxFormCmd(m.catService, tx)
			}

			return m, nil
		case "d":
			if tx := m.current(); tx != nil {
				m.confirm = NewDeleteDialog(deleteTxCmd(m.txService, tx), nil)
			}

			return m, nil
		case "x":
			if len(m.txs) == 0 {
				return m, nil
			}

			return m, exportTxsCmd(m.txs, export.Filename(time.Now()))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) current() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m TransactionsModel) openForm(msg txFormReadyMsg) (tea.Model, tea.Cmd) {
	state := form.NewTransactionForm(msg.cats)
	if msg.editing != nil {
		state = form.EditTransactionForm(msg.cats, msg.editing)
	}

	m.editing = msg.editing
	m.status = ""
	m.fields = newTxFields(state)
	m.form = newTransactionHuhForm(m.fields)
	m.state = txStateForm

	return m, m.form.Init()
}

func (m TransactionsModel) leaveForm() (tea.Model, tea.Cmd) {
	m.form = nil
	m.fields = nil
	m.editing = nil

	if m.addOnly {
		return m, Back
	}

	m.state = txStateList
	m.table.Focus()

	return m, nil
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.saving {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveForm()
	}

	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	m.fields.sync()

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.status = ""
	m.saving = true

	return m, saveTransactionCmd(m.txService, m.editing, m.fields.state)
}

// afterSave reopens the form with the entered values when saving failed.
func (m TransactionsModel) afterSave(msg statusMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	if msg.err != nil {
		m.status = "Error: " + msg.err.Error()
		m.form = newTransactionHuhForm(m.fields)

		return m, m.form.Init()
	}

	m.status = msg.text

	next, cmd := m.leaveForm()
	if m.addOnly {
		return next, cmd
	}

	mm := next.(TransactionsModel)
	mm.loading = true

	return mm, loadTxsCmd(mm.txService, mm.filter())
}

// balancesNewestFirst returns the running balance after each transaction,
// accumulated from the oldest, for a list sorted newest first.
func balancesNewestFirst(txs []*transaction.Transaction) []int64 {
	chrono := slices.Clone(txs)
	slices.Reverse(chrono)

	balances := transaction.RunningBalance(chrono)
	slices.Reverse(balances)

	return balances
}

func (m *TransactionsModel) refreshTable() {
	m.balances = balancesNewestFirst(m.txs)

	rows := make([]table.Row, len(m.txs))
	for i, tx := range m.txs {
		catName := ""
		if tx.Category != nil {
			catName = tx.Category.Name
		}

		rows[i] = table.Row{
			FormatDate(tx.Date),
			catName,
			tx.Description,
			FormatSigned(tx.Type, tx.Amount),
			FormatAmount(m.balances[i]),
		}
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TransactionsModel) View() string {
	if m.confirm.Open {
		return lipgloss.NewStyle().Padding(1).Render(m.confirm.View())
	}

	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateForm:
		if m.form == nil {
			return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
		}

		if m.saving {
			return lipgloss.NewStyle().Padding(2).Render("Saving...")
		}

		title := "New Transaction"
		if m.editing != nil {
			title = "Edit Transaction"
		}

		errLine := ""
		if m.status != "" {
			errLine = "\n" + errorStyle.Render(m.status)
		}

		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render(title) + "\n\n" + m.form.View() + errLine)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	sum := transaction.Totals(m.txs)

	header := fmt.Sprintf(
		"%s  |  [t] Type: %s  |  [c] %s",
		summaryLine(sum.Income, sum.Expense),
		activeStyle(typeFilterLabel(typeFilters[m.typeFilterIdx])),
		activeStyle(m.timeframe.Label()),
	)

	statusLine := ""
	if m.status != "" {
		statusLine = faintStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		tableBox(m.table),
		statusLine,
	))
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func loadTxsCmd(svc *transaction.Service, filter transaction.ListFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

// txFormReadyMsg carries the categories the transaction form offers.
type txFormReadyMsg struct {
	cats    []*category.Category
	editing *transaction.Transaction
	err     error
}

func openTxFormCmd(svc *category.Service, editing *transaction.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := svc.List(ctx, category.ListFilter{})
		if err == nil && len(cats) == 0 {
			err = fmt.Errorf("create a category first")
		}

		return txFormReadyMsg{cats: cats, editing: editing, err: err}
	}
}

func deleteTxCmd(svc *transaction.Service, tx *transaction.Transaction) tea.Cmd {
	id := tx.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			return statusMsg{err: err}
		}

		return statusMsg{text: "Transaction deleted."}
	}
}

// exportTxsCmd writes the listed transactions to path as CSV.
func exportTxsCmd(txs []*transaction.Transaction, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return statusMsg{err: fmt.Errorf("creating export file: %w", err)}
		}
		defer f.Close()

		if err := export.Write(f, txs); err != nil {
			return statusMsg{err: err}
		}

		return statusMsg{text: fmt.Sprintf("Exported %d transactions to %s", len(txs), path)}
	}
}
