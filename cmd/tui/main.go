package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	categoryStore "github.com/MrJamesThe3rd/pocketbook/internal/category/store"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/database"
	"github.com/MrJamesThe3rd/pocketbook/internal/logging"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

type screen int

const (
	screenMenu screen = iota
	screenHome
	screenTransactions
	screenCategories
	screenAdd
)

type model struct {
	appName    string
	catService *category.Service
	txService  *transaction.Service

	current screen
	active  view.View
	size    tea.WindowSizeMsg
}

func newModel(appName string, db *sql.DB) model {
	catSvc := category.NewService(categoryStore.New(db))

	return model{
		appName:    appName,
		catService: catSvc,
		txService:  transaction.NewService(txStore.New(db), catSvc),
		current:    screenMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(s screen) (tea.Model, tea.Cmd) {
	switch s {
	case screenHome:
		m.active = view.NewHomeModel(m.catService)
	case screenTransactions:
		m.active = view.NewTransactionsModel(m.txService, m.catService)
	case screenCategories:
		m.active = view.NewCategoriesModel(m.catService, m.txService)
	case screenAdd:
		m.active = view.NewAddTransactionModel(m.txService, m.catService)
	default:
		return m, nil
	}

	m.current = s

	// replay the last known size so tables fit straight away
	var sizeCmd tea.Cmd
	if m.size.Width > 0 {
		size := m.size
		sizeCmd = func() tea.Msg { return size }
	}

	return m, tea.Batch(m.active.Init(), sizeCmd)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == screenMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(screenHome)
			case "2":
				return m.open(screenTransactions)
			case "3":
				return m.open(screenCategories)
			case "4":
				return m.open(screenAdd)
			}

			return m, nil
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.BackMsg:
		m.current = screenMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.current == screenMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Home\n" +
				"2. Transactions\n" +
				"3. Categories\n" +
				"4. Add Transaction\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.ShortHelp())

	return m.active.View() + "\n" + help
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea; logs only go to a file when asked.
	logOut := io.Discard
	if path := os.Getenv("TUI_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "tui")
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	if _, err := logging.Setup(logOut, cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	p := tea.NewProgram(newModel(cfg.App.Name, db), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
