package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
)

const barWidth = 30

// shareRow is one line of the expense breakdown.
type shareRow struct {
	cat    *category.Category
	share  float64 // 0..1 of the visible total
	hidden bool
}

// expenseBreakdown orders expense categories by total, largest first, and
// computes each visible category's share of the visible total.
func expenseBreakdown(cats []*category.Category, hidden map[uuid.UUID]bool) ([]shareRow, int64) {
	var total int64

	rows := make([]shareRow, 0, len(cats))

	for _, c := range cats {
		if c.Type != category.TypeExpense {
			continue
		}

		rows = append(rows, shareRow{cat: c, hidden: hidden[c.ID]})

		if !hidden[c.ID] {
			total += c.TotalAmount
		}
	}

	slices.SortStableFunc(rows, func(a, b shareRow) int {
		return cmp.Compare(b.cat.TotalAmount, a.cat.TotalAmount)
	})

	if total > 0 {
		for i := range rows {
			if !rows[i].hidden {
				rows[i].share = float64(rows[i].cat.TotalAmount) / float64(total)
			}
		}
	}

	return rows, total
}

type HomeModel struct {
	CommonModel
	categories *category.Service

	cats    []*category.Category
	hidden  map[uuid.UUID]bool
	cursor  int
	loading bool
	err     error
}

func NewHomeModel(catSvc *category.Service) HomeModel {
	return HomeModel{
		categories: catSvc,
		hidden:     make(map[uuid.UUID]bool),
		loading:    true,
	}
}

func (m HomeModel) Title() string     { return "Home" }
func (m HomeModel) ShortHelp() string { return "Esc: back | ↑/↓: move | space: show/hide | r: refresh" }

func (m HomeModel) Init() tea.Cmd {
	return loadCategoriesCmd(m.categories, category.ListFilter{})
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		m.err = msg.err
		m.cats = msg.cats

		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		rows, _ := expenseBreakdown(m.cats, m.hidden)

		switch msg.String() {
		case "esc", "q":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case " ":
			if m.cursor < len(rows) {
				id := rows[m.cursor].cat.ID
				m.hidden[id] = !m.hidden[id]
			}
		case "r":
			m.loading = true
			return m, m.Init()
		}
	}

	return m, nil
}

func (m HomeModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
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

	var b strings.Builder

	b.WriteString(titleStyle.Render("Overview") + "\n\n")
	b.WriteString(summaryLine(income, expense) + "\n\n")

	rows, total := expenseBreakdown(m.cats, m.hidden)
	if len(rows) == 0 {
		b.WriteString(faintStyle.Render("No expense categories yet."))
		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	b.WriteString(fmt.Sprintf("Expenses by category (%s shown)\n\n", FormatAmount(total)))

	for i, r := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%s %-20s %14s  %5.1f%%  %s",
			cursor,
			Swatch(r.cat.Color),
			r.cat.Name,
			FormatAmount(r.cat.TotalAmount),
			r.share*100,
			bar(r.cat.Color, r.share),
		)

		if r.hidden {
			line = faintStyle.Render(fmt.Sprintf("%s%s %-20s %14s  hidden", cursor, " ", r.cat.Name, FormatAmount(r.cat.TotalAmount)))
		}

		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func bar(color string, share float64) string {
	n := int(share*barWidth + 0.5)

	style := lipgloss.NewStyle()
	if category.ValidColor(color) {
		style = style.Foreground(lipgloss.Color(color))
	}

	return style.Render(strings.Repeat("█", n)) + strings.Repeat("·", barWidth-n)
}
