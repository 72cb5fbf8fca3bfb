package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

func TestTimeframeToDateRange(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{name: "ThisWeek", tf: TimeframeThisWeek, wantStart: time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC), wantEnd: now},
		{name: "LastWeek", tf: TimeframeLastWeek, wantStart: time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC), wantEnd: time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)},
		{name: "ThisMonth", tf: TimeframeThisMonth, wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), wantEnd: now},
		{name: "LastMonth", tf: TimeframeLastMonth, wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "ThisYear", tf: TimeframeThisYear, wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), wantEnd: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := timeframeToDateRange(tt.tf, now)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTimeframeSelectedMsg_Apply(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	var filter transaction.ListFilter

	TimeframeSelectedMsg{Start: start, End: end}.Apply(&filter)

	require.NotNil(t, filter.StartDate)
	assert.Equal(t, start, *filter.StartDate)
	assert.Equal(t, end, *filter.EndDate)

	TimeframeSelectedMsg{All: true}.Apply(&filter)

	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
}

func TestTimeframePicker_CustomRangeRejectsReversedDates(t *testing.T) {
	p := NewTimeframePicker(TimeframeThisWeek)

	for range int(TimeframeCustom) {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.IsSelecting())

	p.startInput.SetValue("2024-03-31")
	p.endInput.SetValue("2024-03-01")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Error(t, p.err)
}
