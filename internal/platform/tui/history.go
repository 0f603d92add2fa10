package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/courier-levels/internal/preview"
	"github.com/vovakirdan/courier-levels/internal/storage"
)

// History layout constants
const (
	minWidthForDetail = 110 // Minimum width to show the selected level beside the table
	maxHistory        = 100 // Max levels to load
)

// HistoryModel lists stored levels in a table.
type HistoryModel struct {
	store   *storage.Store
	records []storage.Record
	table   table.Model
	keys    StudioKeyMap
	width   int
	height  int
	err     error
}

// NewHistoryModel creates a history view and loads the latest levels.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultStudioKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 24},
		{Title: "Origin", Width: 8},
		{Title: "Tier", Width: 6},
		{Title: "Saved", Width: 12},
	}

	// Give spare width to the name column
	tableWidth := m.width - 4
	if m.showDetail() {
		tableWidth -= m.width / 2
	}
	if spare := tableWidth - 70; spare > 0 {
		columns[1].Width += min(spare, 24)
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m HistoryModel) showDetail() bool {
	return m.width >= minWidthForDetail
}

// Reload fetches the latest levels from the store.
func (m *HistoryModel) Reload() {
	m.records, m.err = nil, nil
	if m.store != nil {
		m.records, m.err = m.store.Recent(maxHistory)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded records.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			r.ShortID(),
			r.Name,
			string(r.Origin),
			r.Tier,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Selected returns the highlighted record.
func (m HistoryModel) Selected() (storage.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return storage.Record{}, false
	}
	return m.records[i], true
}

// Len returns the number of loaded records.
func (m HistoryModel) Len() int {
	return len(m.records)
}

// Update handles navigation keys and resizes.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) {
			m.table, cmd = m.table.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table and, on wide terminals, the selected level.
func (m HistoryModel) View() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := tableStyle.Render(m.renderTableContent())

	if rec, ok := m.Selected(); ok && m.showDetail() {
		detail := preview.Card(rec.Config, m.width/2-4)
		return lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", detail)
	}
	return content
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable.\nNo level database is open.")
	case m.err != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load history:\n%v", m.err))
	case len(m.records) == 0:
		return emptyStyle.Render("No levels stored yet.\nGenerate one from the menu!")
	}
	return m.table.View()
}
