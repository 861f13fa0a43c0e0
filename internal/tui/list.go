package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/store"
)

const (
	nameWidth  = 22
	placeWidth = 28
)

// viewRecordMsg opens the detail view for a record.
type viewRecordMsg struct {
	record store.Record
}

// listModel is the vault browser, newest first.
type listModel struct {
	records []store.Record
	cursor  int
	flash   string
}

func newListModel(records []store.Record) listModel {
	return listModel{records: records}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case flashMsg:
		m.flash = ""
	}
	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch {
	case key.Matches(msg, zstyle.KeyQuit):
		return m, tea.Quit
	case key.Matches(msg, zstyle.KeyBack):
		return m, goTo(viewMenu)
	case len(m.records) == 0:
		return m, nil
	case key.Matches(msg, zstyle.KeyUp):
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case key.Matches(msg, zstyle.KeyDown):
		m.cursor = min(m.cursor+1, len(m.records)-1)
		return m, nil
	}

	r := m.records[m.cursor]
	switch {
	case key.Matches(msg, zstyle.KeyEnter):
		return m, func() tea.Msg { return viewRecordMsg{record: r} }
	case msg.String() == "d":
		return m, func() tea.Msg { return forgetStartMsg{record: r} }
	}
	return m, nil
}

func (m listModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if len(m.records) == 0 {
		b.WriteString("  " + zstyle.MutedText.Render("no saved profiles") + "\n")
	} else {
		marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")
		head := fmt.Sprintf("%-*s %-*s %-10s %s", nameWidth, "name", placeWidth, "place", "saved", "id")
		b.WriteString("    " + zstyle.MutedText.Render(head) + "\n")

		for i, r := range m.records {
			p := r.Profile
			line := fmt.Sprintf("%-*s %-*s %-10s %s",
				nameWidth, truncate(p.Name, nameWidth),
				placeWidth, truncate(p.City+", "+p.Country, placeWidth),
				r.CreatedAt.Local().Format("2006-01-02"),
				zstyle.MutedText.Render(r.ShortID()))
			if i == m.cursor {
				b.WriteString("  " + marker + " " + line + "\n")
			} else {
				b.WriteString("    " + line + "\n")
			}
		}

		b.WriteString("\n  " + zstyle.MutedText.Render(countLabel(len(m.records))) + "\n")
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString("  " + zstyle.StatusOK.Render(m.flash))
	}
	b.WriteString("\n")
	return b.String()
}

func countLabel(n int) string {
	if n == 1 {
		return "1 saved profile"
	}
	return fmt.Sprintf("%d saved profiles", n)
}

// truncate shortens s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
