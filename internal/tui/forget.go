package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/store"
)

// forgetStartMsg asks the root model to confirm deleting a saved profile.
type forgetStartMsg struct {
	record store.Record
}

// forgetProfileMsg deletes a saved profile once confirmed.
type forgetProfileMsg struct {
	record store.Record
}

// forgetModel is the y/n confirmation before a saved profile is deleted.
type forgetModel struct {
	record store.Record
	from   viewID
}

func newForgetModel(r store.Record, from viewID) forgetModel {
	return forgetModel{record: r, from: from}
}

func (m forgetModel) Init() tea.Cmd {
	return nil
}

func (m forgetModel) Update(msg tea.Msg) (forgetModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m forgetModel) handleKey(msg tea.KeyMsg) (forgetModel, tea.Cmd) {
	// quit always works
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if msg.String() == "y" {
		r := m.record
		return m, func() tea.Msg { return forgetProfileMsg{record: r} }
	}

	// any other key cancels
	return m, goTo(m.from)
}

func (m forgetModel) View() string {
	p := m.record.Profile

	s := "\n  " + zstyle.Subtitle.Render("forget "+p.Name+"?") + "\n\n"
	s += "  " + zstyle.MutedText.Render(p.Username+"  "+p.City+", "+p.Country+"  "+m.record.ShortID()) + "\n\n"
	s += "  " + zstyle.StatusWarn.Render("this cannot be undone.") + " (y/n)\n"

	return s
}
