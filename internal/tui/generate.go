package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/profile"
)

// saveProfileMsg requests storing a profile in the vault.
type saveProfileMsg struct {
	profile profile.Profile
}

// profileSavedMsg confirms the profile was stored.
type profileSavedMsg struct {
	id string
}

// generateModel shows a freshly composed profile. Nothing is kept unless
// the user saves it.
type generateModel struct {
	fieldList
	profile profile.Profile
	saved   bool
}

func newGenerateModel(p profile.Profile) generateModel {
	return generateModel{
		fieldList: fieldList{fields: profileFields(p)},
		profile:   p,
	}
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case profileSavedMsg:
		m.saved = true
		m.flash = "saved " + msg.id
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	switch {
	case key.Matches(msg, zstyle.KeyQuit):
		return m, tea.Quit
	case key.Matches(msg, zstyle.KeyBack):
		return m, goTo(viewMenu)
	}

	var cmd tea.Cmd
	var ok bool
	if m.fieldList, cmd, ok = m.fieldList.handleKey(msg); ok {
		return m, cmd
	}

	switch msg.String() {
	case "s":
		p := m.profile
		return m, func() tea.Msg { return saveProfileMsg{profile: p} }
	case "n":
		return m, goTo(viewGenerate)
	}

	return m, nil
}

func (m generateModel) View() string {
	title := zstyle.Title.Render("new profile")
	if m.saved {
		title += "  " + zstyle.MutedText.Render("in vault")
	}
	return "\n  " + title + "\n\n" + m.fieldList.view()
}
