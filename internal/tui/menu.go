package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

func goTo(view viewID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: view} }
}

type menuItem struct {
	shortcut string
	label    string
	desc     string
	target   viewID
	quit     bool
}

var menuItems = []menuItem{
	{shortcut: "g", label: "Generate profile", desc: "compose a new fictional identity", target: viewGenerate},
	{shortcut: "b", label: "Browse vault", desc: "saved profiles, unlocks the vault", target: viewList},
	{shortcut: "q", label: "Quit", quit: true},
}

// menuModel is the start screen.
type menuModel struct {
	cursor  int
	version string
	// vault is a one-line vault summary, e.g. "locked" or "3 saved"
	vault string
	flash string
}

func newMenuModel(version, vault string) menuModel {
	return menuModel{version: version, vault: vault}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, zstyle.KeyQuit):
			return m, tea.Quit
		case key.Matches(msg, zstyle.KeyUp):
			m.cursor = max(m.cursor-1, 0)
			return m, nil
		case key.Matches(msg, zstyle.KeyDown):
			m.cursor = min(m.cursor+1, len(menuItems)-1)
			return m, nil
		case key.Matches(msg, zstyle.KeyEnter):
			return m, menuItems[m.cursor].cmd()
		}

		for i, it := range menuItems {
			if msg.String() == it.shortcut {
				m.cursor = i
				return m, it.cmd()
			}
		}

	case flashMsg:
		m.flash = ""
	}

	return m, nil
}

func (it menuItem) cmd() tea.Cmd {
	if it.quit {
		return tea.Quit
	}
	return goTo(it.target)
}

func (m menuModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s %s\n", zstyle.Title.Render("zalias"), zstyle.MutedText.Render(m.version))
	fmt.Fprintf(&b, "  %s\n\n", zstyle.MutedText.Render("vault: "+m.vault))

	for i, it := range menuItems {
		row := fmt.Sprintf("[%s] %-18s", it.shortcut, it.label)
		if i == m.cursor {
			b.WriteString(zstyle.Highlight.Render("  > "+row) + "  " + zstyle.MutedText.Render(it.desc) + "\n")
		} else {
			b.WriteString("    " + row + "\n")
		}
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString("  " + zstyle.StatusErr.Render(m.flash))
	}
	b.WriteString("\n")

	b.WriteString("  " + zstyle.MutedText.Render("j/k navigate  enter select  g/b shortcut  q quit") + "\n\n")
	return b.String()
}
