package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type unlockStage int

const (
	stageUnlock  unlockStage = iota // existing vault
	stageCreate                     // first run, choose a password
	stageConfirm                    // first run, repeat it
)

// unlockSubmitMsg carries the master password to the root model.
type unlockSubmitMsg struct {
	password string
}

// unlockErrMsg reports that the vault rejected the password.
type unlockErrMsg struct {
	err error
}

// unlockCancelMsg abandons the action that needed the vault.
type unlockCancelMsg struct{}

// unlockModel asks for the vault master password. The root model shows it
// the first time an action needs the vault; reason says which action.
type unlockModel struct {
	input  textinput.Model
	stage  unlockStage
	reason string
	first  string // held between create and confirm
	errMsg string
}

func newUnlockModel(firstRun bool, reason string) unlockModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	stage := stageUnlock
	if firstRun {
		stage = stageCreate
	}
	return unlockModel{input: ti, stage: stage, reason: reason}
}

func (m unlockModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m unlockModel) Update(msg tea.Msg) (unlockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// every printable key belongs to the input, so only control keys act
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case msg.Type == tea.KeyEsc:
			return m, func() tea.Msg { return unlockCancelMsg{} }
		case key.Matches(msg, zstyle.KeyEnter):
			return m.submit()
		}

	case unlockErrMsg:
		m.errMsg = msg.err.Error()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m unlockModel) submit() (unlockModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.errMsg = ""

	switch m.stage {
	case stageCreate:
		m.first = val
		m.stage = stageConfirm
		return m, nil

	case stageConfirm:
		first := m.first
		m.first = ""
		if val != first {
			m.stage = stageCreate
			m.errMsg = "passwords do not match"
			return m, nil
		}
	}

	return m, func() tea.Msg { return unlockSubmitMsg{password: val} }
}

func (m unlockModel) prompt() string {
	switch m.stage {
	case stageCreate:
		return "create master password:"
	case stageConfirm:
		return "confirm password:"
	}
	return "master password:"
}

func (m unlockModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)

	var b strings.Builder
	b.WriteString("\n" + indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent))) + "\n")
	b.WriteString(indent.Render(zstyle.MutedText.Render("zalias vault")) + "\n\n")

	if m.reason != "" {
		b.WriteString("  " + m.reason + "\n")
	}
	if m.stage != stageUnlock {
		b.WriteString("  " + zstyle.MutedText.Render("no vault yet, this password will create one") + "\n")
	}

	b.WriteString("\n  " + m.prompt() + "\n  " + m.input.View() + "\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n  " + zstyle.MutedText.Render("enter unlock  esc cancel") + "\n")
	return b.String()
}
