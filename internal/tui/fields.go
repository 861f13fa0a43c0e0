package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/profile"
	"github.com/zarlcorp/zalias/internal/render"
)

const maskedValue = "••••••••"

// profileField is a labelled value shown in the generate and detail views.
type profileField struct {
	label  string
	value  string
	secret bool
}

func profileFields(p profile.Profile) []profileField {
	var fields []profileField
	for _, f := range render.Fields(p) {
		fields = append(fields, profileField{
			label:  f.Label,
			value:  f.Value,
			secret: f.Label == "password",
		})
	}
	return fields
}

// display returns the on-screen value, masking secrets until revealed.
func (f profileField) display(revealed bool) string {
	if f.secret && !revealed {
		return maskedValue
	}
	return f.value
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

// fieldList is the selectable field table shared by the generate and
// detail views: cursor movement, copying and password reveal.
type fieldList struct {
	fields   []profileField
	cursor   int
	revealed bool
	flash    string
}

// handleKey reports whether the key was consumed.
func (l fieldList) handleKey(msg tea.KeyMsg) (fieldList, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, zstyle.KeyUp):
		if l.cursor > 0 {
			l.cursor--
		}
		return l, nil, true

	case key.Matches(msg, zstyle.KeyDown):
		if l.cursor < len(l.fields)-1 {
			l.cursor++
		}
		return l, nil, true

	case key.Matches(msg, zstyle.KeyEnter):
		if len(l.fields) == 0 {
			return l, nil, true
		}
		// the real value, even while masked
		return l.copy(l.fields[l.cursor].value, "copied!")
	}

	switch msg.String() {
	case "c":
		return l.copy(fieldsText(l.fields), "copied all!")
	case "r":
		l.revealed = !l.revealed
		return l, nil, true
	}

	return l, nil, false
}

func (l fieldList) copy(text, done string) (fieldList, tea.Cmd, bool) {
	if err := copyToClipboard(text); err != nil {
		l.flash = "copy: " + err.Error()
	} else {
		l.flash = done
	}
	return l, clearFlashAfter(), true
}

func (l fieldList) view() string {
	marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")

	var b strings.Builder
	for i, f := range l.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == l.cursor {
			fmt.Fprintf(&b, "  %s %s %s\n", marker, label, f.display(l.revealed))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", label, f.display(l.revealed))
		}
	}

	// the flash line is always reserved so the layout does not jump
	b.WriteString("\n")
	if l.flash != "" {
		b.WriteString("  " + zstyle.StatusOK.Render(l.flash))
	}
	b.WriteString("\n")
	return b.String()
}

func fieldsText(fields []profileField) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}
