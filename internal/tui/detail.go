package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/store"
)

// detailModel shows one vault record with its id and save time.
type detailModel struct {
	fieldList
	record store.Record
}

func newDetailModel(r store.Record) detailModel {
	fields := append([]profileField{{label: "id", value: r.ID}}, profileFields(r.Profile)...)
	fields = append(fields, profileField{
		label: "saved",
		value: r.CreatedAt.Local().Format("2006-01-02 15:04"),
	})
	return detailModel{fieldList: fieldList{fields: fields}, record: r}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, zstyle.KeyQuit):
			return m, tea.Quit
		case key.Matches(msg, zstyle.KeyBack):
			return m, goTo(viewList)
		case msg.String() == "d":
			r := m.record
			return m, func() tea.Msg { return forgetStartMsg{record: r} }
		}

		var cmd tea.Cmd
		m.fieldList, cmd, _ = m.fieldList.handleKey(msg)
		return m, cmd

	case flashMsg:
		m.flash = ""
	}

	return m, nil
}

func (m detailModel) View() string {
	return "\n  " + zstyle.Subtitle.Render(m.record.Profile.Name) + "\n\n" + m.fieldList.view()
}
