// Package tui implements the interactive zalias front end.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zalias/internal/profile"
	"github.com/zarlcorp/zalias/internal/store"
)

var accent = lipgloss.Color("#5FAFD7")

type viewID int

const (
	viewMenu viewID = iota
	viewUnlock
	viewGenerate
	viewList
	viewDetail
	viewForget
)

// GenerateFunc composes a new profile.
type GenerateFunc func() (profile.Profile, error)

// OpenFunc unlocks the vault with the master password.
type OpenFunc func(password []byte) (*store.Store, error)

// DirOpener opens the vault stored under dir, creating dir if needed.
func DirOpener(dir string) OpenFunc {
	return func(password []byte) (*store.Store, error) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return store.Open(zfilesystem.NewOSFileSystem(dir), password)
	}
}

// Model is the root TUI model. The vault stays locked until an action
// needs it; that action is parked, the unlock view is shown, and the
// action is replayed once the vault opens.
type Model struct {
	version    string
	generateFn GenerateFunc
	openFn     OpenFunc
	firstRun   bool
	vault      *store.Store

	parked   tea.Msg
	returnTo viewID

	active   viewID
	unlocker unlockModel
	menu     menuModel
	generate generateModel
	list     listModel
	detail   detailModel
	forget   forgetModel

	width int
}

// New creates the root model.
func New(version string, gen GenerateFunc, open OpenFunc, firstRun bool) Model {
	m := Model{
		version:    version,
		generateFn: gen,
		openFn:     open,
		firstRun:   firstRun,
		active:     viewMenu,
	}
	m.menu = newMenuModel(version, m.vaultStatus())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case unlockSubmitMsg:
		return m.unlock(msg.password)

	case unlockCancelMsg:
		m.parked = nil
		m.active = m.returnTo
		return m, tea.ClearScreen

	case navigateMsg:
		return m.navigate(msg.view)

	case saveProfileMsg:
		if m.vault == nil {
			return m.requireVault(msg, "unlock the vault to save this profile")
		}
		return m.save(msg.profile)

	case viewRecordMsg:
		m.detail = newDetailModel(msg.record)
		m.active = viewDetail
		return m, tea.ClearScreen

	case forgetStartMsg:
		m.forget = newForgetModel(msg.record, m.active)
		m.active = viewForget
		return m, tea.ClearScreen

	case forgetProfileMsg:
		return m.forgetRecord(msg.record)
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewUnlock:
		m.unlocker, cmd = m.unlocker.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewForget:
		m.forget, cmd = m.forget.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.active {
	case viewUnlock:
		return m.unlocker.View()
	case viewMenu:
		return m.menu.View()
	case viewGenerate:
		body = m.generate.View()
	case viewList:
		body = m.list.View()
	case viewDetail:
		body = m.detail.View()
	case viewForget:
		body = m.forget.View()
	}

	return "\n" + zstyle.RenderHeader("zalias", viewTitle(m.active), accent) + "\n" +
		zstyle.RenderSeparator(m.width) + "\n" +
		body + "\n" +
		zstyle.RenderFooter(helpFor(m.active)) + "\n"
}

func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate Profile"
	case viewList:
		return "Vault"
	case viewDetail:
		return "Saved Profile"
	case viewForget:
		return "Forget"
	}
	return ""
}

var (
	helpCopy = []zstyle.HelpPair{
		{Key: "enter", Desc: "copy field"},
		{Key: "c", Desc: "copy all"},
		{Key: "r", Desc: "reveal"},
	}
	helpLeave = []zstyle.HelpPair{
		{Key: "esc", Desc: "back"},
		{Key: "q", Desc: "quit"},
	}
)

func helpFor(id viewID) []zstyle.HelpPair {
	var pairs []zstyle.HelpPair
	switch id {
	case viewGenerate:
		pairs = append(pairs, helpCopy...)
		pairs = append(pairs, zstyle.HelpPair{Key: "s", Desc: "save"}, zstyle.HelpPair{Key: "n", Desc: "new"})
	case viewList:
		pairs = append(pairs, zstyle.HelpPair{Key: "j/k", Desc: "navigate"}, zstyle.HelpPair{Key: "enter", Desc: "view"},
			zstyle.HelpPair{Key: "d", Desc: "forget"})
	case viewDetail:
		pairs = append(pairs, helpCopy...)
		pairs = append(pairs, zstyle.HelpPair{Key: "d", Desc: "forget"})
	case viewForget:
		return []zstyle.HelpPair{{Key: "y", Desc: "confirm"}, {Key: "any", Desc: "cancel"}}
	}
	return append(pairs, helpLeave...)
}

// requireVault parks msg and shows the unlock view.
func (m Model) requireVault(msg tea.Msg, reason string) (tea.Model, tea.Cmd) {
	m.parked = msg
	m.returnTo = m.active
	m.unlocker = newUnlockModel(m.firstRun, reason)
	m.active = viewUnlock
	return m, tea.Batch(tea.ClearScreen, m.unlocker.Init())
}

func (m Model) unlock(password string) (tea.Model, tea.Cmd) {
	buf := []byte(password)
	defer zcrypto.Erase(buf)

	v, err := m.openFn(buf)
	if err != nil {
		m.unlocker, _ = m.unlocker.Update(unlockErrMsg{err: err})
		return m, nil
	}

	m.vault = v
	m.firstRun = false
	m.active = m.returnTo

	parked := m.parked
	m.parked = nil
	if parked == nil {
		return m, nil
	}
	return m.Update(parked)
}

// vaultStatus summarizes the vault for the menu.
func (m Model) vaultStatus() string {
	switch {
	case m.vault != nil:
		records, err := m.vault.List()
		if err != nil {
			return "unlocked"
		}
		return countLabel(len(records))
	case m.firstRun:
		return "not created"
	}
	return "locked"
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.vaultStatus())
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		p, err := m.generateFn()
		if err != nil {
			m.menu.flash = "generate: " + err.Error()
			m.active = viewMenu
			return m, clearFlashAfter()
		}
		m.generate = newGenerateModel(p)
		m.active = viewGenerate
		return m, tea.ClearScreen

	case viewList:
		if m.vault == nil {
			return m.requireVault(navigateMsg{view: viewList}, "unlock the vault to browse saved profiles")
		}
		m, cmd := m.showList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) showList() (Model, tea.Cmd) {
	m.active = viewList

	records, err := m.vault.List()
	if err != nil {
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		return m, clearFlashAfter()
	}
	m.list = newListModel(records)
	return m, nil
}

func (m Model) save(p profile.Profile) (tea.Model, tea.Cmd) {
	r, err := m.vault.Save(p)
	if err != nil {
		m.generate.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	var cmd tea.Cmd
	m.generate, cmd = m.generate.Update(profileSavedMsg{id: r.ShortID()})
	return m, cmd
}

func (m Model) forgetRecord(r store.Record) (tea.Model, tea.Cmd) {
	err := m.vault.Delete(r.ID)

	m, _ = m.showList()
	if err != nil {
		m.list.flash = "forget: " + err.Error()
	} else {
		m.list.flash = "forgot " + r.ShortID()
	}
	return m, tea.Batch(tea.ClearScreen, clearFlashAfter())
}

// Close releases the vault if it was unlocked. Call after the program exits.
func (m Model) Close() {
	if m.vault != nil {
		m.vault.Close()
	}
}
