// Package tui provides the interactive cue browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/cue"
	"github.com/jmylchreest/earcon/internal/settings"
)

var (
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// cueItem adapts a catalog cue to the bubbles list.
type cueItem struct {
	cue     *catalog.Cue
	mode    cue.Mode
	enabled bool
}

func (i cueItem) Title() string {
	badge := disabledStyle.Render("muted")
	if i.enabled {
		badge = enabledStyle.Render("plays")
	}
	return fmt.Sprintf("%s  %s", i.cue.Name, badge)
}

func (i cueItem) Description() string {
	return fmt.Sprintf("sound: %s  setting: %s", i.cue.Sound.ID, i.mode)
}

func (i cueItem) FilterValue() string { return i.cue.ID + " " + i.cue.Name }

// Model is the TUI state.
type Model struct {
	list    list.Model
	keys    KeyMap
	service *cue.Service
	store   *settings.Store
	status  string
}

// playedMsg reports a finished preview playback.
type playedMsg struct{ soundID string }

// NewModel creates the cue browser over the engine and its settings store.
func NewModel(service *cue.Service, store *settings.Store) Model {
	keys := DefaultKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "earcon cues"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Preview, keys.CycleMode, keys.CycleLegacy}
	}

	m := Model{
		list:    l,
		keys:    keys,
		service: service,
		store:   store,
	}
	m.refreshItems()
	return m
}

func (m *Model) refreshItems() {
	cues := m.service.Catalog().Cues()
	items := make([]list.Item, 0, len(cues))
	for _, c := range cues {
		mode := cue.ModeAuto
		if v, ok := m.store.Value(c.SettingKey); ok {
			mode = cue.ParseMode(v)
		}
		items = append(items, cueItem{
			cue:     c,
			mode:    mode,
			enabled: m.service.IsEnabled(c),
		})
	}
	m.list.SetItems(items)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case playedMsg:
		m.status = "played " + msg.soundID
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Preview):
			if item, ok := m.list.SelectedItem().(cueItem); ok {
				return m, m.preview(item.cue.Sound)
			}

		case key.Matches(msg, m.keys.CycleMode):
			if item, ok := m.list.SelectedItem().(cueItem); ok {
				m.cycleSetting(item.cue.SettingKey, item.mode)
				m.refreshItems()
			}
			return m, nil

		case key.Matches(msg, m.keys.CycleLegacy):
			legacy := cue.ModeAuto
			if v, ok := m.store.Value(catalog.LegacyEnabledKey); ok {
				legacy = cue.ParseMode(v)
			}
			m.cycleSetting(catalog.LegacyEnabledKey, legacy)
			m.refreshItems()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// preview plays a sound regardless of enablement, off the UI loop.
func (m Model) preview(snd *catalog.Sound) tea.Cmd {
	return func() tea.Msg {
		m.service.PlaySound(context.Background(), snd, false)
		return playedMsg{soundID: snd.ID}
	}
}

// cycleSetting advances auto -> on -> off -> auto and persists.
func (m *Model) cycleSetting(settingKey string, current cue.Mode) {
	var next cue.Mode
	switch current {
	case cue.ModeAuto:
		next = cue.ModeOn
	case cue.ModeOn:
		next = cue.ModeOff
	default:
		next = cue.ModeAuto
	}
	m.store.Set(settingKey, next.String())
	if err := m.store.Save(); err != nil {
		m.status = "failed to save settings: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("%s = %s", settingKey, next)
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.list.View()
	if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}
	return view
}

// Run starts the TUI and blocks until it exits.
func Run(service *cue.Service, store *settings.Store) error {
	p := tea.NewProgram(NewModel(service, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
