// Package tui provides the terminal level studio, served locally or over
// SSH via Wish.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/preview"
	"github.com/vovakirdan/courier-levels/internal/storage"
	"github.com/vovakirdan/courier-levels/internal/synth"
)

type screen int

const (
	screenMenu screen = iota
	screenPrompt
	screenGenerating
	screenPreview
	screenHistory
)

type menuAction int

const (
	actionQuick menuAction = iota
	actionPrompt
	actionCurrent
	actionHistory
	actionClear
	actionQuit
)

// MenuItem is one entry of the studio menu.
type MenuItem struct {
	Title  string
	Action menuAction
	Tier   config.Tier
}

func defaultMenu() []MenuItem {
	items := make([]MenuItem, 0, 8)
	for _, t := range config.Tiers() {
		items = append(items, MenuItem{Title: "Quick level: " + t.Title(), Action: actionQuick, Tier: t})
	}
	return append(items,
		MenuItem{Title: "Describe a level (AI)", Action: actionPrompt},
		MenuItem{Title: "Show current level", Action: actionCurrent},
		MenuItem{Title: "Level history", Action: actionHistory},
		MenuItem{Title: "Clear current level", Action: actionClear},
		MenuItem{Title: "Quit", Action: actionQuit},
	)
}

// promptDoneMsg reports whether a prompt request was accepted.
type promptDoneMsg struct {
	accepted bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// StudioOptions configure a studio session.
type StudioOptions struct {
	Service *synth.Service
	Events  *ChannelObserver // Must be among the service's observers
	Store   *storage.Store   // Optional; enables history
	Width   int
	Height  int
}

// StudioModel is the Bubble Tea model for the level studio: pick a tier or
// describe a level, watch it generate, then preview it.
type StudioModel struct {
	ctx     context.Context
	svc     *synth.Service
	events  *ChannelObserver
	store   *storage.Store
	items   []MenuItem
	cursor  int
	screen  screen
	input   textinput.Model
	spinner spinner.Model
	history HistoryModel
	help    help.Model
	keys    StudioKeyMap

	current  level.Config
	origin   level.Origin
	hasLevel bool
	pending  string // Prompt being generated
	status   string

	width    int
	height   int
	quitting bool
}

// NewStudioModel creates a studio bound to ctx; cancelling ctx aborts any
// outstanding generation request.
func NewStudioModel(ctx context.Context, opts StudioOptions) StudioModel {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	ti := textinput.New()
	ti.Placeholder = "icy rooftops with a fast thief"
	ti.CharLimit = 200
	ti.Width = opts.Width - 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := StudioModel{
		ctx:     ctx,
		svc:     opts.Service,
		events:  opts.Events,
		store:   opts.Store,
		items:   defaultMenu(),
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    DefaultStudioKeyMap(),
		width:   opts.Width,
		height:  opts.Height,
	}
	m.help.Width = opts.Width

	if cfg, ok := opts.Service.Current(); ok {
		m.current, m.hasLevel = cfg, true
		m.origin, _ = opts.Service.Origin()
	} else if rec := m.storedCurrent(); rec != nil {
		m.current, m.hasLevel = rec.Config, true
		m.origin = level.Origin{Kind: rec.Origin, Tier: rec.Tier, Prompt: rec.Prompt}
	}
	return m
}

// storedCurrent returns the level a previous run left current.
func (m StudioModel) storedCurrent() *storage.Record {
	if m.store == nil {
		return nil
	}
	rec, err := m.store.Current()
	if err != nil {
		return nil
	}
	return rec
}

// Init starts listening for synthesis events.
func (m StudioModel) Init() tea.Cmd {
	return tea.Batch(m.events.Wait(), m.spinner.Tick)
}

// Update handles messages for the studio.
func (m StudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 8
		m.history, _ = m.history.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SynthesisStartedMsg:
		if msg.Origin.Kind == level.OriginPrompt {
			m.pending = msg.Origin.Prompt
		}
		return m, m.events.Wait()

	case SynthesisEndedMsg:
		if msg.Origin.Kind != level.OriginQuick {
			m.pending = ""
		}
		return m, m.events.Wait()

	case LevelReadyMsg:
		m.current, m.origin, m.hasLevel = msg.Config, msg.Origin, true
		m.status = readyStatus(msg.Origin)
		if m.screen != screenHistory || msg.Origin.Kind == level.OriginHistory {
			m.screen = screenPreview
		}
		if m.screen == screenHistory {
			m.history.Reload()
		}
		return m, m.events.Wait()

	case promptDoneMsg:
		if !msg.accepted {
			m.status = "A level is already being generated. Please wait."
			if m.screen == screenGenerating {
				m.screen = screenMenu
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == screenPrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for the active screen.
func (m StudioModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Help) && m.screen != screenPrompt {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case screenPrompt:
		return m.handlePromptKey(msg)
	case screenHistory:
		return m.handleHistoryKey(msg)
	case screenGenerating:
		if key.Matches(msg, m.keys.Back) {
			m.screen = screenMenu
		}
		return m, nil
	case screenPreview:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.History):
			return m.openHistory()
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
			m.screen = screenMenu
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.History):
		return m.openHistory()
	case key.Matches(msg, m.keys.Select):
		return m.choose(m.items[m.cursor])
	}
	return m, nil
}

func (m StudioModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// choose runs the action of a menu item.
func (m StudioModel) choose(item MenuItem) (tea.Model, tea.Cmd) {
	m.status = ""

	switch item.Action {
	case actionQuick:
		svc, tier := m.svc, string(item.Tier)
		return m, func() tea.Msg {
			svc.SynthesizeQuick(tier)
			return nil
		}

	case actionPrompt:
		if m.svc.Generating() {
			m.screen = screenGenerating
			return m, nil
		}
		m.screen = screenPrompt
		m.input.SetValue("")
		return m, m.input.Focus()

	case actionCurrent:
		if !m.hasLevel {
			m.status = "No level applied. The game uses its built-in level."
			return m, nil
		}
		m.screen = screenPreview
		return m, nil

	case actionHistory:
		return m.openHistory()

	case actionClear:
		m.svc.ClearCurrent()
		m.current, m.origin, m.hasLevel = level.Config{}, level.Origin{}, false
		m.status = "Current level cleared. The game uses its built-in level."
		if m.store != nil {
			if err := m.store.ClearCurrent(); err != nil {
				m.status = fmt.Sprintf("Could not clear stored level: %v", err)
			}
		}
		return m, nil

	case actionQuit:
		return m.quit()
	}
	return m, nil
}

func (m StudioModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = screenMenu
		return m, nil

	case tea.KeyEnter:
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			m.status = "Describe the level you want first."
			return m, nil
		}
		m.input.Blur()
		m.screen = screenGenerating
		m.pending = prompt
		m.status = ""

		ctx, svc := m.ctx, m.svc
		return m, func() tea.Msg {
			_, accepted := svc.SynthesizeFromPrompt(ctx, prompt)
			return promptDoneMsg{accepted: accepted}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m StudioModel) openHistory() (tea.Model, tea.Cmd) {
	m.history = NewHistoryModel(m.store, m.width, m.height)
	m.screen = screenHistory
	return m, nil
}

func (m StudioModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		return m, nil

	case key.Matches(msg, m.keys.Select):
		rec, ok := m.history.Selected()
		if !ok {
			return m, nil
		}
		if err := m.store.SetCurrent(rec.ID); err != nil {
			m.status = fmt.Sprintf("Could not mark level current: %v", err)
			return m, nil
		}
		svc := m.svc
		return m, func() tea.Msg {
			svc.Apply(rec.Config, level.Origin{Kind: level.OriginHistory, Tier: rec.Tier, Prompt: rec.Prompt})
			return nil
		}

	case key.Matches(msg, m.keys.Delete):
		rec, ok := m.history.Selected()
		if !ok {
			return m, nil
		}
		if err := m.store.Delete(rec.ID); err != nil {
			m.status = fmt.Sprintf("Could not delete level: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %q.", rec.Name)
		m.history.Reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// readyStatus describes where a newly applied level came from.
func readyStatus(o level.Origin) string {
	switch o.Kind {
	case level.OriginPrompt:
		return "AI level ready."
	case level.OriginFallback:
		return "The AI service was unavailable. Here is a procedural medium level instead."
	case level.OriginQuick:
		return fmt.Sprintf("Quick %s level ready.", config.Tier(o.Tier).Title())
	case level.OriginHistory:
		return "Stored level applied."
	case level.OriginFile:
		return "Level file applied."
	}
	return "Level ready."
}

// View renders the active screen.
func (m StudioModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C O U R I E R   L E V E L S", m.width)))
	b.WriteString("\n\n")

	switch m.screen {
	case screenPrompt:
		b.WriteString("Describe the level you want:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case screenGenerating:
		b.WriteString(fmt.Sprintf("%s Generating %q...\n", m.spinner.View(), m.pending))
	case screenPreview:
		b.WriteString(m.renderPreview())
	case screenHistory:
		b.WriteString(m.history.View())
		b.WriteString("\n")
	default:
		b.WriteString(m.renderMenu())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(screenKeys{keys: m.keys, screen: m.screen})))
	return b.String()
}

func (m StudioModel) renderMenu() string {
	var b strings.Builder
	b.WriteString(centerText("Pick a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.svc.Generating() && m.pending != "" {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s Still generating %q\n", m.spinner.View(), m.pending))
	}
	return b.String()
}

func (m StudioModel) renderPreview() string {
	if !m.hasLevel {
		return "No level applied.\n"
	}
	card := preview.Card(m.current, m.width-4)
	if m.origin.Prompt != "" {
		card = fmt.Sprintf("Prompt: %q\n\n%s", m.origin.Prompt, card)
	}
	return card + "\n"
}

// Screen names the screen currently showing.
func (m StudioModel) Screen() string {
	return [...]string{"menu", "prompt", "generating", "preview", "history"}[m.screen]
}

// Current returns the level shown in the preview.
func (m StudioModel) Current() (level.Config, level.Origin, bool) {
	return m.current, m.origin, m.hasLevel
}

// Status returns the status line.
func (m StudioModel) Status() string {
	return m.status
}

// centerText pads text so it appears centered in width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunStudio runs the studio in the local terminal until the user quits or
// ctx is cancelled.
func RunStudio(ctx context.Context, opts StudioOptions) error {
	defer opts.Events.Close()

	p := tea.NewProgram(NewStudioModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
