package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// StudioKeyMap defines the key bindings for the level studio.
type StudioKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Submit    key.Binding
	Back      key.Binding
	History   key.Binding
	Delete    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultStudioKeyMap returns default key bindings.
func DefaultStudioKeyMap() StudioKeyMap {
	return StudioKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// screenKeys narrows the key map to the bindings of one screen.
type screenKeys struct {
	keys   StudioKeyMap
	screen screen
}

var _ help.KeyMap = screenKeys{}

// ShortHelp returns key bindings for the short help view.
func (s screenKeys) ShortHelp() []key.Binding {
	k := s.keys
	switch s.screen {
	case screenPrompt:
		escBack := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
		return []key.Binding{k.Submit, escBack, k.ForceQuit}
	case screenGenerating:
		return []key.Binding{k.Back, k.ForceQuit}
	case screenPreview:
		return []key.Binding{k.Back, k.History, k.Quit}
	case screenHistory:
		return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Back}
	default:
		return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
	}
}

// FullHelp returns key bindings for the full help view.
func (s screenKeys) FullHelp() [][]key.Binding {
	k := s.keys
	return [][]key.Binding{
		s.ShortHelp(),
		{k.Help, k.Quit},
	}
}
