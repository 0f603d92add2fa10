package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// SynthesisStartedMsg is sent when a synthesis begins.
type SynthesisStartedMsg struct {
	Origin level.Origin
}

// SynthesisEndedMsg is sent when a synthesis finishes, successfully or not.
type SynthesisEndedMsg struct {
	Origin level.Origin
}

// LevelReadyMsg carries a level that just became current.
type LevelReadyMsg struct {
	Config level.Config
	Origin level.Origin
}

// ChannelObserver forwards synthesis events into a Bubble Tea program.
// Events are delivered in order; a full buffer blocks the sender until the
// program reads or Close is called.
type ChannelObserver struct {
	events chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

// NewChannelObserver creates an observer with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelObserver{
		events: make(chan tea.Msg, buffer),
		done:   make(chan struct{}),
	}
}

func (o *ChannelObserver) OnSynthesisStart(origin level.Origin) {
	o.send(SynthesisStartedMsg{Origin: origin})
}

func (o *ChannelObserver) OnSynthesisEnd(origin level.Origin) {
	o.send(SynthesisEndedMsg{Origin: origin})
}

func (o *ChannelObserver) OnLevelReady(cfg level.Config, origin level.Origin) {
	o.send(LevelReadyMsg{Config: cfg, Origin: origin})
}

func (o *ChannelObserver) send(msg tea.Msg) {
	select {
	case o.events <- msg:
	case <-o.done:
	}
}

// Close stops delivery. Pending and later events are dropped.
func (o *ChannelObserver) Close() {
	o.once.Do(func() { close(o.done) })
}

// Wait returns a command that delivers the next event.
func (o *ChannelObserver) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-o.events:
			return msg
		case <-o.done:
			return nil
		}
	}
}
