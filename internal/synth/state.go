package synth

import (
	"sync"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// State holds the level currently applied to the game. It has a single
// writer (the Service that owns it) and any number of readers; values are
// cloned on the way in and out so callers cannot mutate the stored level.
type State struct {
	mu      sync.RWMutex
	current level.Config
	set     bool
	origin  level.Origin
}

// NewState returns an empty state cell.
func NewState() *State {
	return &State{}
}

// Set replaces the current level.
func (s *State) Set(cfg level.Config, origin level.Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg.Clone()
	s.origin = origin
	s.set = true
}

// Get returns the current level, if any.
func (s *State) Get() (level.Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return level.Config{}, false
	}
	return s.current.Clone(), true
}

// Origin returns how the current level was produced.
func (s *State) Origin() (level.Origin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin, s.set
}

// Clear drops the current level so the game falls back to its built-in one.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = level.Config{}
	s.origin = level.Origin{}
	s.set = false
}
