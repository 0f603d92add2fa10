package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory creates a backend from settings.
type Factory func(s Settings) (Completer, error)

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

type entry struct {
	factory     Factory
	description string
}

var (
	backends = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a backend factory. Typically called from init().
// Panics if the name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	name = strings.ToLower(name)
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("llm: backend %q already registered", name))
	}
	backends[name] = entry{factory: f, description: description}
}

// List returns all registered backends sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for name, e := range backends {
		result = append(result, BackendInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// New creates the backend registered under name (case-insensitive).
func New(name string, s Settings) (Completer, error) {
	mu.RLock()
	e, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("llm: unknown backend %q", name)
	}
	return e.factory(s)
}

// Exists reports whether a backend is registered under name.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
