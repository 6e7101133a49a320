// Package capability dispatches named callback methods exposed by
// installed themes. Handlers are registered at theme-load time and
// looked up by exact (theme, method) match at request time.
package capability

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lumocms/themehub/internal/inventory"
)

// Input is the single structured argument passed to a handler.
type Input map[string]any

// Handler is a theme-provided callback invoked by name.
type Handler func(input Input) (any, error)

// Table maps (theme name, method name) to registered handlers.
type Table struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
}

// NewTable creates an empty capability table.
func NewTable() *Table {
	return &Table{handlers: make(map[string]map[string]Handler)}
}

// Register binds a handler to (theme, method), replacing any previous
// binding.
func (t *Table) Register(theme, method string, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	methods, ok := t.handlers[theme]
	if !ok {
		methods = make(map[string]Handler)
		t.handlers[theme] = methods
	}
	methods[method] = h
}

// Invoke looks up the handler for (theme, method) and calls it with
// input. A missing match is reported as a not-installed failure.
func (t *Table) Invoke(theme, method string, input Input) (any, error) {
	t.mu.RLock()
	h, ok := t.handlers[theme][method]
	t.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no handler for %s.%s", inventory.ErrNotInstalled, theme, method)
	}

	return h(input)
}

// Methods returns the sorted method names registered for a theme.
func (t *Table) Methods(theme string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.handlers[theme]))
	for m := range t.handlers[theme] {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// DropTheme removes every handler a theme registered. Called on
// uninstall.
func (t *Table) DropTheme(theme string) {
	t.mu.Lock()
	delete(t.handlers, theme)
	t.mu.Unlock()
}
