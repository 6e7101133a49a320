// Package settings records which installed theme is currently active.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lumocms/themehub/internal/inventory"
)

// ErrPersistFailed reports that the active-theme setting could not be
// written; the switch is not considered to have occurred.
var ErrPersistFailed = errors.New("failed to persist active theme setting")

// ActiveManager switches the active theme. Switching invalidates every
// registered cache, because changing the active theme changes every
// cached rendered artifact downstream.
type ActiveManager struct {
	mu          sync.Mutex
	persist     func(name string) error
	isInstalled func(name string) (bool, error)
	hooks       []func()
}

// NewActiveManager creates a manager that persists through persist and
// validates names through isInstalled.
func NewActiveManager(persist func(string) error, isInstalled func(string) (bool, error)) *ActiveManager {
	return &ActiveManager{persist: persist, isInstalled: isInstalled}
}

// OnSwitch registers an invalidation hook run after every successful
// switch. The rendering layer registers its cache flush here.
func (m *ActiveManager) OnSwitch(hook func()) {
	m.mu.Lock()
	m.hooks = append(m.hooks, hook)
	m.mu.Unlock()
}

// SetActive makes name the active theme. The name must be installed;
// persistence failure leaves the previous setting in effect and no
// hooks run.
func (m *ActiveManager) SetActive(name string) error {
	installed, err := m.isInstalled(name)
	if err != nil {
		return err
	}
	if !installed {
		return fmt.Errorf("%w: %s", inventory.ErrNotInstalled, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persist(name); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	for _, hook := range m.hooks {
		hook()
	}
	return nil
}
