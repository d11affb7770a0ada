// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shutdown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewManager)

// Hook releases one component during shutdown.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Manager tracks the shutdown state and the hooks to run when it begins.
type Manager struct {
	shuttingDown atomic.Bool
	once         sync.Once
	done         chan struct{}

	mu    sync.Mutex
	hooks []Hook
}

func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

// IsShuttingDown returns true once Shutdown has been called.
func (m *Manager) IsShuttingDown() bool {
	return m.shuttingDown.Load()
}

// Register adds a hook. Hooks run in reverse registration order.
func (m *Manager) Register(name string, fn func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, Hook{Name: name, Fn: fn})
}

// Shutdown marks the service as shutting down.
// Returns false if it was already shutting down.
func (m *Manager) Shutdown() bool {
	if !m.shuttingDown.CompareAndSwap(false, true) {
		return false
	}
	m.once.Do(func() { close(m.done) })
	return true
}

// Wait is closed when Shutdown is called.
func (m *Manager) Wait() <-chan struct{} {
	return m.done
}

// Run triggers Shutdown and runs every hook, newest first. All hooks run
// even if some fail; their errors are joined.
func (m *Manager) Run(ctx context.Context) error {
	m.Shutdown()

	m.mu.Lock()
	hooks := make([]Hook, len(m.hooks))
	copy(hooks, m.hooks)
	m.hooks = nil
	m.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.Fn(ctx); err != nil {
			log.Errorw("shutdown hook failed", "name", h.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		log.Infow("shutdown hook done", "name", h.Name)
	}
	return errors.Join(errs...)
}
