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

// Package mock serves canned ManageAction responses from json files.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/safe"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrUnsafeActionName = errors.New("unsafe action name")
	ErrMockNotFound     = errors.New("mock data not found")
)

// Service resolves actionName to <dataDir>/<actionName>.json.
type Service struct {
	dataDir string
	delay   time.Duration

	mu    sync.RWMutex
	cache map[string]json.RawMessage
	// bumped on every invalidation, a read started before it is not cached
	gens     map[string]uint64
	readFile func(string) ([]byte, error)
	watcher  *fsnotify.Watcher
}

// ResolveDataDir returns the first existing candidate, or the first
// candidate when none exists.
func ResolveDataDir(configured string) string {
	candidates := []string{"data", filepath.Join("apps", "mock-server", "data")}
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			return c
		}
	}
	return candidates[0]
}

func NewService(cfg config.MockConfig) *Service {
	return &Service{
		dataDir:  ResolveDataDir(cfg.DataDir),
		delay:    cfg.DelayDuration(),
		cache:    make(map[string]json.RawMessage),
		gens:     make(map[string]uint64),
		readFile: os.ReadFile,
	}
}

// DataDir returns the directory mock files are read from.
func (s *Service) DataDir() string {
	return s.dataDir
}

// IsSafeActionName rejects names that could escape the data directory.
func IsSafeActionName(name string) bool {
	return name != "" &&
		!strings.Contains(name, "/") &&
		!strings.Contains(name, "\\") &&
		!strings.Contains(name, "..")
}

// Handle waits for the configured delay and returns the raw file content
// for req.ActionName.
func (s *Service) Handle(ctx context.Context, req model.ManageActionRequest) (json.RawMessage, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.Load(req.ActionName)
}

// Load returns the content of the mock file for actionName.
func (s *Service) Load(actionName string) (json.RawMessage, error) {
	if !IsSafeActionName(actionName) {
		return nil, errors.Wrapf(ErrUnsafeActionName, "%q", actionName)
	}

	s.mu.RLock()
	data, ok := s.cache[actionName]
	gen := s.gens[actionName]
	s.mu.RUnlock()
	if ok {
		return data, nil
	}

	raw, err := s.readFile(filepath.Join(s.dataDir, actionName+".json"))
	if err != nil {
		return nil, errors.Wrap(ErrMockNotFound, err.Error())
	}
	if !sonic.Valid(raw) {
		return nil, errors.Wrapf(ErrMockNotFound, "invalid json in %s.json", actionName)
	}

	s.mu.Lock()
	if s.gens[actionName] == gen {
		s.cache[actionName] = raw
	}
	s.mu.Unlock()
	return raw, nil
}

// NotFound builds the envelope returned when no mock file matches.
func NotFound(actionName string) model.ManageActionResponse {
	return model.ManageActionResponse{
		Status: 0,
		Msg:    fmt.Sprintf("mock data not found: data/%s.json", actionName),
		LogID:  uuid.NewString(),
		Data:   json.RawMessage("null"),
	}
}

// Watch drops cached files when they change on disk.
func (s *Service) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dataDir); err != nil {
		_ = watcher.Close()
		return err
	}
	s.watcher = watcher

	safe.Go(func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.invalidate(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnw("mock data watcher error", "dir", s.dataDir, "error", err)
			}
		}
	})
	log.Infow("watching mock data", "dir", s.dataDir)
	return nil
}

func (s *Service) invalidate(file string) {
	name := strings.TrimSuffix(filepath.Base(file), ".json")
	s.mu.Lock()
	delete(s.cache, name)
	s.gens[name]++
	s.mu.Unlock()
	log.Debugw("mock data invalidated", "action", name)
}

// Close stops the watcher.
func (s *Service) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}
