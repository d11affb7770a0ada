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

package menuroute

import (
	"fmt"
	"sync"

	"github.com/go-arcade/menuroute/pkg/log"
)

// WarningKind classifies a non-fatal build or registration problem.
type WarningKind string

const (
	WarnDuplicateCode  WarningKind = "duplicate_code"
	WarnOrphanNode     WarningKind = "orphan_node"
	WarnInvalidPattern WarningKind = "invalid_pattern"
	WarnReservedCode   WarningKind = "reserved_code"
)

// Warning describes input that was skipped or overridden.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Code   string      `json:"code"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Kind, w.Code, w.Detail)
}

// WarningSink receives warnings as they are raised.
type WarningSink func(Warning)

// LogWarning writes w to the global logger.
func LogWarning(w Warning) {
	log.Warnw("menu route warning", "kind", string(w.Kind), "code", w.Code, "detail", w.Detail)
}

// warningCollector records warnings and forwards them to next.
type warningCollector struct {
	mu    sync.Mutex
	items []Warning
	next  WarningSink
}

func newWarningCollector(next WarningSink) *warningCollector {
	if next == nil {
		next = LogWarning
	}
	return &warningCollector{next: next}
}

func (c *warningCollector) report(w Warning) {
	c.mu.Lock()
	c.items = append(c.items, w)
	c.mu.Unlock()
	c.next(w)
}

func (c *warningCollector) reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// snapshot returns a copy of the recorded warnings, never nil.
func (c *warningCollector) snapshot() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.items))
	copy(out, c.items)
	return out
}
