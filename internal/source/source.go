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

// Package source loads raw menu items for a snapshot key from a file,
// an upstream ManageAction endpoint or the function table.
package source

import (
	"bytes"
	"context"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/pkg/errors"
)

var (
	// ErrLoginExpired is returned when the upstream rejects the session token.
	ErrLoginExpired = errors.New("upstream login expired")
	// ErrNoSource is returned by the none source.
	ErrNoSource = errors.New("no menu source configured")
	// ErrItemsNotFound means the source has nothing stored for the key.
	ErrItemsNotFound = errors.New("menu items not found")
)

// ItemSource loads the menu items of one snapshot key.
type ItemSource interface {
	Load(ctx context.Context, key string) ([]menuroute.MenuItem, error)
}

// NoneSource never has items; snapshots must be pushed through the API.
type NoneSource struct{}

func (NoneSource) Load(context.Context, string) ([]menuroute.MenuItem, error) {
	return nil, ErrNoSource
}

// decodePayload reads either a bare item array or an object holding the
// array under listField. With unwrap set, a ManageAction envelope
// (status plus data) is checked and unwrapped first.
func decodePayload(data []byte, listField string, unwrap bool) ([]menuroute.MenuItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}

	if unwrap && data[0] == '{' {
		var env model.ManageActionResponse
		if err := sonic.Unmarshal(data, &env); err == nil && env.Status != 0 && len(env.Data) > 0 {
			if env.LoginRequired() {
				return nil, errors.Wrapf(ErrLoginExpired, "status %d: %s", env.Status, env.Msg)
			}
			if !env.Succeeded() {
				return nil, errors.Errorf("action failed, status %d: %s", env.Status, env.Msg)
			}
			data = bytes.TrimSpace(env.Data)
		}
	}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.New("payload carries no data")
	}

	if data[0] != '[' {
		node, err := sonic.Get(data, listField)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q not found", listField)
		}
		raw, err := node.Raw()
		if err != nil {
			return nil, errors.Wrapf(err, "read field %q", listField)
		}
		data = []byte(raw)
	}

	var items []menuroute.MenuItem
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode menu items")
	}
	return items, nil
}
