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

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arcade/menuroute/internal/model"
	httpx "github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/go-arcade/menuroute/pkg/retry"
	"github.com/go-arcade/menuroute/pkg/trace/inject"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	manageActionPath = "/ManageAction"
	headerToken      = "crm-token"
)

type RemoteConfig struct {
	BaseURL      string
	Action       string
	Token        string
	SystemCode   string
	ClientIsGray bool
	ListField    string
	Timeout      time.Duration
	Retries      int
	// RetryBackoff is the first wait between attempts, doubled afterwards.
	RetryBackoff time.Duration
}

// RemoteSource posts a ManageAction call and reads the item list from its payload.
type RemoteSource struct {
	cfg    RemoteConfig
	client *resty.Client
}

func NewRemoteSource(cfg RemoteConfig) *RemoteSource {
	if cfg.Action == "" {
		cfg.Action = model.LoginAction
	}
	if cfg.SystemCode == "" {
		cfg.SystemCode = model.DefaultSystemCode
	}
	if cfg.ListField == "" {
		cfg.ListField = model.DefaultListField
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	return &RemoteSource{
		cfg: cfg,
		client: httpx.NewClient(httpx.ClientConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}),
	}
}

// statusError is a non-2xx reply; only 5xx is worth retrying.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ManageAction http status %d", e.code)
}

func (s *RemoteSource) Load(ctx context.Context, key string) ([]menuroute.MenuItem, error) {
	body := model.ManageActionRequest{
		ActionName:   s.cfg.Action,
		Content:      map[string]any{"key": key},
		Token:        s.cfg.Token,
		SystemCode:   s.cfg.SystemCode,
		ClientIsGray: s.cfg.ClientIsGray,
	}

	var env model.ManageActionResponse
	err := retry.Do(ctx, func(ctx context.Context) error {
		env = model.ManageActionResponse{}
		_, _, err := inject.HTTPRequest(ctx, "POST", s.cfg.BaseURL+manageActionPath,
			func(ctx context.Context) (int, int64, error) {
				req := s.client.R().
					SetContext(ctx).
					SetHeader(headerToken, s.cfg.Token).
					SetQueryParam("_name", s.cfg.Action).
					SetBody(body).
					SetResult(&env)
				inject.InjectRequest(ctx, req)

				resp, err := req.Post(manageActionPath)
				if err != nil {
					return 0, 0, errors.Wrap(err, "post ManageAction")
				}
				if resp.IsError() {
					return resp.StatusCode(), resp.Size(), &statusError{code: resp.StatusCode()}
				}
				return resp.StatusCode(), resp.Size(), nil
			})
		return err
	},
		retry.WithMaxAttempts(s.cfg.Retries),
		retry.WithBackoff(retry.Exponential(s.cfg.RetryBackoff, 5*time.Second)),
		retry.WithJitter(retry.FullJitter),
		retry.WithRetryIf(isRetryable),
		retry.WithOnRetry(func(attempt int, err error) {
			log.WithContext(ctx).Warnw("retrying ManageAction", "action", s.cfg.Action, "key", key, "attempt", attempt, "error", err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "action %s", s.cfg.Action)
	}

	if env.LoginRequired() {
		return nil, errors.Wrapf(ErrLoginExpired, "status %d: %s", env.Status, env.Msg)
	}
	if !env.Succeeded() {
		return nil, errors.Errorf("action %s failed, status %d: %s (logId %s)", s.cfg.Action, env.Status, env.Msg, env.LogID)
	}

	items, err := decodePayload(env.Data, s.cfg.ListField, false)
	if err != nil {
		return nil, errors.Wrapf(err, "action %s", s.cfg.Action)
	}
	return items, nil
}

func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return retry.IsRetryableError(err)
}
