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

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	httpx "github.com/go-arcade/menuroute/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "existing id preserved", incoming: "existing-request-id-12345", wantSame: true},
		{name: "missing id generated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(RequestMiddleware())
			var seen string
			app.Get("/test", func(c *fiber.Ctx) error {
				seen = RequestID(c)
				return c.SendString("ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, seen, resp.Header.Get(HeaderRequestID))

			if tt.wantSame {
				assert.Equal(t, tt.incoming, seen)
				return
			}
			_, err = uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}

func TestRequestMiddleware_UniqueUUIDs(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	ids := make(map[string]bool)
	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)
		ids[resp.Header.Get(HeaderRequestID)] = true
	}
	assert.Len(t, ids, 10)
}

func TestExceptionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/string", func(c *fiber.Ctx) error { panic("menu exploded") })
	app.Get("/error", func(c *fiber.Ctx) error { panic(io.ErrUnexpectedEOF) })

	tests := []struct {
		path    string
		wantMsg string
	}{
		{path: "/string", wantMsg: "menu exploded"},
		{path: "/error", wantMsg: httpx.InternalError.Msg},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

			var body httpx.ResponseErr
			raw, _ := io.ReadAll(resp.Body)
			require.NoError(t, sonic.Unmarshal(raw, &body))
			assert.Equal(t, httpx.InternalError.Code, body.ErrCode)
			assert.Equal(t, tt.wantMsg, body.ErrMsg)
			assert.Equal(t, tt.path, body.Path)
		})
	}
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(DETAIL, map[string]int{"total": 3})
		return nil
	})
	app.Delete("/op", func(c *fiber.Ctx) error {
		c.Locals(OPERATION, "reset")
		return nil
	})
	app.Get("/raw", func(c *fiber.Ctx) error {
		return httpx.WithRepErrStatus(c, fiber.StatusNotFound, httpx.NotFound.Code, "nope", c.Path())
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "detail", method: http.MethodGet, path: "/detail", wantStatus: 200, wantBody: `{"code":200,"detail":{"total":3},"msg":"Request Success"}`},
		{name: "operation", method: http.MethodDelete, path: "/op", wantStatus: 200, wantBody: `{"code":200,"msg":"Request Success"}`},
		{name: "handler wrote error", method: http.MethodGet, path: "/raw", wantStatus: 404, wantBody: `{"code":4004,"errMsg":"nope","path":"/raw"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			raw, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, tt.wantBody, string(raw))
		})
	}
}

func TestRealIP(t *testing.T) {
	app := fiber.New()
	app.Use(RealIPMiddleware())
	app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(ClientIP(c)) })

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "forwarded for", header: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip", header: map[string]string{"X-Real-IP": " 10.0.0.9 "}, want: "10.0.0.9"},
		{name: "peer", want: "0.0.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			raw, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(raw))
		})
	}
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/debug/pprof/heap"))
	assert.False(t, skipAccessLog("/api/v1/menus/crm/routes"))
}
