package mock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, delay int) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candao.account.login.json"),
		[]byte(`{"status":1,"msg":"ok","data":{"crmReadFunctionList":[]}}`), 0o644))
	return NewService(config.MockConfig{Enable: true, DataDir: dir, Delay: delay}), dir
}

func TestIsSafeActionName(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   bool
	}{
		{name: "dotted", action: "candao.account.login", want: true},
		{name: "slash", action: "a/b", want: false},
		{name: "backslash", action: `a\b`, want: false},
		{name: "parent", action: "..secret", want: false},
		{name: "empty", action: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeActionName(tt.action))
		})
	}
}

func TestService_Load(t *testing.T) {
	s, dir := newTestService(t, 0)
	assert.Equal(t, dir, s.DataDir())

	data, err := s.Load("candao.account.login")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":1`)

	_, err = s.Load("missing.action")
	assert.ErrorIs(t, err, ErrMockNotFound)

	_, err = s.Load("../etc/passwd")
	assert.ErrorIs(t, err, ErrUnsafeActionName)
}

func TestService_LoadCachesUntilInvalidated(t *testing.T) {
	s, dir := newTestService(t, 0)
	file := filepath.Join(dir, "candao.account.login.json")

	_, err := s.Load("candao.account.login")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(file, []byte(`{"status":9}`), 0o644))
	data, err := s.Load("candao.account.login")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":1`)

	s.invalidate(file)
	data, err = s.Load("candao.account.login")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":9}`, string(data))
}

func TestService_LoadSkipsCacheWhenInvalidatedDuringRead(t *testing.T) {
	s, dir := newTestService(t, 0)
	file := filepath.Join(dir, "candao.account.login.json")

	s.readFile = func(name string) ([]byte, error) {
		raw, err := os.ReadFile(name)
		// the file changes after it was read but before the result is cached
		require.NoError(t, os.WriteFile(file, []byte(`{"status":9}`), 0o644))
		s.invalidate(file)
		return raw, err
	}
	data, err := s.Load("candao.account.login")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":1`)

	s.readFile = os.ReadFile
	data, err = s.Load("candao.account.login")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":9}`, string(data))
}

func TestService_HandleDelay(t *testing.T) {
	s, _ := newTestService(t, 50)

	start := time.Now()
	_, err := s.Handle(context.Background(), model.ManageActionRequest{ActionName: "candao.account.login"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Handle(ctx, model.ManageActionRequest{ActionName: "candao.account.login"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNotFound(t *testing.T) {
	resp := NotFound("x.y")
	assert.Equal(t, 0, resp.Status)
	assert.Equal(t, "mock data not found: data/x.y.json", resp.Msg)
	assert.NotEmpty(t, resp.LogID)
	assert.Equal(t, "null", string(resp.Data))
}

func TestResolveDataDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, ResolveDataDir(dir))
	assert.Equal(t, filepath.Join(dir, "nope"), ResolveDataDir(filepath.Join(dir, "nope")))
}
