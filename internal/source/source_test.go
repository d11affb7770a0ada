package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/pkg/database"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `[
	{"id":1,"name":"Orders","code":"A","parentCode":"ROOT","url":"/order/list","icon":"","sort":1},
	{"id":2,"name":"Detail","code":"B","parentCode":"A","url":"/order/detail/:id","icon":"{\"hiddenMenu\":true}","sort":2}
]`

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		unwrap     bool
		wantCodes  []string
		wantErr    error
		wantAnyErr bool
	}{
		{name: "bare array", payload: itemsJSON, wantCodes: []string{"A", "B"}},
		{name: "list field", payload: `{"token":"t","crmReadFunctionList":` + itemsJSON + `}`, wantCodes: []string{"A", "B"}},
		{
			name:      "envelope",
			payload:   `{"status":1,"msg":"ok","logId":"1","data":{"crmReadFunctionList":` + itemsJSON + `}}`,
			unwrap:    true,
			wantCodes: []string{"A", "B"},
		},
		{name: "envelope login expired", payload: `{"status":9,"msg":"expired","data":null}`, unwrap: true, wantErr: ErrLoginExpired},
		{name: "envelope failed", payload: `{"status":1001,"msg":"boom","data":null}`, unwrap: true, wantAnyErr: true},
		{name: "user data with status field", payload: `{"status":1,"crmReadFunctionList":` + itemsJSON + `}`, wantCodes: []string{"A", "B"}},
		{name: "missing field", payload: `{"other":[]}`, wantAnyErr: true},
		{name: "empty", payload: "  ", wantAnyErr: true},
		{name: "garbage", payload: `[{"code":1}`, wantAnyErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodePayload([]byte(tt.payload), model.DefaultListField, tt.unwrap)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			codes := make([]string, 0, len(items))
			for _, item := range items {
				codes = append(codes, item.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crm.json"), []byte(itemsJSON), 0o644))
	envelope := `{"status":1,"msg":"ok","logId":"x","data":{"crmReadFunctionList":` + itemsJSON + `}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candao.account.login.json"), []byte(envelope), 0o644))

	src := NewFileSource(dir, model.DefaultListField)

	items, err := src.Load(context.Background(), "crm")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, `{"hiddenMenu":true}`, items[1].Icon)

	items, err = src.Load(context.Background(), "candao.account.login")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = src.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrItemsNotFound)

	for _, key := range []string{"", "../etc/passwd", `a\b`} {
		_, err = src.Load(context.Background(), key)
		assert.Error(t, err, key)
	}
}

func TestRemoteSource(t *testing.T) {
	var calls atomic.Int32
	var got model.ManageActionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		assert.Equal(t, "/ManageAction", r.URL.Path)
		assert.Equal(t, "candao.account.login", r.URL.Query().Get("_name"))
		assert.Equal(t, "tok", r.Header.Get("crm-token"))
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &got)

		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":1,"msg":"ok","logId":"l1","data":{"crmReadFunctionList":`+itemsJSON+`}}`)
	}))
	defer server.Close()

	src := NewRemoteSource(RemoteConfig{
		BaseURL:      server.URL,
		Token:        "tok",
		Timeout:      time.Second,
		Retries:      3,
		RetryBackoff: time.Millisecond,
	})
	items, err := src.Load(context.Background(), "crm")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "oms_crm", got.SystemCode)
	assert.Equal(t, "crm", got.Content["key"])
	assert.Equal(t, "tok", got.Token)
}

func TestRemoteSource_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantCalls int32
	}{
		{name: "login expired", status: 200, body: `{"status":9,"msg":"expired","logId":"1","data":null}`, wantErr: ErrLoginExpired, wantCalls: 1},
		{name: "no login", status: 200, body: `{"status":4,"msg":"login","logId":"1","data":null}`, wantErr: ErrLoginExpired, wantCalls: 1},
		{name: "business error", status: 200, body: `{"status":1001,"msg":"bad","logId":"1","data":null}`, wantCalls: 1},
		{name: "client error not retried", status: 404, body: `{"status":0,"msg":"mock data not found","data":null}`, wantCalls: 1},
		{name: "server error retried", status: 500, body: ``, wantCalls: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			src := NewRemoteSource(RemoteConfig{BaseURL: server.URL, Retries: 2, RetryBackoff: time.Millisecond})
			_, err := src.Load(context.Background(), "crm")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), err.Error())
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

type fakeFunctionRepo struct {
	functions []model.Function
	err       error
}

func (f *fakeFunctionRepo) ListBySystem(_ context.Context, systemCode string) ([]model.Function, error) {
	var out []model.Function
	for _, fn := range f.functions {
		if fn.SystemCode == systemCode {
			out = append(out, fn)
		}
	}
	return out, f.err
}

func (f *fakeFunctionRepo) GetByCode(context.Context, string, string) (*model.Function, error) {
	return nil, f.err
}

func TestDBSource(t *testing.T) {
	repo := &fakeFunctionRepo{functions: []model.Function{
		{Code: "A", ParentCode: "ROOT", SystemCode: "oms_crm", URL: "/a"},
		{Code: "B", ParentCode: "A", SystemCode: "oms_crm", URL: "/a/b"},
		{Code: "X", ParentCode: "ROOT", SystemCode: "other", URL: "/x"},
	}}
	src := NewDBSource(repo)

	items, err := src.Load(context.Background(), "oms_crm")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = src.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrItemsNotFound)

	repo.err = errors.New("db down")
	_, err = src.Load(context.Background(), "oms_crm")
	assert.Error(t, err)
}

func TestProvideItemSource(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SourceConfig
		want    any
		wantErr bool
	}{
		{name: "none", cfg: config.SourceConfig{Type: config.SourceNone}, want: NoneSource{}},
		{name: "file", cfg: config.SourceConfig{Type: config.SourceFile, Dir: "./data"}, want: &FileSource{}},
		{name: "remote", cfg: config.SourceConfig{Type: config.SourceRemote, BaseURL: "http://127.0.0.1:1"}, want: &RemoteSource{}},
		{name: "unknown", cfg: config.SourceConfig{Type: "ftp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, cleanup, err := ProvideItemSource(tt.cfg, database.Database{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer cleanup()
			assert.IsType(t, tt.want, src)
		})
	}

	_, err := NoneSource{}.Load(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNoSource)
}
