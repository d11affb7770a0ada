package menuroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "/"},
		{name: "root", in: "/", want: "/"},
		{name: "missing leading slash", in: "path", want: "/path"},
		{name: "query and hash", in: "/path?id=1#hash", want: "/path"},
		{name: "hash only", in: "/a/b#x/y", want: "/a/b"},
		{name: "trailing slash", in: "/path/", want: "/path"},
		{name: "repeated slashes", in: "//a///b//", want: "/a/b"},
		{name: "only slashes", in: "////", want: "/"},
		{name: "query at root", in: "?x=1", want: "/"},
		{name: "dynamic", in: "user/:id/", want: "/user/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizePath(got), "normalize must be idempotent")
		})
	}
}

func TestIsDynamicPath(t *testing.T) {
	assert.True(t, isDynamicPath("/user/:id"))
	assert.True(t, isDynamicPath("/docs/*"))
	assert.False(t, isDynamicPath("/user/list"))
}
