package menuroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPathSegment(t *testing.T) {
	tests := []struct {
		in   string
		sep  byte
		want string
	}{
		{in: "/user/profile", sep: '-', want: "User-Profile"},
		{in: "/user/profile", sep: '/', want: "User/Profile"},
		{in: "/user-info", sep: '-', want: "User-Info"},
		{in: "/user/:id", sep: '-', want: "User/:Id"},
		{in: "/", sep: '-', want: ""},
		{in: "/a_b/c1", sep: '-', want: "A_b-C1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPathSegment(tt.in, tt.sep))
		})
	}
}

func TestParseURL(t *testing.T) {
	cfg := NewParserConfig(Options{RouteBase: "/crm/"})
	assert.Equal(t, "/crm", cfg.RouteBase)

	got := ParseURL("/datainput/brand", ExtraInfo{}, cfg)
	assert.Equal(t, ParsedURL{
		Name:          "Datainput-Brand",
		Path:          "/crm/datainput/brand",
		ComponentName: "Datainput-Brand",
	}, got)
}

func TestParseURL_NormalizesInput(t *testing.T) {
	got := ParseURL("datainput//brand/?tab=1", ExtraInfo{}, NewParserConfig(Options{RouteBase: "/crm"}))
	assert.Equal(t, "/crm/datainput/brand", got.Path)
	assert.Equal(t, "Datainput-Brand", got.Name)
}

func TestParseURL_ExtraRouteBase(t *testing.T) {
	cfg := NewParserConfig(Options{RouteBase: "/crm"})
	got := ParseURL("/report", ExtraInfo{RouteBase: "/bi"}, cfg)
	assert.Equal(t, "/bi/report", got.Path)
}

func TestParseURL_Transform(t *testing.T) {
	var seen ParseContext
	cfg := NewParserConfig(Options{
		RouteBase: "/crm",
		Extra:     map[string]any{"app": "oms"},
		Transform: func(parsed ParsedURL, ctx ParseContext) ParsedURL {
			seen = ctx
			parsed.ComponentPath = "@/views/" + ctx.ViewPath + "/index.vue"
			return parsed
		},
	})
	extra := ResolveExtraInfo(`{"iconName":"home"}`)

	got := ParseURL("/user/profile", extra, cfg)
	assert.Equal(t, "@/views/User/Profile/index.vue", got.ComponentPath)
	assert.Equal(t, "/crm/user/profile", got.Path)

	assert.Equal(t, "/user/profile", seen.URL)
	assert.Equal(t, "User/Profile", seen.ViewPath)
	assert.Equal(t, "/crm", seen.RouteBase)
	assert.Equal(t, "home", seen.ExtraInfo.IconName)
	require.NotNil(t, seen.Options)
	assert.Equal(t, "oms", seen.Options["app"])
}

func TestParseURL_TransformReplacesResult(t *testing.T) {
	cfg := NewParserConfig(Options{
		Transform: func(ParsedURL, ParseContext) ParsedURL {
			return ParsedURL{Name: "x", Path: "/x"}
		},
	})
	got := ParseURL("/user", ExtraInfo{}, cfg)
	assert.Equal(t, ParsedURL{Name: "x", Path: "/x"}, got)
}
