package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/menuroute/pkg/cache"
	"github.com/go-arcade/menuroute/pkg/conf"
	"github.com/go-arcade/menuroute/pkg/database"
	"github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/trace"
)

// EnvPrefix 环境变量前缀，例如 MENUROUTE_HTTP_PORT
const EnvPrefix = "MENUROUTE"

// DefaultRouteBase is prefixed to every generated route path.
const DefaultRouteBase = "/crm-v8"

const (
	SourceNone   = "none"
	SourceFile   = "file"
	SourceRemote = "remote"
	SourceDB     = "db"
)

type RouteConfig struct {
	RouteBase string `mapstructure:"routeBase"`
	// ComponentExpr expr 表达式，计算组件路径，例如 "@/views/" + viewPath + "/index.vue"
	ComponentExpr string `mapstructure:"componentExpr"`
}

type SourceConfig struct {
	Type         string `mapstructure:"type"`
	Dir          string `mapstructure:"dir"`
	ListField    string `mapstructure:"listField"`
	BaseURL      string `mapstructure:"baseURL"`
	Action       string `mapstructure:"action"`
	Token        string `mapstructure:"token"`
	SystemCode   string `mapstructure:"systemCode"`
	ClientIsGray bool   `mapstructure:"clientIsGray"`
	Timeout      int    `mapstructure:"timeout"` // 秒
	Retries      int    `mapstructure:"retries"`
}

func (s SourceConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

type MockConfig struct {
	Enable  bool   `mapstructure:"enable"`
	DataDir string `mapstructure:"dataDir"`
	Delay   int    `mapstructure:"delay"` // 毫秒
}

func (m MockConfig) DelayDuration() time.Duration {
	return time.Duration(m.Delay) * time.Millisecond
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Route    RouteConfig
	Source   SourceConfig
	Cache    cache.Conf
	Redis    cache.Redis
	Metrics  metrics.MetricsConfig
	Trace    trace.Conf
	Mock     MockConfig
	Database database.Database
}

// SetDefaults 补齐各段默认值
func (c *AppConfig) SetDefaults() {
	defLog := log.SetDefaults()
	if c.Log.Output == "" {
		c.Log.Output = defLog.Output
	}
	if c.Log.Path == "" {
		c.Log.Path = defLog.Path
	}
	if c.Log.Filename == "" {
		c.Log.Filename = defLog.Filename
	}
	if c.Log.Level == "" {
		c.Log.Level = defLog.Level
	}

	c.Http.SetDefaults()
	c.Cache.SetDefaults()
	c.Metrics.SetDefaults()

	if c.Route.RouteBase == "" {
		c.Route.RouteBase = DefaultRouteBase
	}

	if c.Source.Type == "" {
		c.Source.Type = SourceFile
	}
	if c.Source.Dir == "" {
		c.Source.Dir = "./data"
	}
	if c.Source.ListField == "" {
		c.Source.ListField = "crmReadFunctionList"
	}
	if c.Source.Action == "" {
		c.Source.Action = "candao.account.login"
	}
	if c.Source.SystemCode == "" {
		c.Source.SystemCode = "oms_crm"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10
	}
	if c.Source.Retries == 0 {
		c.Source.Retries = 3
	}

	if c.Mock.DataDir == "" {
		c.Mock.DataDir = "./data"
	}
	if c.Mock.Delay == 0 {
		c.Mock.Delay = 300
	}
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	switch c.Source.Type {
	case SourceNone, SourceFile, SourceDB:
	case SourceRemote:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("source.baseURL is required when source.type is %q", SourceRemote)
		}
	default:
		return fmt.Errorf("unsupported source type %q", c.Source.Type)
	}
	return c.Log.Validate()
}

var (
	cfg  *AppConfig
	once sync.Once
)

func NewConf(confPath string) *AppConfig {
	once.Do(func() {
		var (
			loader *conf.Loader
			err    error
		)
		cfg, loader, err = loadConfigFile(confPath)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		loader.Watch(cfg, func(e fsnotify.Event, err error) {
			if err != nil {
				log.Errorw("failed to reload configuration file", "path", e.Name, "error", err)
				return
			}
			cfg.SetDefaults()
			log.Infow("configuration reloaded", "path", e.Name)
		})
	})
	return cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confPath string) (*AppConfig, error) {
	c, _, err := loadConfigFile(confPath)
	return c, err
}

func loadConfigFile(confPath string) (*AppConfig, *conf.Loader, error) {
	loader := conf.NewLoader(confPath, EnvPrefix)
	c := &AppConfig{}
	if err := loader.Load(c); err != nil {
		return nil, nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Infow("config file loaded", "path", loader.ConfigFileUsed())
	return c, loader, nil
}
