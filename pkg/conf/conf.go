package conf

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader reads a TOML config file into a struct and keeps it in sync with
// the file on disk.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a viper instance for path. Keys may be overridden by
// environment variables named <PREFIX>_<SECTION>_<KEY>.
func NewLoader(path, envPrefix string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Load reads the file and unmarshals it into cfg, which must be a non-nil pointer.
func (l *Loader) Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("cfg must be a non-nil pointer")
	}
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := l.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	return nil
}

// Watch 配置文件变化时重新解析到 cfg，并回调 onChange
func (l *Loader) Watch(cfg any, onChange func(e fsnotify.Event, err error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		err := l.v.Unmarshal(cfg)
		if onChange != nil {
			onChange(e, err)
		}
	})
	l.v.WatchConfig()
}

// SetDefault registers a default for key, used when neither file nor env set it.
func (l *Loader) SetDefault(key string, value any) {
	l.v.SetDefault(key, value)
}

func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
