// Package config loads tool configuration with the precedence
// defaults < config file < explicitly-set flags.
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configurable is a config struct that registers its own command-line flags.
type Configurable interface {
	AddFlags(fs *pflag.FlagSet)
}

// Loader populates configuration structs from defaults, a config file, and
// explicitly-set flags.
type Loader struct {
	configFile string
	defaults   map[string]any
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path. An empty path skips the
// file layer.
func (l *Loader) SetConfigFile(configFile string) {
	l.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (l *Loader) SetDefault(key string, value any) {
	l.defaults[key] = value
}

// Load populates config, which must be a pointer to a struct with
// mapstructure tags. Only flags the user actually set override file values;
// flag names map to config keys with hyphens replaced by underscores.
func (l *Loader) Load(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, l.configFile, err)
		}
	}

	if fs != nil {
		fs.Visit(func(flag *pflag.Flag) {
			key := strings.ReplaceAll(flag.Name, "-", "_")
			if slice, ok := flag.Value.(pflag.SliceValue); ok {
				v.Set(key, slice.GetSlice())
				return
			}
			v.Set(key, flag.Value.String())
		})
	}

	if err := v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return nil
}
