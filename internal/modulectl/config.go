package modulectl

import (
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/chassiskit/chassisd/internal/config"
)

// ModuleConfig names a module driver and carries its driver-specific
// configuration map.
type ModuleConfig struct {
	Driver string         `mapstructure:"driver"`
	Config map[string]any `mapstructure:"config"`
}

// Config is the modulectl tool configuration.
type Config struct {
	ConfigFile string
	Timeout    time.Duration  `mapstructure:"timeout"`
	Modules    []ModuleConfig `mapstructure:"modules"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func defaultConfigFile() string {
	// Only use the default when the file actually exists; modulectl can
	// run without a config file only if --config is given.
	path, err := xdg.SearchConfigFile("chassisd/modulectl.toml")
	if err != nil {
		return ""
	}
	return path
}

// AddFlags registers modulectl's command-line flags.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", defaultConfigFile(), "Config file to use")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Change event poll window for watch")
}

// LoadConfig loads the config file and applies explicitly-set flags.
func (c *Config) LoadConfig(fs *pflag.FlagSet) error {
	loader := config.NewLoader()
	loader.SetConfigFile(c.ConfigFile)
	return loader.Load(c, fs)
}
