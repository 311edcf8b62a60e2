package moduledriver

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/chassiskit/chassisd/internal/moduledriver/dummy"
	"github.com/chassiskit/chassisd/internal/platform"
)

// decodeDriverConfig converts a config map into a driver config struct,
// tolerating the loose typing of values that arrive through TOML or flags.
func decodeDriverConfig(config map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	return decoder.Decode(config)
}

// DummyFactory implements Factory for in-memory dummy modules.
type DummyFactory struct{}

// CreateModule creates a new dummy module.
func (f *DummyFactory) CreateModule(config map[string]any) (platform.Module, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}
	return dummy.New(cfg)
}

// ValidateConfig validates dummy module configuration.
func (f *DummyFactory) ValidateConfig(config map[string]any) error {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return err
	}
	if _, err := platform.ParseModuleType(cfg.Type); err != nil {
		return err
	}
	for _, count := range []int{cfg.Components, cfg.Fans, cfg.PSUs, cfg.Thermals, cfg.SFPs} {
		if count < 0 {
			return fmt.Errorf("device counts must be non-negative")
		}
	}
	return nil
}

func (f *DummyFactory) parseConfig(config map[string]any) (*dummy.Config, error) {
	cfg := dummy.DefaultConfig()
	if err := decodeDriverConfig(config, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dummy config: %w", err)
	}
	return cfg, nil
}

func init() {
	MustRegister("dummy", &DummyFactory{})
}
