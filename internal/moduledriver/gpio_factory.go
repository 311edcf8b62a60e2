package moduledriver

import (
	"fmt"

	"github.com/chassiskit/chassisd/internal/moduledriver/gpio"
	"github.com/chassiskit/chassisd/internal/platform"
)

// GPIOFactory implements Factory for GPIO-backed modules.
type GPIOFactory struct{}

// CreateModule creates a new GPIO module.
func (f *GPIOFactory) CreateModule(config map[string]any) (platform.Module, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}
	return gpio.New(cfg)
}

// ValidateConfig validates GPIO module configuration.
func (f *GPIOFactory) ValidateConfig(config map[string]any) error {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func (f *GPIOFactory) parseConfig(config map[string]any) (*gpio.Config, error) {
	cfg := gpio.DefaultConfig()
	if err := decodeDriverConfig(config, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gpio config: %w", err)
	}
	return cfg, nil
}

func init() {
	MustRegister("gpio", &GPIOFactory{})
}
