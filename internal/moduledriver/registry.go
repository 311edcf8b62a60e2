// Package moduledriver maps driver names to module factories so the hosting
// platform layer can build platform.Module instances from configuration.
package moduledriver

import (
	"fmt"
	"sync"

	"github.com/chassiskit/chassisd/internal/platform"
)

// Factory creates a platform module from configuration.
type Factory interface {
	// CreateModule creates a new module instance with the given
	// configuration.
	CreateModule(config map[string]any) (platform.Module, error)

	// ValidateConfig validates the driver configuration without creating
	// a module.
	ValidateConfig(config map[string]any) error
}

// Registry manages module driver factories.
type Registry struct {
	drivers map[string]Factory
	mu      sync.RWMutex
}

// NewRegistry creates a new module driver registry.
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
	}
}

// Register adds a driver factory to the registry.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("module driver %s already registered", name)
	}

	r.drivers[name] = factory
	return nil
}

// CreateModule creates a module using the named driver.
func (r *Registry) CreateModule(driverName string, config map[string]any) (platform.Module, error) {
	r.mu.RLock()
	factory, exists := r.drivers[driverName]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown module driver: %s", driverName)
	}

	return factory.CreateModule(config)
}

// ValidateConfig validates configuration for the named driver.
func (r *Registry) ValidateConfig(driverName string, config map[string]any) error {
	r.mu.RLock()
	factory, exists := r.drivers[driverName]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("unknown module driver: %s", driverName)
	}

	return factory.ValidateConfig(config)
}

// ListDrivers returns the names of all registered module drivers.
func (r *Registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	return names
}

// Default registry instance
var defaultRegistry = NewRegistry()

// Register adds a driver factory to the default registry.
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegister adds a driver factory to the default registry and panics on
// error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register module driver %s: %v", name, err))
	}
}

// CreateModule creates a module using the default registry.
func CreateModule(driverName string, config map[string]any) (platform.Module, error) {
	return defaultRegistry.CreateModule(driverName, config)
}

// ValidateConfig validates configuration using the default registry.
func ValidateConfig(driverName string, config map[string]any) error {
	return defaultRegistry.ValidateConfig(driverName, config)
}

// ListDrivers returns the names of all drivers in the default registry.
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}
