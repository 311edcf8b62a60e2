package moduledriver

import (
	"testing"

	"github.com/chassiskit/chassisd/internal/platform"
)

// mockModule is the minimal Module for registry tests.
type mockModule struct {
	platform.ModuleBase
}

// mockFactory records the config it was handed.
type mockFactory struct {
	createdConfig map[string]any
}

func (m *mockFactory) CreateModule(config map[string]any) (platform.Module, error) {
	m.createdConfig = config
	return &mockModule{}, nil
}

func (m *mockFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	factory := &mockFactory{}

	if err := registry.Register("test", factory); err != nil {
		t.Fatalf("Failed to register driver: %v", err)
	}

	// Duplicate registration must fail.
	if err := registry.Register("test", factory); err == nil {
		t.Error("Expected error for duplicate registration")
	}
}

func TestRegistry_CreateModule(t *testing.T) {
	registry := NewRegistry()
	factory := &mockFactory{}

	if err := registry.Register("test", factory); err != nil {
		t.Fatalf("Failed to register driver: %v", err)
	}

	config := map[string]any{
		"slot": 3,
		"type": "LINE-CARD",
	}

	module, err := registry.CreateModule("test", config)
	if err != nil {
		t.Fatalf("Failed to create module: %v", err)
	}
	if module == nil {
		t.Error("Module should not be nil")
	}

	if factory.createdConfig["slot"] != 3 {
		t.Errorf("Expected slot 3, got %v", factory.createdConfig["slot"])
	}
}

func TestRegistry_CreateModule_UnknownDriver(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.CreateModule("nonexistent", nil); err == nil {
		t.Error("Expected error for unknown driver")
	}
}

func TestRegistry_ValidateConfig_UnknownDriver(t *testing.T) {
	registry := NewRegistry()

	if err := registry.ValidateConfig("nonexistent", nil); err == nil {
		t.Error("Expected error for unknown driver")
	}
}

func TestRegistry_ListDrivers(t *testing.T) {
	registry := NewRegistry()
	factory := &mockFactory{}

	if err := registry.Register("test1", factory); err != nil {
		t.Fatalf("Failed to register driver: %v", err)
	}
	if err := registry.Register("test2", factory); err != nil {
		t.Fatalf("Failed to register driver: %v", err)
	}

	drivers := registry.ListDrivers()
	if len(drivers) != 2 {
		t.Errorf("Expected 2 drivers, got %d", len(drivers))
	}

	found := make(map[string]bool)
	for _, driver := range drivers {
		found[driver] = true
	}
	if !found["test1"] || !found["test2"] {
		t.Errorf("Expected both test1 and test2 drivers in list, got %v", drivers)
	}
}

func TestDefaultRegistry(t *testing.T) {
	// The dummy and gpio drivers register themselves at init.
	drivers := ListDrivers()

	foundDummy := false
	foundGPIO := false
	for _, driver := range drivers {
		if driver == "dummy" {
			foundDummy = true
		}
		if driver == "gpio" {
			foundGPIO = true
		}
	}

	if !foundDummy {
		t.Error("dummy driver not found in default registry")
	}
	if !foundGPIO {
		t.Error("gpio driver not found in default registry")
	}
}

func TestDummyFactory_Integration(t *testing.T) {
	config := map[string]any{
		"slot": 4,
		"type": "FABRIC-CARD",
		"fans": 2,
	}

	if err := ValidateConfig("dummy", config); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}

	module, err := CreateModule("dummy", config)
	if err != nil {
		t.Fatalf("Failed to create dummy module: %v", err)
	}
	defer module.Close() //nolint:errcheck

	slot, err := module.GetSlot()
	if err != nil {
		t.Fatalf("GetSlot() failed: %v", err)
	}
	if slot != 4 {
		t.Errorf("GetSlot() = %d, want 4", slot)
	}

	mtype, err := module.GetType()
	if err != nil {
		t.Fatalf("GetType() failed: %v", err)
	}
	if mtype != platform.ModuleTypeFabricCard {
		t.Errorf("GetType() = %q, want %q", mtype, platform.ModuleTypeFabricCard)
	}

	if n := module.GetNumFans(); n != 2 {
		t.Errorf("GetNumFans() = %d, want 2", n)
	}
}

func TestDummyFactory_RejectsBadConfig(t *testing.T) {
	if err := ValidateConfig("dummy", map[string]any{"type": "MEZZANINE"}); err == nil {
		t.Error("Expected error for invalid module type")
	}
	if err := ValidateConfig("dummy", map[string]any{"fans": -1}); err == nil {
		t.Error("Expected error for negative device count")
	}
}

func TestGPIOFactory_ValidateConfig(t *testing.T) {
	config := map[string]any{
		"chip":               "gpiochip0",
		"type":               "LINE-CARD",
		"sfp-presence-lines": []int{4, 5},
	}
	if err := ValidateConfig("gpio", config); err != nil {
		t.Errorf("ValidateConfig failed: %v", err)
	}

	if err := ValidateConfig("gpio", map[string]any{"chip": ""}); err == nil {
		t.Error("Expected error for missing chip")
	}
}
