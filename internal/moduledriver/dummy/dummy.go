// Package dummy provides an in-memory module implementation used by tests
// and for exercising the chassis tooling without hardware.
package dummy

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/chassiskit/chassisd/internal/eeprom"
	"github.com/chassiskit/chassisd/internal/platform"
)

// Config describes a dummy module.
type Config struct {
	Slot        int    `mapstructure:"slot"`
	Type        string `mapstructure:"type"`
	Index       int    `mapstructure:"index"`
	Description string `mapstructure:"description"`
	BaseMAC     string `mapstructure:"base-mac"`
	Components  int    `mapstructure:"components"`
	Fans        int    `mapstructure:"fans"`
	PSUs        int    `mapstructure:"psus"`
	Thermals    int    `mapstructure:"thermals"`
	SFPs        int    `mapstructure:"sfps"`
}

// DefaultConfig returns a single-fan line card in slot 1.
func DefaultConfig() *Config {
	return &Config{
		Slot:        1,
		Type:        string(platform.ModuleTypeLineCard),
		Description: "dummy line card",
		BaseMAC:     "02:00:00:00:00:01",
		Fans:        1,
	}
}

// Module is an in-memory platform.Module. All identity methods are backed by
// configuration, and change events are fed through InjectChangeEvent.
type Module struct {
	platform.DeviceLists

	mtype       platform.ModuleType
	index       int
	slot        int
	description string
	baseMAC     string
	eepromInfo  map[string]string

	mu     sync.Mutex
	status platform.ModuleStatus

	events chan eventRecord
}

type eventRecord struct {
	devType platform.DeviceType
	id      string
	event   platform.DeviceEvent
}

var _ platform.Module = (*Module)(nil)

// New creates a dummy module from cfg. The module starts Online with its
// device collections fully populated.
func New(cfg *Config) (*Module, error) {
	mtype, err := platform.ParseModuleType(cfg.Type)
	if err != nil {
		return nil, err
	}

	hw, err := net.ParseMAC(cfg.BaseMAC)
	if err != nil {
		return nil, fmt.Errorf("invalid base MAC %s: %w", cfg.BaseMAC, err)
	}

	m := &Module{
		mtype:       mtype,
		index:       cfg.Index,
		slot:        cfg.Slot,
		description: cfg.Description,
		baseMAC:     eeprom.FormatMAC(hw),
		status:      platform.StatusOnline,
		events:      make(chan eventRecord, 64),
	}

	b := eeprom.NewBuilder()
	b.AddString(eeprom.TypeProductName, cfg.Description)
	b.AddString(eeprom.TypeSerialNumber, fmt.Sprintf("DUMMY-%04d", cfg.Slot))
	if err := b.AddMAC(cfg.BaseMAC); err != nil {
		return nil, err
	}
	b.AddDeviceVersion(1)
	b.AddString(eeprom.TypePlatformName, "x86_64-chassiskit_dummy-r0")
	blob, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	m.eepromInfo, err = eeprom.Decode(blob)
	if err != nil {
		return nil, err
	}

	for i := 0; i < cfg.Components; i++ {
		m.AddComponent(&dummyComponent{device: newDevice("component", i)})
	}
	for i := 0; i < cfg.Fans; i++ {
		m.AddFan(&dummyFan{device: newDevice("fan", i), speed: 50})
	}
	for i := 0; i < cfg.PSUs; i++ {
		m.AddPSU(&dummyPSU{device: newDevice("psu", i), voltage: 12.0})
	}
	for i := 0; i < cfg.Thermals; i++ {
		m.AddThermal(&dummyThermal{device: newDevice("thermal", i), temperature: 35.0})
	}
	for i := 0; i < cfg.SFPs; i++ {
		m.AddSFP(&dummySFP{device: newDevice("sfp", i)})
	}

	return m, nil
}

// GetBaseMAC returns the configured base MAC address.
func (m *Module) GetBaseMAC() (string, error) {
	return m.baseMAC, nil
}

// GetSystemEEPROMInfo returns the synthesized TlvInfo contents.
func (m *Module) GetSystemEEPROMInfo() (map[string]string, error) {
	return m.eepromInfo, nil
}

// GetName returns the module type tag followed by the module index.
func (m *Module) GetName() (string, error) {
	return platform.FormatName(m.mtype, m.index), nil
}

// GetDescription returns the configured description.
func (m *Module) GetDescription() (string, error) {
	return m.description, nil
}

// GetSlot returns the configured slot number.
func (m *Module) GetSlot() (int, error) {
	return m.slot, nil
}

// GetType returns the configured module type.
func (m *Module) GetType() (platform.ModuleType, error) {
	return m.mtype, nil
}

// GetStatus returns the current module status.
func (m *Module) GetStatus() (platform.ModuleStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, nil
}

// Reboot accepts the request when the module is powered. The dummy self-test
// always passes, so the module comes back Online immediately.
func (m *Module) Reboot() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == platform.StatusOffline || m.status == platform.StatusEmpty {
		return false, nil
	}
	log.Printf("rebooting dummy module %s", platform.FormatName(m.mtype, m.index))
	m.status = platform.StatusOnline
	return true, nil
}

// SetAdminState powers the module down to Offline or up to Online.
func (m *Module) SetAdminState(up bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if up {
		m.status = platform.StatusOnline
	} else {
		m.status = platform.StatusOffline
	}
	return true, nil
}

// InjectChangeEvent queues an insertion/removal event for a later
// GetChangeEvent call. Events are dropped with a log message if the queue is
// full.
func (m *Module) InjectChangeEvent(devType platform.DeviceType, deviceID string, event platform.DeviceEvent) {
	select {
	case m.events <- eventRecord{devType: devType, id: deviceID, event: event}:
	default:
		log.Printf("dropping change event %s/%s=%s: queue full", devType, deviceID, event)
	}
}

// GetChangeEvent returns events queued since the previous call. A zero
// timeout blocks until at least one event arrives; a positive timeout
// returns whatever accumulated, possibly nothing.
func (m *Module) GetChangeEvent(timeout time.Duration) (platform.ChangeEventMap, error) {
	events := make(platform.ChangeEventMap)

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case rec := <-m.events:
		events.Add(rec.devType, rec.id, rec.event)
	case <-expired:
		return events, nil
	}

	// Drain anything else already queued.
	for {
		select {
		case rec := <-m.events:
			events.Add(rec.devType, rec.id, rec.event)
		default:
			return events, nil
		}
	}
}

// Close releases nothing; the dummy module holds no resources.
func (m *Module) Close() error {
	return nil
}

// device is the common state behind every dummy sub-device.
type device struct {
	name string
}

func newDevice(kind string, index int) device {
	return device{name: kind + strconv.Itoa(index)}
}

func (d *device) GetName() string            { return d.name }
func (d *device) GetPresence() (bool, error) { return true, nil }
func (d *device) GetModel() (string, error)  { return "DUMMY", nil }
func (d *device) GetSerial() (string, error) { return d.name + "-serial", nil }
func (d *device) GetStatus() (bool, error)   { return true, nil }

type dummyComponent struct {
	device
}

func (c *dummyComponent) GetFirmwareVersion() (string, error) { return "1.0.0", nil }

type dummyFan struct {
	device
	speed int
}

func (f *dummyFan) GetSpeed() (int, error) { return f.speed, nil }

type dummyPSU struct {
	device
	voltage float64
}

func (p *dummyPSU) GetVoltage() (float64, error) { return p.voltage, nil }

type dummyThermal struct {
	device
	temperature float64
}

func (t *dummyThermal) GetTemperature() (float64, error) { return t.temperature, nil }

type dummySFP struct {
	device
}

func (s *dummySFP) GetTxDisable() (bool, error) { return false, nil }
