// Package gpio implements a platform module whose presence, fault, and
// power signals are wired to GPIO lines, as on fixed-form-factor line cards
// that expose SFP ModPrsL and fan presence pins through a CPLD GPIO
// expander.
package gpio

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/chassiskit/chassisd/internal/eeprom"
	"github.com/chassiskit/chassisd/internal/platform"
)

// Config describes the GPIO wiring of a module.
type Config struct {
	Chip             string `mapstructure:"chip"`
	Slot             int    `mapstructure:"slot"`
	Type             string `mapstructure:"type"`
	Index            int    `mapstructure:"index"`
	Description      string `mapstructure:"description"`
	PowerEnableLine  int    `mapstructure:"power-enable-line"`
	FaultLine        int    `mapstructure:"fault-line"`
	FanPresenceLines []int  `mapstructure:"fan-presence-lines"`
	SFPPresenceLines []int  `mapstructure:"sfp-presence-lines"`
	DebounceMs       int    `mapstructure:"debounce-ms"`
	EEPROMBus        string `mapstructure:"eeprom-bus"`
	EEPROMAddr       uint16 `mapstructure:"eeprom-addr"`
}

// DefaultConfig returns a config with no lines assigned. Line offsets use -1
// as "not wired" so offset 0 stays usable.
func DefaultConfig() *Config {
	return &Config{
		Chip:            "gpiochip0",
		Type:            string(platform.ModuleTypeLineCard),
		PowerEnableLine: -1,
		FaultLine:       -1,
		DebounceMs:      50,
	}
}

// Validate checks the configuration without touching hardware.
func (c *Config) Validate() error {
	if c.Chip == "" {
		return ErrNoChip
	}
	if _, err := platform.ParseModuleType(c.Type); err != nil {
		return err
	}
	if c.Slot < 0 {
		return fmt.Errorf("%w: slot %d", ErrBadLineConfig, c.Slot)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce-ms %d", ErrBadLineConfig, c.DebounceMs)
	}
	for _, offset := range append(append([]int{}, c.FanPresenceLines...), c.SFPPresenceLines...) {
		if offset < 0 {
			return fmt.Errorf("%w: presence line %d", ErrBadLineConfig, offset)
		}
	}
	if c.EEPROMBus != "" && c.EEPROMAddr == 0 {
		return ErrNoEEPROMAddr
	}
	return nil
}

// Module is a platform.Module backed by GPIO lines.
type Module struct {
	platform.DeviceLists

	cfg   Config
	mtype platform.ModuleType

	chip     *gpiocdev.Chip
	power    *gpiocdev.Line
	fault    *gpiocdev.Line
	presence []*gpiocdev.Line

	eepromInfo map[string]string
	baseMAC    string

	mu      sync.Mutex
	adminUp bool

	events chan eventRecord
}

type eventRecord struct {
	devType platform.DeviceType
	id      string
	event   platform.DeviceEvent
}

var _ platform.Module = (*Module)(nil)

// New opens the GPIO chip, claims the configured lines, and populates the
// module's device collections. Presence lines are watched for both edges;
// edges feed the change-event queue.
func New(cfg *Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrChipOpen, cfg.Chip, err)
	}

	mtype, _ := platform.ParseModuleType(cfg.Type)
	m := &Module{
		cfg:     *cfg,
		mtype:   mtype,
		chip:    chip,
		adminUp: true,
		events:  make(chan eventRecord, 64),
	}

	if cfg.PowerEnableLine >= 0 {
		line, err := chip.RequestLine(cfg.PowerEnableLine, gpiocdev.AsOutput(1))
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, fmt.Errorf("%w %d: %v", ErrLineRequest, cfg.PowerEnableLine, err)
		}
		m.power = line
	}

	if cfg.FaultLine >= 0 {
		line, err := chip.RequestLine(cfg.FaultLine, gpiocdev.AsInput)
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, fmt.Errorf("%w %d: %v", ErrLineRequest, cfg.FaultLine, err)
		}
		m.fault = line
	}

	for i, offset := range cfg.FanPresenceLines {
		id := strconv.Itoa(i)
		line, err := m.watchPresence(offset, platform.DeviceTypeFan, id)
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, err
		}
		m.AddFan(&gpioFan{gpioDevice{name: "fan" + id, line: line}})
	}

	for i, offset := range cfg.SFPPresenceLines {
		id := strconv.Itoa(i)
		line, err := m.watchPresence(offset, platform.DeviceTypeSFP, id)
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, err
		}
		m.AddSFP(&gpioSFP{gpioDevice{name: "sfp" + id, line: line}})
	}

	if cfg.EEPROMBus != "" {
		blob, err := eeprom.ReadFromI2C(cfg.EEPROMBus, cfg.EEPROMAddr)
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, err
		}
		info, err := eeprom.Decode(blob)
		if err != nil {
			m.Close() //nolint:errcheck
			return nil, err
		}
		m.eepromInfo = info
		m.baseMAC = info[eeprom.KeyFor(eeprom.TypeBaseMAC)]
	}

	return m, nil
}

// watchPresence claims a presence line with edge detection. Presence pins
// are active low (grounded while a device is seated), so a falling edge is
// an insertion.
func (m *Module) watchPresence(offset int, devType platform.DeviceType, id string) (*gpiocdev.Line, error) {
	line, err := m.chip.RequestLine(offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithDebounce(time.Duration(m.cfg.DebounceMs)*time.Millisecond),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			var event platform.DeviceEvent
			switch evt.Type {
			case gpiocdev.LineEventFallingEdge:
				event = platform.DeviceInserted
			case gpiocdev.LineEventRisingEdge:
				event = platform.DeviceRemoved
			default:
				return
			}
			select {
			case m.events <- eventRecord{devType: devType, id: id, event: event}:
			default:
				log.Printf("dropping change event %s/%s=%s: queue full", devType, id, event)
			}
		}))
	if err != nil {
		return nil, fmt.Errorf("%w %d: %v", ErrLineRequest, offset, err)
	}
	m.presence = append(m.presence, line)
	return line, nil
}

// GetBaseMAC returns the base MAC from the identity EEPROM.
func (m *Module) GetBaseMAC() (string, error) {
	if m.baseMAC == "" {
		return "", platform.ErrNotImplemented
	}
	return m.baseMAC, nil
}

// GetSystemEEPROMInfo returns the decoded identity EEPROM contents.
func (m *Module) GetSystemEEPROMInfo() (map[string]string, error) {
	if m.eepromInfo == nil {
		return nil, platform.ErrNotImplemented
	}
	return m.eepromInfo, nil
}

// GetName returns the module type tag followed by the module index.
func (m *Module) GetName() (string, error) {
	return platform.FormatName(m.mtype, m.cfg.Index), nil
}

// GetDescription returns the configured description.
func (m *Module) GetDescription() (string, error) {
	return m.cfg.Description, nil
}

// GetSlot returns the configured slot number.
func (m *Module) GetSlot() (int, error) {
	return m.cfg.Slot, nil
}

// GetType returns the configured module type.
func (m *Module) GetType() (platform.ModuleType, error) {
	return m.mtype, nil
}

// GetStatus derives the module status from the admin state and the fault
// line level.
func (m *Module) GetStatus() (platform.ModuleStatus, error) {
	m.mu.Lock()
	adminUp := m.adminUp
	m.mu.Unlock()

	if !adminUp {
		return platform.StatusOffline, nil
	}
	if m.fault != nil {
		value, err := m.fault.Value()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLineRead, err)
		}
		if value != 0 {
			return platform.StatusFault, nil
		}
	}
	return platform.StatusOnline, nil
}

// Reboot power-cycles the module via the power-enable line. The request is
// refused while the module is administratively down. The pulse itself runs
// outside the lock so status reads are not stalled for its duration.
func (m *Module) Reboot() (bool, error) {
	m.mu.Lock()
	adminUp := m.adminUp
	m.mu.Unlock()

	if !adminUp {
		return false, nil
	}
	if m.power == nil {
		return false, nil
	}

	log.Printf("power-cycling module %s", platform.FormatName(m.mtype, m.cfg.Index))
	if err := m.power.SetValue(0); err != nil {
		return false, fmt.Errorf("%w: %v", ErrLineWrite, err)
	}
	time.Sleep(250 * time.Millisecond)
	if err := m.power.SetValue(1); err != nil {
		return false, fmt.Errorf("%w: %v", ErrLineWrite, err)
	}
	return true, nil
}

// SetAdminState drives the power-enable line.
func (m *Module) SetAdminState(up bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.power != nil {
		value := 0
		if up {
			value = 1
		}
		if err := m.power.SetValue(value); err != nil {
			return false, fmt.Errorf("%w: %v", ErrLineWrite, err)
		}
	}
	m.adminUp = up
	return true, nil
}

// GetChangeEvent returns presence edges observed since the previous call. A
// zero timeout blocks until at least one event arrives; a positive timeout
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

	for {
		select {
		case rec := <-m.events:
			events.Add(rec.devType, rec.id, rec.event)
		default:
			return events, nil
		}
	}
}

// Close releases all claimed lines and the chip.
func (m *Module) Close() error {
	for _, line := range m.presence {
		line.Close() //nolint:errcheck
	}
	if m.power != nil {
		m.power.Close() //nolint:errcheck
	}
	if m.fault != nil {
		m.fault.Close() //nolint:errcheck
	}
	if m.chip != nil {
		return m.chip.Close()
	}
	return nil
}

// gpioDevice is the shared state behind GPIO-backed sub-devices. Presence
// pins read 0 while a device is seated.
type gpioDevice struct {
	name string
	line *gpiocdev.Line
}

func (d *gpioDevice) GetName() string { return d.name }

func (d *gpioDevice) GetPresence() (bool, error) {
	value, err := d.line.Value()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLineRead, err)
	}
	return value == 0, nil
}

func (d *gpioDevice) GetModel() (string, error)  { return "", platform.ErrNotImplemented }
func (d *gpioDevice) GetSerial() (string, error) { return "", platform.ErrNotImplemented }

func (d *gpioDevice) GetStatus() (bool, error) {
	return d.GetPresence()
}

type gpioFan struct {
	gpioDevice
}

// GetSpeed is unavailable over a bare presence pin.
func (f *gpioFan) GetSpeed() (int, error) { return 0, platform.ErrNotImplemented }

type gpioSFP struct {
	gpioDevice
}

// GetTxDisable is unavailable over a bare presence pin.
func (s *gpioSFP) GetTxDisable() (bool, error) { return false, platform.ErrNotImplemented }
