package platform

import (
	"fmt"
	"time"
)

// ModuleType identifies the kind of card occupying a chassis slot.
type ModuleType string

const (
	ModuleTypeSupervisor ModuleType = "SUPERVISOR"
	ModuleTypeLineCard   ModuleType = "LINE-CARD"
	ModuleTypeFabricCard ModuleType = "FABRIC-CARD"
)

// Valid reports whether t is one of the supported module types.
func (t ModuleType) Valid() bool {
	switch t {
	case ModuleTypeSupervisor, ModuleTypeLineCard, ModuleTypeFabricCard:
		return true
	}
	return false
}

// ParseModuleType converts a string into a ModuleType.
func ParseModuleType(s string) (ModuleType, error) {
	t := ModuleType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidModuleType, s)
	}
	return t, nil
}

// FormatName builds the canonical module name from a type and a per-type
// index, e.g. FormatName(ModuleTypeLineCard, 2) == "LINE-CARD2".
func FormatName(t ModuleType, index int) string {
	return fmt.Sprintf("%s%d", t, index)
}

// ModuleStatus describes the operational state of a module slot.
type ModuleStatus string

const (
	// StatusEmpty means no module is inserted in the slot.
	StatusEmpty ModuleStatus = "Empty"
	// StatusOffline means the module is powered down. This is also the
	// admin-down state.
	StatusOffline ModuleStatus = "Offline"
	// StatusPresent means the module is powered up but not yet fully
	// functional.
	StatusPresent ModuleStatus = "Present"
	// StatusFault means the module is powered up but entered a fault
	// state and cannot go online.
	StatusFault ModuleStatus = "Fault"
	// StatusOnline means the module is fully operational.
	StatusOnline ModuleStatus = "Online"
)

// Valid reports whether s is one of the supported status values.
func (s ModuleStatus) Valid() bool {
	switch s {
	case StatusEmpty, StatusOffline, StatusPresent, StatusFault, StatusOnline:
		return true
	}
	return false
}

// DeviceType tags a class of sub-device hosted on a module. These values
// appear as the outer keys of a ChangeEventMap and must stay stable for
// cross-component compatibility.
type DeviceType string

const (
	DeviceTypeComponent DeviceType = "component"
	DeviceTypeFan       DeviceType = "fan"
	DeviceTypePSU       DeviceType = "psu"
	DeviceTypeThermal   DeviceType = "thermal"
	DeviceTypeSFP       DeviceType = "sfp"
)

// DeviceEvent is an insertion/removal event code.
type DeviceEvent string

const (
	DeviceInserted DeviceEvent = "1"
	DeviceRemoved  DeviceEvent = "0"
)

// ChangeEventMap collects insertion/removal events keyed by device type and
// then by device id. Ex. {"fan": {"0": "0", "2": "1"}, "sfp": {"11": "0"}}
// means fan 0 was removed, fan 2 inserted, and sfp 11 removed.
type ChangeEventMap map[DeviceType]map[string]DeviceEvent

// Add records an event for the given device, creating the inner map if
// needed. A later event for the same device overwrites the earlier one.
func (m ChangeEventMap) Add(devType DeviceType, deviceID string, event DeviceEvent) {
	devs, ok := m[devType]
	if !ok {
		devs = make(map[string]DeviceEvent)
		m[devType] = devs
	}
	devs[deviceID] = event
}

// Module is the contract every platform module implementation (supervisor,
// line-card, or fabric-card in a modular chassis) must provide. Embed
// ModuleBase to pick up stub identity methods and the shared device-list
// bookkeeping, then override what the hardware supports.
type Module interface {
	// GetBaseMAC returns the module's base MAC address as colon-separated
	// hex octets ("XX:XX:XX:XX:XX:XX").
	GetBaseMAC() (string, error)

	// GetSystemEEPROMInfo returns the module's identity EEPROM contents.
	// Keys are ONIE TlvInfo type codes as hex strings (e.g. "0x21") and
	// values are their decoded string content.
	GetSystemEEPROMInfo() (map[string]string, error)

	// GetName returns the module name: its type tag followed by a
	// per-type index, e.g. "SUPERVISOR0" or "LINE-CARD3".
	GetName() (string, error)

	// GetDescription returns the vendor's product description.
	GetDescription() (string, error)

	// GetSlot returns the physical slot number of the module.
	GetSlot() (int, error)

	// GetType returns the module type.
	GetType() (ModuleType, error)

	// GetStatus returns the current module status.
	GetStatus() (ModuleStatus, error)

	// Reboot requests a module reboot. The result reports whether the
	// request was accepted, not whether the reboot completed; observe
	// completion via GetStatus or GetChangeEvent.
	Reboot() (bool, error)

	// SetAdminState requests the administrative state. Down powers the
	// module off toward Offline; up powers it on toward Present, Fault,
	// or Online depending on self-test. The result reports request
	// acceptance only.
	SetAdminState(up bool) (bool, error)

	// GetChangeEvent returns sub-device insertion/removal events observed
	// since the previous call. A zero timeout blocks until at least one
	// event is available; a positive timeout returns whatever accumulated
	// within that window, possibly an empty map.
	GetChangeEvent(timeout time.Duration) (ChangeEventMap, error)

	// Close releases any resources held by the module handle.
	Close() error

	DeviceHolder
}

// ModuleBase is the embeddable starting point for concrete module
// implementations: every identity method reports ErrNotImplemented until
// overridden, and the five sub-device collections are ready to use.
type ModuleBase struct {
	UnimplementedModule
	DeviceLists
}

var _ Module = (*ModuleBase)(nil)
