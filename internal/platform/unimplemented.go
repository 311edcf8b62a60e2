package platform

import "time"

// UnimplementedModule provides identity and lifecycle methods that all
// return ErrNotImplemented. Embed it in a concrete module implementation
// and override the methods the hardware supports.
//
// Example:
//
//	type lineCard struct {
//	    platform.ModuleBase
//	    // vendor fields
//	}
type UnimplementedModule struct{}

// GetBaseMAC returns ErrNotImplemented.
func (UnimplementedModule) GetBaseMAC() (string, error) {
	return "", ErrNotImplemented
}

// GetSystemEEPROMInfo returns ErrNotImplemented.
func (UnimplementedModule) GetSystemEEPROMInfo() (map[string]string, error) {
	return nil, ErrNotImplemented
}

// GetName returns ErrNotImplemented.
func (UnimplementedModule) GetName() (string, error) {
	return "", ErrNotImplemented
}

// GetDescription returns ErrNotImplemented.
func (UnimplementedModule) GetDescription() (string, error) {
	return "", ErrNotImplemented
}

// GetSlot returns ErrNotImplemented.
func (UnimplementedModule) GetSlot() (int, error) {
	return 0, ErrNotImplemented
}

// GetType returns ErrNotImplemented.
func (UnimplementedModule) GetType() (ModuleType, error) {
	return "", ErrNotImplemented
}

// GetStatus returns ErrNotImplemented.
func (UnimplementedModule) GetStatus() (ModuleStatus, error) {
	return "", ErrNotImplemented
}

// Reboot returns ErrNotImplemented.
func (UnimplementedModule) Reboot() (bool, error) {
	return false, ErrNotImplemented
}

// SetAdminState returns ErrNotImplemented.
func (UnimplementedModule) SetAdminState(up bool) (bool, error) {
	return false, ErrNotImplemented
}

// GetChangeEvent returns ErrNotImplemented.
func (UnimplementedModule) GetChangeEvent(timeout time.Duration) (ChangeEventMap, error) {
	return nil, ErrNotImplemented
}

// Close is a no-op for module handles that hold no resources.
func (UnimplementedModule) Close() error {
	return nil
}
