package platform

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// DeviceLists owns the five ordered sub-device collections of a module and
// implements DeviceHolder on top of them. The zero value is ready to use:
// all collections start empty and diagnostics go to stderr.
//
// The collections are populated by the owning module implementation at
// construction time via the Add methods; callers only read them. The GetAll
// methods expose the live backing slice, not a copy.
type DeviceLists struct {
	components []Component
	fans       []Fan
	psus       []PSU
	thermals   []Thermal
	sfps       []SFP

	diagMu sync.Mutex
	diag   io.Writer
}

// SetDiagnostics redirects out-of-range diagnostics to w instead of stderr.
func (l *DeviceLists) SetDiagnostics(w io.Writer) {
	l.diagMu.Lock()
	defer l.diagMu.Unlock()
	l.diag = w
}

// reportRange emits the diagnostic for an out-of-range index access. This is
// a caller bug reported as a message, not an error the caller must handle.
func (l *DeviceLists) reportRange(kind string, index, size int) {
	l.diagMu.Lock()
	defer l.diagMu.Unlock()
	w := l.diag
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "%s index %d out of range (0-%d)\n", kind, index, size-1)
}

// atIndex returns devs[index], or the zero value after emitting a diagnostic
// when index is outside [0, len(devs)).
func atIndex[T any](l *DeviceLists, kind string, devs []T, index int) T {
	if index < 0 || index >= len(devs) {
		l.reportRange(kind, index, len(devs))
		var zero T
		return zero
	}
	return devs[index]
}

// AddComponent appends a component to the module's component list.
func (l *DeviceLists) AddComponent(c Component) { l.components = append(l.components, c) }

// GetNumComponents returns the number of components on this module.
func (l *DeviceLists) GetNumComponents() int { return len(l.components) }

// GetAllComponents returns all components on this module.
func (l *DeviceLists) GetAllComponents() []Component { return l.components }

// GetComponent returns the component at the given 0-based index, or nil
// (plus a diagnostic) if the index is out of range.
func (l *DeviceLists) GetComponent(index int) Component {
	return atIndex(l, "Component", l.components, index)
}

// AddFan appends a fan to the module's fan list.
func (l *DeviceLists) AddFan(f Fan) { l.fans = append(l.fans, f) }

// GetNumFans returns the number of fans on this module.
func (l *DeviceLists) GetNumFans() int { return len(l.fans) }

// GetAllFans returns all fans on this module.
func (l *DeviceLists) GetAllFans() []Fan { return l.fans }

// GetFan returns the fan at the given 0-based index, or nil (plus a
// diagnostic) if the index is out of range.
func (l *DeviceLists) GetFan(index int) Fan {
	return atIndex(l, "Fan", l.fans, index)
}

// AddPSU appends a power supply unit to the module's PSU list.
func (l *DeviceLists) AddPSU(p PSU) { l.psus = append(l.psus, p) }

// GetNumPSUs returns the number of power supply units on this module.
func (l *DeviceLists) GetNumPSUs() int { return len(l.psus) }

// GetAllPSUs returns all power supply units on this module.
func (l *DeviceLists) GetAllPSUs() []PSU { return l.psus }

// GetPSU returns the PSU at the given 0-based index, or nil (plus a
// diagnostic) if the index is out of range.
func (l *DeviceLists) GetPSU(index int) PSU {
	return atIndex(l, "PSU", l.psus, index)
}

// AddThermal appends a thermal sensor to the module's thermal list.
func (l *DeviceLists) AddThermal(t Thermal) { l.thermals = append(l.thermals, t) }

// GetNumThermals returns the number of thermal sensors on this module.
func (l *DeviceLists) GetNumThermals() int { return len(l.thermals) }

// GetAllThermals returns all thermal sensors on this module.
func (l *DeviceLists) GetAllThermals() []Thermal { return l.thermals }

// GetThermal returns the thermal sensor at the given 0-based index, or nil
// (plus a diagnostic) if the index is out of range. The diagnostic spells the
// kind "THERMAL"; the uppercase form is fixed for cross-component
// compatibility.
func (l *DeviceLists) GetThermal(index int) Thermal {
	return atIndex(l, "THERMAL", l.thermals, index)
}

// AddSFP appends a transceiver to the module's SFP list.
func (l *DeviceLists) AddSFP(s SFP) { l.sfps = append(l.sfps, s) }

// GetNumSFPs returns the number of transceivers on this module.
func (l *DeviceLists) GetNumSFPs() int { return len(l.sfps) }

// GetAllSFPs returns all transceivers on this module.
func (l *DeviceLists) GetAllSFPs() []SFP { return l.sfps }

// GetSFP returns the transceiver at the given 0-based index, or nil (plus a
// diagnostic) if the index is out of range.
func (l *DeviceLists) GetSFP(index int) SFP {
	return atIndex(l, "SFP", l.sfps, index)
}
