package platform

// Device is the identity surface shared by every sub-device hosted on a
// module.
type Device interface {
	// GetName returns the device name, unique within its device type on
	// the hosting module.
	GetName() string

	// GetPresence reports whether the device is physically present.
	GetPresence() (bool, error)

	// GetModel returns the vendor model identifier.
	GetModel() (string, error)

	// GetSerial returns the device serial number.
	GetSerial() (string, error)

	// GetStatus reports whether the device is operating normally.
	GetStatus() (bool, error)
}

// Component is a generic vendor-defined sub-device (BIOS, CPLD, FPGA, ...).
type Component interface {
	Device

	// GetFirmwareVersion returns the currently running firmware version.
	GetFirmwareVersion() (string, error)
}

// Fan is a fan hosted on a module.
type Fan interface {
	Device

	// GetSpeed returns the current fan speed as a percentage of the
	// maximum.
	GetSpeed() (int, error)
}

// PSU is a power supply unit hosted on a module.
type PSU interface {
	Device

	// GetVoltage returns the output voltage in volts.
	GetVoltage() (float64, error)
}

// Thermal is a temperature sensor hosted on a module.
type Thermal interface {
	Device

	// GetTemperature returns the measured temperature in degrees Celsius.
	GetTemperature() (float64, error)
}

// SFP is a pluggable transceiver hosted on a module.
type SFP interface {
	Device

	// GetTxDisable reports whether transmission is disabled.
	GetTxDisable() (bool, error)
}

// DeviceHolder exposes the five sub-device collections owned by a module.
// Indices are 0-based and stable for the lifetime of the module handle.
type DeviceHolder interface {
	GetNumComponents() int
	GetAllComponents() []Component
	GetComponent(index int) Component

	GetNumFans() int
	GetAllFans() []Fan
	GetFan(index int) Fan

	GetNumPSUs() int
	GetAllPSUs() []PSU
	GetPSU(index int) PSU

	GetNumThermals() int
	GetAllThermals() []Thermal
	GetThermal(index int) Thermal

	GetNumSFPs() int
	GetAllSFPs() []SFP
	GetSFP(index int) SFP
}
