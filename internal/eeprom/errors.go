package eeprom

import "errors"

// Decode errors
var (
	ErrInvalidHeader = errors.New("invalid TlvInfo header")
	ErrTruncated     = errors.New("truncated TlvInfo data")
	ErrBadCRC        = errors.New("TlvInfo checksum mismatch")
	ErrMissingCRC    = errors.New("TlvInfo data has no CRC-32 field")
)

// Encode errors
var (
	ErrInvalidMAC   = errors.New("invalid MAC address")
	ErrFieldTooLong = errors.New("TlvInfo field too long")
	ErrBlobTooLarge = errors.New("TlvInfo data exceeds format limit")
)

// Bus access errors
var (
	ErrPeriphInit = errors.New("failed to initialize periph.io")
	ErrBusOpen    = errors.New("failed to open I2C bus")
	ErrBusRead    = errors.New("failed to read EEPROM")
)
