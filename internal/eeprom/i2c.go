package eeprom

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// ReadFromI2C reads a complete TlvInfo blob from an identity EEPROM on the
// named I2C bus (e.g. "1" or "/dev/i2c-1"). The header is read first to
// learn how much data follows. The device is assumed to use 16-bit word
// addressing, as the AT24-style parts used for ONIE EEPROMs do.
func ReadFromI2C(busName string, addr uint16) ([]byte, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeriphInit, err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrBusOpen, busName, err)
	}
	defer bus.Close() //nolint:errcheck

	dev := &i2c.Dev{Bus: bus, Addr: addr}

	header := make([]byte, headerSize)
	if err := dev.Tx([]byte{0x00, 0x00}, header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBusRead, err)
	}
	if string(header[:len(headerID)]) != headerID {
		return nil, ErrInvalidHeader
	}

	total := int(binary.BigEndian.Uint16(header[9:headerSize]))
	blob := make([]byte, headerSize+total)
	if err := dev.Tx([]byte{0x00, 0x00}, blob); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrBusRead, len(blob), err)
	}

	return blob, nil
}
