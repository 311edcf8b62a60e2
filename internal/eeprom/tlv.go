// Package eeprom encodes and decodes ONIE TlvInfo identity EEPROMs.
//
// A TlvInfo blob is an 11-byte header ("TlvInfo\0", a format version, and a
// big-endian total length) followed by type/length/value fields and a
// trailing CRC-32 field covering everything before the CRC value itself.
package eeprom

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"net"
	"strconv"
)

// TlvInfo type codes from the OCP ONIE specification.
const (
	TypeProductName     byte = 0x21
	TypePartNumber      byte = 0x22
	TypeSerialNumber    byte = 0x23
	TypeBaseMAC         byte = 0x24
	TypeManufactureDate byte = 0x25
	TypeDeviceVersion   byte = 0x26
	TypeLabelRevision   byte = 0x27
	TypePlatformName    byte = 0x28
	TypeONIEVersion     byte = 0x29
	TypeNumMACs         byte = 0x2a
	TypeManufacturer    byte = 0x2b
	TypeCountryCode     byte = 0x2c
	TypeVendor          byte = 0x2d
	TypeDiagVersion     byte = 0x2e
	TypeServiceTag      byte = 0x2f
	TypeVendorExt       byte = 0xfd
	TypeCRC32           byte = 0xfe
)

const (
	headerID      = "TlvInfo\x00"
	headerVersion = 0x01
	headerSize    = 11
	crcFieldSize  = 6 // type + length + 4 value bytes
)

var typeNames = map[byte]string{
	TypeProductName:     "Product Name",
	TypePartNumber:      "Part Number",
	TypeSerialNumber:    "Serial Number",
	TypeBaseMAC:         "Base MAC Address",
	TypeManufactureDate: "Manufacture Date",
	TypeDeviceVersion:   "Device Version",
	TypeLabelRevision:   "Label Revision",
	TypePlatformName:    "Platform Name",
	TypeONIEVersion:     "ONIE Version",
	TypeNumMACs:         "MAC Addresses",
	TypeManufacturer:    "Manufacturer",
	TypeCountryCode:     "Country Code",
	TypeVendor:          "Vendor Name",
	TypeDiagVersion:     "Diag Version",
	TypeServiceTag:      "Service Tag",
	TypeVendorExt:       "Vendor Extension",
	TypeCRC32:           "CRC-32",
}

// KeyFor returns the map key used for a type code, e.g. "0x21".
func KeyFor(typ byte) string {
	return fmt.Sprintf("0x%02x", typ)
}

// TypeName returns the human-readable name of a type code, or "Unknown" for
// codes the ONIE specification does not define.
func TypeName(typ byte) string {
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return "Unknown"
}

// FormatMAC renders a hardware address as colon-separated uppercase hex
// octets, the form the module contract requires.
func FormatMAC(addr net.HardwareAddr) string {
	var buf bytes.Buffer
	for i, b := range addr {
		if i > 0 {
			buf.WriteByte(':')
		}
		fmt.Fprintf(&buf, "%02X", b)
	}
	return buf.String()
}

// Decode parses a TlvInfo blob into a map keyed by hex type code strings
// (e.g. "0x21") with decoded string values. The CRC-32 field is validated
// and included in the result.
func Decode(data []byte) (map[string]string, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}
	if string(data[:len(headerID)]) != headerID {
		return nil, ErrInvalidHeader
	}
	if data[8] != headerVersion {
		return nil, fmt.Errorf("%w: version 0x%02x", ErrInvalidHeader, data[8])
	}

	total := int(binary.BigEndian.Uint16(data[9:headerSize]))
	if len(data) < headerSize+total {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d",
			ErrTruncated, total, len(data)-headerSize)
	}

	body := data[headerSize : headerSize+total]
	info := make(map[string]string)
	for i := 0; i < len(body); {
		if len(body)-i < 2 {
			return nil, fmt.Errorf("%w: field header at offset %d", ErrTruncated, i)
		}
		typ := body[i]
		length := int(body[i+1])
		if len(body)-i-2 < length {
			return nil, fmt.Errorf("%w: field 0x%02x at offset %d", ErrTruncated, typ, i)
		}
		value := body[i+2 : i+2+length]

		if typ == TypeCRC32 {
			if length != 4 {
				return nil, fmt.Errorf("%w: %d byte CRC field", ErrBadCRC, length)
			}
			stored := binary.BigEndian.Uint32(value)
			// The checksum covers the header and every field byte up to
			// and including the CRC type and length.
			calculated := crc32.ChecksumIEEE(data[:headerSize+i+2])
			if calculated != stored {
				return nil, fmt.Errorf("%w: calculated 0x%08x, stored 0x%08x",
					ErrBadCRC, calculated, stored)
			}
			info[KeyFor(typ)] = fmt.Sprintf("0x%08X", stored)
			return info, nil
		}

		info[KeyFor(typ)] = decodeValue(typ, value)
		i += 2 + length
	}

	return nil, ErrMissingCRC
}

func decodeValue(typ byte, value []byte) string {
	switch typ {
	case TypeBaseMAC:
		if len(value) == 6 {
			return FormatMAC(net.HardwareAddr(value))
		}
	case TypeDeviceVersion:
		if len(value) == 1 {
			return strconv.Itoa(int(value[0]))
		}
	case TypeNumMACs:
		if len(value) == 2 {
			return strconv.Itoa(int(binary.BigEndian.Uint16(value)))
		}
	case TypeVendorExt:
		return "0x" + hex.EncodeToString(value)
	}
	return string(value)
}

type field struct {
	typ   byte
	value []byte
}

// Builder assembles a TlvInfo blob. Fields appear in the order added; the
// header and trailing CRC-32 field are supplied by Bytes.
type Builder struct {
	fields []field
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a raw field.
func (b *Builder) Add(typ byte, value []byte) *Builder {
	b.fields = append(b.fields, field{typ: typ, value: value})
	return b
}

// AddString appends an ASCII string field.
func (b *Builder) AddString(typ byte, value string) *Builder {
	return b.Add(typ, []byte(value))
}

// AddMAC appends a base MAC address field. The address must be a 48-bit MAC
// in any form net.ParseMAC accepts.
func (b *Builder) AddMAC(mac string) error {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMAC, err)
	}
	if len(hw) != 6 {
		return fmt.Errorf("%w: %s is not 48 bits", ErrInvalidMAC, mac)
	}
	b.Add(TypeBaseMAC, hw)
	return nil
}

// AddNumMACs appends the allocated MAC address count field.
func (b *Builder) AddNumMACs(n uint16) *Builder {
	value := make([]byte, 2)
	binary.BigEndian.PutUint16(value, n)
	return b.Add(TypeNumMACs, value)
}

// AddDeviceVersion appends the device version field.
func (b *Builder) AddDeviceVersion(v byte) *Builder {
	return b.Add(TypeDeviceVersion, []byte{v})
}

// Bytes assembles the blob, appending the CRC-32 field.
func (b *Builder) Bytes() ([]byte, error) {
	var body bytes.Buffer
	for _, f := range b.fields {
		if len(f.value) > 255 {
			return nil, fmt.Errorf("%w: field 0x%02x is %d bytes",
				ErrFieldTooLong, f.typ, len(f.value))
		}
		body.WriteByte(f.typ)
		body.WriteByte(byte(len(f.value)))
		body.Write(f.value)
	}

	total := body.Len() + crcFieldSize
	if total > 0xffff {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobTooLarge, total)
	}

	out := bytes.NewBufferString(headerID)
	out.WriteByte(headerVersion)
	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, uint16(total))
	out.Write(lenBytes)
	out.Write(body.Bytes())

	out.WriteByte(TypeCRC32)
	out.WriteByte(4)
	crc := crc32.ChecksumIEEE(out.Bytes())
	crcBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(crcBytes, crc)
	out.Write(crcBytes)

	return out.Bytes(), nil
}
