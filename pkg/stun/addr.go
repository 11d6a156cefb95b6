package stun

import (
	"encoding/binary"
	"errors"
	"net/netip"
)

// Address families (RFC 5389 Section 15.1).
const (
	familyIPv4 byte = 0x01
	familyIPv6 byte = 0x02
)

var (
	errAddrTooShort = errors.New("address attribute too short")
	errAddrFamily   = errors.New("unknown address family")
	errAddrLength   = errors.New("address length does not match family")
	errAddrInvalid  = errors.New("invalid address")
)

// marshalAddress builds the common (XOR-)MAPPED-ADDRESS payload layout:
// one reserved byte, family, 2-byte port, then the raw address.
func marshalAddress(ap netip.AddrPort) ([]byte, error) {
	addr := ap.Addr().Unmap()

	var family byte
	var raw []byte
	switch {
	case addr.Is4():
		b := addr.As4()
		family, raw = familyIPv4, b[:]
	case addr.Is6():
		b := addr.As16()
		family, raw = familyIPv6, b[:]
	default:
		return nil, errAddrInvalid
	}

	buf := make([]byte, 4+len(raw))
	buf[1] = family
	binary.BigEndian.PutUint16(buf[2:4], ap.Port())
	copy(buf[4:], raw)
	return buf, nil
}

// unmarshalAddress splits the common address payload layout and checks
// that the address length matches the declared family.
func unmarshalAddress(value []byte) (family byte, port uint16, raw []byte, err error) {
	if len(value) < 4 {
		return 0, 0, nil, errAddrTooShort
	}
	family = value[1]
	port = binary.BigEndian.Uint16(value[2:4])
	raw = value[4:]

	switch family {
	case familyIPv4:
		if len(raw) != 4 {
			return 0, 0, nil, errAddrLength
		}
	case familyIPv6:
		if len(raw) != 16 {
			return 0, 0, nil, errAddrLength
		}
	default:
		return 0, 0, nil, errAddrFamily
	}
	return family, port, raw, nil
}

// MappedAddress is the MAPPED-ADDRESS attribute (RFC 5389 Section 15.1).
// Kept for compatibility with pre-RFC-5389 servers; new code should
// prefer XORMappedAddress.
type MappedAddress struct {
	Addr netip.AddrPort
}

// AttrType returns AttrMappedAddress.
func (MappedAddress) AttrType() AttrType { return AttrMappedAddress }

// MarshalPayload serializes the address in wire layout.
func (m MappedAddress) MarshalPayload() ([]byte, error) {
	return marshalAddress(m.Addr)
}

// UnmarshalPayload deserializes the wire layout into m.
func (m *MappedAddress) UnmarshalPayload(value []byte) error {
	_, port, raw, err := unmarshalAddress(value)
	if err != nil {
		return err
	}
	addr, ok := netip.AddrFromSlice(raw)
	if !ok {
		return errAddrInvalid
	}
	m.Addr = netip.AddrPortFrom(addr, port)
	return nil
}

// xorPortMask is the high half of the magic cookie, XORed into the port.
const xorPortMask = uint16(MagicCookie >> 16)

// xorAddrMask XORs b in place with magic cookie || transaction ID.
// For IPv4 only the cookie part of the mask is reached.
func xorAddrMask(b []byte, tid TransactionID) {
	var mask [16]byte
	binary.BigEndian.PutUint32(mask[:4], MagicCookie)
	copy(mask[4:], tid[:])
	for i := range b {
		b[i] ^= mask[i]
	}
}

// XORMappedAddress is the XOR-MAPPED-ADDRESS attribute (RFC 5389 Section
// 15.2). The value is held in its obfuscated wire form because reversing
// the IPv6 XOR needs the transaction ID, which is not part of the
// attribute. Build with NewXORMappedAddress, read with Resolve.
type XORMappedAddress struct {
	family  byte
	xorPort uint16
	xorAddr []byte
}

// NewXORMappedAddress obfuscates ap against the cookie and transaction ID.
func NewXORMappedAddress(tid TransactionID, ap netip.AddrPort) (XORMappedAddress, error) {
	wire, err := marshalAddress(ap)
	if err != nil {
		return XORMappedAddress{}, err
	}
	raw := wire[4:]
	xorAddrMask(raw, tid)
	return XORMappedAddress{
		family:  wire[1],
		xorPort: binary.BigEndian.Uint16(wire[2:4]) ^ xorPortMask,
		xorAddr: raw,
	}, nil
}

// Resolve reverses the obfuscation using the message's transaction ID.
func (x XORMappedAddress) Resolve(tid TransactionID) (netip.AddrPort, error) {
	raw := make([]byte, len(x.xorAddr))
	copy(raw, x.xorAddr)
	xorAddrMask(raw, tid)

	addr, ok := netip.AddrFromSlice(raw)
	if !ok {
		return netip.AddrPort{}, errAddrInvalid
	}
	return netip.AddrPortFrom(addr, x.xorPort^xorPortMask), nil
}

// AttrType returns AttrXORMappedAddress.
func (XORMappedAddress) AttrType() AttrType { return AttrXORMappedAddress }

// MarshalPayload serializes the obfuscated wire layout.
func (x XORMappedAddress) MarshalPayload() ([]byte, error) {
	if len(x.xorAddr) == 0 {
		return nil, errAddrInvalid
	}
	buf := make([]byte, 4+len(x.xorAddr))
	buf[1] = x.family
	binary.BigEndian.PutUint16(buf[2:4], x.xorPort)
	copy(buf[4:], x.xorAddr)
	return buf, nil
}

// UnmarshalPayload deserializes the obfuscated wire layout into x.
func (x *XORMappedAddress) UnmarshalPayload(value []byte) error {
	family, port, raw, err := unmarshalAddress(value)
	if err != nil {
		return err
	}
	x.family = family
	x.xorPort = port
	x.xorAddr = make([]byte, len(raw))
	copy(x.xorAddr, raw)
	return nil
}
