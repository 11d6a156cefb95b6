package stun

import (
	"bytes"
	"errors"
	"net/netip"
	"testing"
)

func TestMappedAddressRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		addr netip.AddrPort
	}{
		{"IPv4", netip.MustParseAddrPort("192.0.2.1:32853")},
		{"IPv6", netip.MustParseAddrPort("[2001:db8:1234:5678:11:2233:4455:6677]:32853")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := MappedAddress{Addr: tc.addr}
			a, err := ToAttribute(in)
			if err != nil {
				t.Fatalf("ToAttribute() error: %v", err)
			}

			var out MappedAddress
			if err := FromAttribute(a, &out); err != nil {
				t.Fatalf("FromAttribute() error: %v", err)
			}
			if out.Addr != tc.addr {
				t.Errorf("Addr = %v, want %v", out.Addr, tc.addr)
			}
		})
	}
}

func TestMappedAddressVector(t *testing.T) {
	in := MappedAddress{Addr: netip.MustParseAddrPort("192.0.2.1:32853")}
	got, err := in.MarshalPayload()
	if err != nil {
		t.Fatalf("MarshalPayload() error: %v", err)
	}

	want := []byte{
		0x00, 0x01, // reserved, IPv4
		0x80, 0x55, // port 32853
		0xC0, 0x00, 0x02, 0x01, // 192.0.2.1
	}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalPayload() = % X, want % X", got, want)
	}
}

func TestXORMappedAddressRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		addr netip.AddrPort
	}{
		{"IPv4", netip.MustParseAddrPort("192.0.2.1:32853")},
		{"IPv6", netip.MustParseAddrPort("[2001:db8:1234:5678:11:2233:4455:6677]:32853")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := NewXORMappedAddress(testTID, tc.addr)
			if err != nil {
				t.Fatalf("NewXORMappedAddress() error: %v", err)
			}
			a, err := ToAttribute(in)
			if err != nil {
				t.Fatalf("ToAttribute() error: %v", err)
			}

			var out XORMappedAddress
			if err := FromAttribute(a, &out); err != nil {
				t.Fatalf("FromAttribute() error: %v", err)
			}

			resolved, err := out.Resolve(testTID)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if resolved != tc.addr {
				t.Errorf("Resolve() = %v, want %v", resolved, tc.addr)
			}
		})
	}
}

func TestXORMappedAddressObfuscation(t *testing.T) {
	// The port on the wire is XORed with the high half of the cookie
	// and the IPv4 address with the cookie itself.
	in, err := NewXORMappedAddress(testTID, netip.MustParseAddrPort("192.0.2.1:32853"))
	if err != nil {
		t.Fatalf("NewXORMappedAddress() error: %v", err)
	}
	got, err := in.MarshalPayload()
	if err != nil {
		t.Fatalf("MarshalPayload() error: %v", err)
	}

	want := []byte{
		0x00, 0x01,
		0x80 ^ 0x21, 0x55 ^ 0x12,
		0xC0 ^ 0x21, 0x00 ^ 0x12, 0x02 ^ 0xA4, 0x01 ^ 0x42,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalPayload() = % X, want % X", got, want)
	}
}

func TestAddressUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
	}{
		{"Too short", []byte{0x00, 0x01, 0x80}},
		{"Unknown family", []byte{0x00, 0x03, 0x80, 0x55, 0x01, 0x02, 0x03, 0x04}},
		{"IPv4 with wrong length", []byte{0x00, 0x01, 0x80, 0x55, 0x01, 0x02}},
		{"IPv6 with wrong length", []byte{0x00, 0x02, 0x80, 0x55, 0x01, 0x02, 0x03, 0x04}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var m MappedAddress
			err := FromAttribute(Attribute{Type: AttrMappedAddress, Value: tc.value}, &m)
			if !errors.Is(err, ErrAttributeDecode) {
				t.Errorf("MappedAddress: error = %v, want ErrAttributeDecode", err)
			}

			var x XORMappedAddress
			err = FromAttribute(Attribute{Type: AttrXORMappedAddress, Value: tc.value}, &x)
			if !errors.Is(err, ErrAttributeDecode) {
				t.Errorf("XORMappedAddress: error = %v, want ErrAttributeDecode", err)
			}
		})
	}
}

func TestXORMappedAddressInMessage(t *testing.T) {
	addr := netip.MustParseAddrPort("203.0.113.9:49152")

	m, err := NewMessage(MethodBinding, ClassSuccess)
	if err != nil {
		t.Fatalf("NewMessage() error: %v", err)
	}
	xma, err := NewXORMappedAddress(m.TransactionID, addr)
	if err != nil {
		t.Fatalf("NewXORMappedAddress() error: %v", err)
	}
	if err := m.Append(xma); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	m.Fingerprint = true

	wire, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	found, err := FindAll[XORMappedAddress](got.Attributes)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("FindAll() returned %d matches, want 1", len(found))
	}
	resolved, err := found[0].Resolve(got.TransactionID)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if resolved != addr {
		t.Errorf("Resolve() = %v, want %v", resolved, addr)
	}
}
