package stun

import (
	"encoding/binary"
	"hash/crc32"
)

// fingerprintValue computes the CRC-32 (IEEE) of b XORed with the STUN
// fingerprint constant, so the attribute can be told apart from a plain
// CRC covering the same bytes (RFC 5389 Section 15.5).
func fingerprintValue(b []byte) uint32 {
	return crc32.ChecksumIEEE(b) ^ fingerprintXorValue
}

// fingerprintAttribute builds the trailing FINGERPRINT attribute over
// already-encoded message bytes. The length field in b must already
// count the attribute's 8 wire bytes.
func fingerprintAttribute(b []byte) Attribute {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, fingerprintValue(b))
	return Attribute{Type: AttrFingerprint, Value: v}
}

// verifyFingerprint checks a trailing FINGERPRINT attribute against the
// full wire message, whose last fingerprintSize bytes are the attribute
// itself.
func verifyFingerprint(msg []byte, fp Attribute) error {
	if len(fp.Value) != 4 {
		return ErrFingerprintMismatch
	}
	want := fingerprintValue(msg[:len(msg)-fingerprintSize])
	if binary.BigEndian.Uint32(fp.Value) != want {
		return ErrFingerprintMismatch
	}
	return nil
}
