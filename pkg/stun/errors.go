package stun

import "errors"

// Codec errors.
var (
	// Framing errors: malformed header or attribute structure.
	ErrMessageTooShort  = errors.New("stun: data too short")
	ErrReservedBitsSet  = errors.New("stun: top two bits of message type must be zero")
	ErrLengthUnaligned  = errors.New("stun: message length not a multiple of 4")
	ErrTrailingBytes    = errors.New("stun: data extends past declared message length")
	ErrAttributeBounds  = errors.New("stun: attribute overruns its region")
	ErrAttributeTooLong = errors.New("stun: attribute value exceeds 16-bit length field")
	ErrMessageTooLong   = errors.New("stun: encoded message exceeds 16-bit length field")
	ErrMethodOutOfRange = errors.New("stun: method exceeds 12 bits")

	// ErrCookieMismatch indicates the magic cookie is wrong or missing.
	// Used to reject non-STUN traffic sharing a port.
	ErrCookieMismatch = errors.New("stun: magic cookie mismatch")

	// ErrFingerprintMismatch indicates the trailing FINGERPRINT attribute
	// does not match the CRC of the message. Signals corruption, tampering
	// or truncation.
	ErrFingerprintMismatch = errors.New("stun: fingerprint mismatch")

	// Attribute conversion errors.

	// ErrAttributeWrongType is a soft, per-attribute classification: the
	// attribute is not of the requested kind. It never aborts a scan.
	ErrAttributeWrongType = errors.New("stun: attribute has a different type")

	// ErrAttributeDecode is a hard, per-attribute classification: the
	// attribute has the right type but a corrupt payload. It aborts the
	// enclosing scan.
	ErrAttributeDecode = errors.New("stun: malformed attribute payload")
)

// Wire format constants (RFC 5389 Section 6).
const (
	// MagicCookie is the fixed header constant disambiguating STUN from
	// other protocols sharing a transport port.
	MagicCookie uint32 = 0x2112A442

	// HeaderSize is the STUN message header size in bytes.
	// Type (2) + Length (2) + Magic Cookie (4) + Transaction ID (12) = 20
	HeaderSize = 20

	// TransactionIDSize is the size of the 96-bit transaction ID in bytes.
	TransactionIDSize = 12

	// attrHeaderSize is the size of the attribute type and length fields.
	attrHeaderSize = 4

	// maxAttrValueSize is the largest value the 16-bit length field can hold.
	maxAttrValueSize = 0xFFFF
)

// Fingerprint constants (RFC 5389 Section 15.5).
const (
	// fingerprintXorValue is XORed with the CRC-32 so the attribute can be
	// told apart from a plain CRC covering the same bytes.
	fingerprintXorValue uint32 = 0x5354554E

	// fingerprintSize is the full wire size of the FINGERPRINT attribute.
	// Type (2) + Length (2) + CRC (4) = 8
	fingerprintSize = 8
)
