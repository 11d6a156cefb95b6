package stun

// Method is a STUN method. Only the low 12 bits are used on the wire
// (RFC 5389 Section 6).
type Method uint16

// Methods defined by RFC 5389.
const (
	MethodBinding Method = 0x0001
)

// maxMethod is the largest method representable in the 12 method bits.
const maxMethod Method = 0x0FFF

// Class is a STUN message class.
type Class uint8

// Message classes (RFC 5389 Section 6). The values match the C1,C0 bit
// pair on the wire: C0 is the low bit, C1 the high bit.
const (
	ClassRequest    Class = 0x00
	ClassIndication Class = 0x01
	ClassSuccess    Class = 0x02
	ClassError      Class = 0x03
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassRequest:
		return "request"
	case ClassIndication:
		return "indication"
	case ClassSuccess:
		return "success response"
	case ClassError:
		return "error response"
	default:
		return "unknown"
	}
}

// MessageType is the decoded form of the 16-bit message type field.
type MessageType struct {
	Method Method
	Class  Class
}

// Message type field bit layout (RFC 5389 Section 6):
//
//	 0                 1
//	 2  3  4 5 6 7 8 9 0 1 2 3 4 5
//	+--+--+-+-+-+-+-+-+-+-+-+-+-+-+
//	|M |M |M|M|M|C|M|M|M|C|M|M|M|M|
//	|11|10|9|8|7|1|6|5|4|0|3|2|1|0|
//	+--+--+-+-+-+-+-+-+-+-+-+-+-+-+
//
// i.e. with bit 0 the least significant bit of the field:
// bits 0-3 are method bits 0-3, bit 4 is C0, bits 5-7 are method bits
// 4-6, bit 8 is C1, bits 9-13 are method bits 7-11, bits 14-15 are zero.
const (
	typeC0Shift = 4
	typeC1Shift = 8

	typeMethodLowMask  uint16 = 0x000F // method bits 0-3
	typeMethodMidMask  uint16 = 0x0070 // method bits 4-6
	typeMethodHighMask uint16 = 0x0F80 // method bits 7-11

	typeReservedMask uint16 = 0xC000 // top two bits, always zero
)

// Value packs the method and class into the 16-bit wire field.
func (t MessageType) Value() uint16 {
	m := uint16(t.Method)
	c := uint16(t.Class)

	v := m & typeMethodLowMask
	v |= (c & 0x1) << typeC0Shift
	v |= (m & typeMethodMidMask) << 1
	v |= ((c >> 1) & 0x1) << typeC1Shift
	v |= (m & typeMethodHighMask) << 2
	return v
}

// ParseMessageType unpacks a 16-bit wire field into method and class.
// It is the exact inverse of Value; the reserved top bits are ignored
// here and validated by the message decoder.
func ParseMessageType(v uint16) MessageType {
	m := v & typeMethodLowMask
	m |= (v >> 1) & typeMethodMidMask
	m |= (v >> 2) & typeMethodHighMask

	c := (v >> typeC0Shift) & 0x1
	c |= ((v >> typeC1Shift) & 0x1) << 1

	return MessageType{Method: Method(m), Class: Class(c)}
}
