package stun

import "encoding/binary"

// AttrType is the 16-bit attribute type tag.
type AttrType uint16

// Attribute types from RFC 5389.
const (
	AttrMappedAddress    AttrType = 0x0001
	AttrErrorCode        AttrType = 0x0009
	AttrXORMappedAddress AttrType = 0x0020
	AttrSoftware         AttrType = 0x8022
	AttrFingerprint      AttrType = 0x8028
)

// Attribute is a single TLV attribute. Value holds the unpadded logical
// payload; the 0-3 alignment padding bytes exist only on the wire.
// Attribute order within a message is significant and preserved.
type Attribute struct {
	Type  AttrType
	Value []byte
}

// paddedLen rounds n up to 4-byte alignment.
func paddedLen(n int) int {
	return (n + 3) &^ 3
}

// Size returns the encoded size of the attribute in bytes, including the
// type/length header and alignment padding.
func (a *Attribute) Size() int {
	return attrHeaderSize + paddedLen(len(a.Value))
}

// Encode serializes the attribute to wire format.
func (a *Attribute) Encode() ([]byte, error) {
	if len(a.Value) > maxAttrValueSize {
		return nil, ErrAttributeTooLong
	}
	buf := make([]byte, a.Size())
	a.EncodeTo(buf)
	return buf, nil
}

// EncodeTo serializes the attribute into the provided buffer, which must
// be at least Size() bytes long. Returns the number of bytes written.
// The caller is responsible for checking the value length fits the
// 16-bit length field; Encode does this.
func (a *Attribute) EncodeTo(buf []byte) int {
	binary.BigEndian.PutUint16(buf[0:2], uint16(a.Type))
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(a.Value)))
	n := copy(buf[attrHeaderSize:], a.Value)

	// Zero the padding; the buffer may be reused.
	for i := attrHeaderSize + n; i < a.Size(); i++ {
		buf[i] = 0
	}
	return a.Size()
}

// Decode deserializes one attribute from the front of data.
// Returns the number of bytes consumed, including alignment padding.
// The value is copied; data is never retained.
func (a *Attribute) Decode(data []byte) (int, error) {
	if len(data) < attrHeaderSize {
		return 0, ErrAttributeBounds
	}

	a.Type = AttrType(binary.BigEndian.Uint16(data[0:2]))
	valueLen := int(binary.BigEndian.Uint16(data[2:4]))

	// The declared length and its padding must both be present.
	consumed := attrHeaderSize + paddedLen(valueLen)
	if consumed > len(data) {
		return 0, ErrAttributeBounds
	}

	a.Value = make([]byte, valueLen)
	copy(a.Value, data[attrHeaderSize:attrHeaderSize+valueLen])

	return consumed, nil
}
