package stun

import "encoding/binary"

// Message is a decoded STUN message. Messages are value objects: Encode
// and Decode construct fresh buffers and never share or mutate state, so
// concurrent use on independent messages needs no coordination.
type Message struct {
	// Type carries the method and class.
	Type MessageType

	// TransactionID correlates requests and responses.
	TransactionID TransactionID

	// Attributes is the ordered attribute list. A trailing FINGERPRINT
	// attribute is never listed here; see Fingerprint.
	Attributes []Attribute

	// Fingerprint marks whether the message is (on encode) or was (on
	// decode) protected by a trailing FINGERPRINT attribute.
	Fingerprint bool
}

// NewMessage creates a message with a fresh random transaction ID.
func NewMessage(method Method, class Class) (*Message, error) {
	tid, err := NewTransactionID()
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:          MessageType{Method: method, Class: class},
		TransactionID: tid,
	}, nil
}

// IsMessage reports whether data plausibly starts a STUN message: long
// enough, reserved type bits zero, magic cookie in place. Cheap enough
// to classify every datagram on a shared port.
func IsMessage(data []byte) bool {
	return len(data) >= HeaderSize &&
		data[0]&0xC0 == 0 &&
		binary.BigEndian.Uint32(data[4:8]) == MagicCookie
}

// Encode serializes the message to wire format. If Fingerprint is set, a
// FINGERPRINT attribute covering all preceding bytes is appended last.
func (m *Message) Encode() ([]byte, error) {
	if !m.Fingerprint {
		return m.encode(0)
	}

	// Encode with room reserved in the length field for the attribute
	// that is not appended yet; the CRC must cover a length field that
	// already counts it.
	buf, err := m.encode(fingerprintSize)
	if err != nil {
		return nil, err
	}
	fp := fingerprintAttribute(buf)
	fpBytes, err := fp.Encode()
	if err != nil {
		return nil, err
	}
	return append(buf, fpBytes...), nil
}

// encode serializes header and attributes, with the length field set to
// the attribute byte length plus reserve.
func (m *Message) encode(reserve int) ([]byte, error) {
	if m.Type.Method > maxMethod {
		return nil, ErrMethodOutOfRange
	}

	attrLen := 0
	for i := range m.Attributes {
		if len(m.Attributes[i].Value) > maxAttrValueSize {
			return nil, ErrAttributeTooLong
		}
		attrLen += m.Attributes[i].Size()
	}
	if attrLen+reserve > maxAttrValueSize {
		return nil, ErrMessageTooLong
	}

	buf := make([]byte, HeaderSize+attrLen)
	binary.BigEndian.PutUint16(buf[0:2], m.Type.Value())
	binary.BigEndian.PutUint16(buf[2:4], uint16(attrLen+reserve))
	binary.BigEndian.PutUint32(buf[4:8], MagicCookie)
	copy(buf[8:HeaderSize], m.TransactionID[:])

	off := HeaderSize
	for i := range m.Attributes {
		off += m.Attributes[i].EncodeTo(buf[off:])
	}
	return buf, nil
}

// Decode deserializes a wire message. Decoding is all-or-nothing: on any
// error no partial message is returned.
//
// A valid trailing FINGERPRINT attribute is verified, stripped from the
// attribute list and reported via the Fingerprint field. A FINGERPRINT
// attribute anywhere but last is left in the list untouched.
func Decode(data []byte) (*Message, error) {
	if len(data) < HeaderSize {
		return nil, ErrMessageTooShort
	}

	typeField := binary.BigEndian.Uint16(data[0:2])
	if typeField&typeReservedMask != 0 {
		return nil, ErrReservedBitsSet
	}

	length := int(binary.BigEndian.Uint16(data[2:4]))
	if length%4 != 0 {
		return nil, ErrLengthUnaligned
	}

	if binary.BigEndian.Uint32(data[4:8]) != MagicCookie {
		return nil, ErrCookieMismatch
	}

	end := HeaderSize + length
	if end > len(data) {
		return nil, ErrMessageTooShort
	}
	if end < len(data) {
		return nil, ErrTrailingBytes
	}

	m := &Message{Type: ParseMessageType(typeField)}
	copy(m.TransactionID[:], data[8:HeaderSize])

	// Bounded cursor walk over the attribute region. Each attribute
	// advances the cursor by at least 4 bytes, so this terminates.
	for off := HeaderSize; off < end; {
		var a Attribute
		n, err := a.Decode(data[off:end])
		if err != nil {
			return nil, err
		}
		off += n
		m.Attributes = append(m.Attributes, a)
	}

	if n := len(m.Attributes); n > 0 && m.Attributes[n-1].Type == AttrFingerprint {
		if err := verifyFingerprint(data[:end], m.Attributes[n-1]); err != nil {
			return nil, err
		}
		m.Fingerprint = true
		m.Attributes = m.Attributes[:n-1]
	}

	return m, nil
}

// Get returns the first attribute with the given type.
func (m *Message) Get(t AttrType) (Attribute, bool) {
	for _, a := range m.Attributes {
		if a.Type == t {
			return a, true
		}
	}
	return Attribute{}, false
}

// Append converts a typed payload and appends it to the attribute list.
func (m *Message) Append(p PayloadMarshaler) error {
	a, err := ToAttribute(p)
	if err != nil {
		return err
	}
	m.Attributes = append(m.Attributes, a)
	return nil
}
