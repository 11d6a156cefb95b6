package stun

import (
	"errors"
	"fmt"
)

// PayloadMarshaler is the encode half of a typed attribute payload. Each
// payload kind carries a fixed attribute type tag and its own byte-level
// serialization; the codec never interprets payload bytes itself, so
// external packages can define kinds the codec has never seen.
type PayloadMarshaler interface {
	// AttrType returns the fixed attribute type tag for this payload kind.
	AttrType() AttrType

	// MarshalPayload serializes the value to attribute payload bytes.
	MarshalPayload() ([]byte, error)
}

// PayloadUnmarshaler is the decode half, implemented on pointer types.
type PayloadUnmarshaler interface {
	// AttrType returns the fixed attribute type tag for this payload kind.
	AttrType() AttrType

	// UnmarshalPayload deserializes attribute payload bytes into the
	// receiver.
	UnmarshalPayload(value []byte) error
}

// ToAttribute wraps a payload's serialized bytes with its type tag.
func ToAttribute(p PayloadMarshaler) (Attribute, error) {
	v, err := p.MarshalPayload()
	if err != nil {
		return Attribute{}, err
	}
	if len(v) > maxAttrValueSize {
		return Attribute{}, ErrAttributeTooLong
	}
	return Attribute{Type: p.AttrType(), Value: v}, nil
}

// FromAttribute extracts a typed payload from a raw attribute. The type
// tag is checked before any payload byte is interpreted: a tag mismatch
// yields ErrAttributeWrongType (recoverable, "not this kind"); a matching
// tag whose payload p cannot deserialize yields an error wrapping
// ErrAttributeDecode (terminal, "malformed").
func FromAttribute(a Attribute, p PayloadUnmarshaler) error {
	if a.Type != p.AttrType() {
		return ErrAttributeWrongType
	}
	if err := p.UnmarshalPayload(a.Value); err != nil {
		return fmt.Errorf("%w: %w", ErrAttributeDecode, err)
	}
	return nil
}

// payloadPtr constrains P to a pointer to T that can deserialize itself.
type payloadPtr[T any] interface {
	*T
	PayloadUnmarshaler
}

// FindAll scans attrs in order and collects every attribute of T's type.
// Attributes of other types are skipped. A matching attribute with a
// malformed payload aborts the whole scan with ErrAttributeDecode, even
// when other matches are well-formed.
func FindAll[T any, P payloadPtr[T]](attrs []Attribute) ([]T, error) {
	var out []T
	for _, a := range attrs {
		var v T
		err := FromAttribute(a, P(&v))
		if errors.Is(err, ErrAttributeWrongType) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
