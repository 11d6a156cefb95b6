package stun

import "errors"

// maxSoftwareSize is the RFC 5389 Section 15.10 cap: at most 128
// characters, which can be up to 763 bytes of UTF-8.
const maxSoftwareSize = 763

var errSoftwareTooLong = errors.New("software description too long")

// Software is the SOFTWARE attribute (RFC 5389 Section 15.10), a textual
// description of the sending agent.
type Software string

// AttrType returns AttrSoftware.
func (Software) AttrType() AttrType { return AttrSoftware }

// MarshalPayload serializes the description as UTF-8 bytes.
func (s Software) MarshalPayload() ([]byte, error) {
	if len(s) > maxSoftwareSize {
		return nil, errSoftwareTooLong
	}
	return []byte(s), nil
}

// UnmarshalPayload deserializes the description. Any byte sequence is
// accepted; interpretation is left to the caller.
func (s *Software) UnmarshalPayload(value []byte) error {
	*s = Software(value)
	return nil
}
