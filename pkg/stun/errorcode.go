package stun

import "errors"

var (
	errErrorCodeTooShort = errors.New("error code attribute too short")
	errErrorCodeRange    = errors.New("error code outside 300-699")
	errReasonTooLong     = errors.New("reason phrase too long")
)

// maxReasonSize caps the reason phrase per RFC 5389 Section 15.6.
const maxReasonSize = 763

// ErrorCode is the ERROR-CODE attribute (RFC 5389 Section 15.6).
type ErrorCode struct {
	// Code is the full error code, e.g. 400 or 420.
	Code int

	// Reason is the UTF-8 reason phrase.
	Reason string
}

// AttrType returns AttrErrorCode.
func (ErrorCode) AttrType() AttrType { return AttrErrorCode }

// MarshalPayload serializes the code split into its hundreds class and
// two-digit number, followed by the reason phrase.
func (e ErrorCode) MarshalPayload() ([]byte, error) {
	if e.Code < 300 || e.Code > 699 {
		return nil, errErrorCodeRange
	}
	if len(e.Reason) > maxReasonSize {
		return nil, errReasonTooLong
	}

	buf := make([]byte, 4+len(e.Reason))
	buf[2] = byte(e.Code / 100)
	buf[3] = byte(e.Code % 100)
	copy(buf[4:], e.Reason)
	return buf, nil
}

// UnmarshalPayload deserializes the wire layout into e.
func (e *ErrorCode) UnmarshalPayload(value []byte) error {
	if len(value) < 4 {
		return errErrorCodeTooShort
	}

	class := int(value[2] & 0x07)
	number := int(value[3])
	if class < 3 || class > 6 || number > 99 {
		return errErrorCodeRange
	}

	e.Code = class*100 + number
	e.Reason = string(value[4:])
	return nil
}
