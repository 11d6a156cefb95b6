package stun

import "crypto/rand"

// TransactionID is the 96-bit value correlating requests and responses.
// Correlation itself is the job of the surrounding agent; the codec only
// carries the value.
type TransactionID [TransactionIDSize]byte

// NewTransactionID returns a cryptographically random transaction ID.
func NewTransactionID() (TransactionID, error) {
	var tid TransactionID
	_, err := rand.Read(tid[:])
	return tid, err
}
