package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrInvalidLoanID indicates an identifier string that is not a well-formed
// loan id. Callers map it to a client error rather than "not found".
var ErrInvalidLoanID = errors.New("invalid loan id")

const loanIDBytes = 12

// LoanID is the opaque identifier the store assigns to a loan record:
// 12 random bytes, rendered as a 24-character lower-hex string on the wire.
type LoanID [loanIDBytes]byte

// NewLoanID returns a fresh random identifier.
func NewLoanID() LoanID {
	var id LoanID
	if _, err := rand.Read(id[:]); err != nil {
		panic(err)
	}
	return id
}

// ParseLoanID validates and decodes the wire representation of an id.
func ParseLoanID(s string) (LoanID, error) {
	if len(s) != hex.EncodedLen(loanIDBytes) {
		return LoanID{}, ErrInvalidLoanID
	}
	var id LoanID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return LoanID{}, ErrInvalidLoanID
	}
	return id, nil
}

// String renders the id in its wire form.
func (id LoanID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText lets the id serialize as a plain JSON string.
func (id LoanID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the wire form, rejecting malformed input.
func (id *LoanID) UnmarshalText(b []byte) error {
	parsed, err := ParseLoanID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
