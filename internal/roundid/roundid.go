// Package roundid generates compact, time ordered round identifiers.
//
// An ID is a UUIDv7 encoded as 26 characters of lowercase Crockford base32,
// so IDs sort by creation time in logs and hand histories.
package roundid

import (
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Length is the number of characters in an ID
const Length = 26

var encoding = base32.NewEncoding("0123456789abcdefghjkmnpqrstvwxyz").WithPadding(base32.NoPadding)

// New returns a fresh ID, falling back to a random UUIDv4 if the clock
// sequence cannot be read
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Encode(id)
}

// NewFromReader returns an ID whose random bits come from r
func NewFromReader(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("roundid: %w", err)
	}
	return Encode(id), nil
}

// Encode encodes a UUID as an ID
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Parse decodes an ID back into its UUID
func Parse(s string) (uuid.UUID, error) {
	if len(s) != Length {
		return uuid.Nil, fmt.Errorf("roundid: must be exactly %d characters, got %d", Length, len(s))
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("roundid: %w", err)
	}
	return uuid.FromBytes(b)
}

// Validate checks that s is a well formed ID
func Validate(s string) error {
	id, err := Parse(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("roundid: expected version 7, got %d", id.Version())
	}
	return nil
}
