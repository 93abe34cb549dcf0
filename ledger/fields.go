package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPayloadLen is the maximum payload length in bytes.
	MaxPayloadLen = 255
	// MaxPartyLen is the maximum sender or receiver length in bytes.
	MaxPartyLen = 49
	// DefaultMaxTransactions is the default transaction capacity of a block.
	DefaultMaxTransactions = 10
)

// FieldPolicy decides what happens to a text field longer than its limit.
type FieldPolicy int

const (
	// Reject fails with a FieldTooLongError.
	Reject FieldPolicy = iota
	// Truncate cuts the value at the limit.
	Truncate
)

func (p FieldPolicy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("FieldPolicy(%d)", int(p))
	}
}

// ParseFieldPolicy parses "reject" or "truncate".
func ParseFieldPolicy(s string) (FieldPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return Reject, nil
	case "truncate":
		return Truncate, nil
	}
	return Reject, fmt.Errorf("invalid field policy %q: must be reject or truncate", s)
}

// CheckField returns a FieldTooLongError if value is longer than max bytes.
func CheckField(field, value string, max int) error {
	if len(value) > max {
		return &FieldTooLongError{Field: field, Len: len(value), Max: max}
	}
	return nil
}

// TruncateField shortens value to at most max bytes without splitting a
// UTF-8 sequence.
func TruncateField(value string, max int) string {
	if len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}

func (p FieldPolicy) apply(field, value string, max int) (string, error) {
	if err := CheckField(field, value, max); err != nil {
		if p == Truncate {
			return TruncateField(value, max), nil
		}
		return "", err
	}
	return value, nil
}
