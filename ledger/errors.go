package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLedger is returned by operations that need at least one block.
	ErrEmptyLedger = errors.New("ledger is empty")
	// ErrIndexOutOfRange is returned when a block index does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// CapacityExceededError is returned when a block already holds the maximum
// number of transactions.
type CapacityExceededError struct {
	Index int
	Max   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("block %d is full: at most %d transactions", e.Index, e.Max)
}

// FieldTooLongError is returned when a text field exceeds its limit under
// the Reject policy.
type FieldTooLongError struct {
	Field string
	Len   int
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s too long: %d bytes, max %d", e.Field, e.Len, e.Max)
}

// MismatchKind names the check that failed during validation.
type MismatchKind string

const (
	MismatchIndex  MismatchKind = "index"
	MismatchLink   MismatchKind = "link"
	MismatchDigest MismatchKind = "digest"
	MismatchAmount MismatchKind = "amount"
)

// MismatchError reports the first block at which validation failed.
type MismatchError struct {
	Index    int
	Kind     MismatchKind
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	switch e.Kind {
	case MismatchIndex:
		return fmt.Sprintf("block %d invalid: invalid index: expected %s, got %s", e.Index, e.Expected, e.Got)
	case MismatchAmount:
		return fmt.Sprintf("block %d invalid: invalid amount: expected %s, got %s", e.Index, e.Expected, e.Got)
	case MismatchLink:
		return fmt.Sprintf("block %d invalid: invalid prev hash: expected %s, got %s", e.Index, e.Expected, e.Got)
	default:
		return fmt.Sprintf("block %d invalid: invalid hash: expected %s, got %s", e.Index, e.Expected, e.Got)
	}
}

// IsCapacityExceeded checks whether err is a CapacityExceededError and returns it.
func IsCapacityExceeded(err error) (*CapacityExceededError, bool) {
	var e *CapacityExceededError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsFieldTooLong checks whether err is a FieldTooLongError and returns it.
func IsFieldTooLong(err error) (*FieldTooLongError, bool) {
	var e *FieldTooLongError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsMismatch checks whether err is a MismatchError and returns it.
func IsMismatch(err error) (*MismatchError, bool) {
	var e *MismatchError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
