package ledger

import (
	"fmt"
	"testing"
)

func TestIsCapacityExceeded(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &CapacityExceededError{Index: 4, Max: 10})
	c, ok := IsCapacityExceeded(err)
	if !ok {
		t.Fatal("expected IsCapacityExceeded to unwrap wrapped error")
	}
	if c.Index != 4 || c.Max != 10 {
		t.Errorf("unexpected error %+v", c)
	}
	if c.Error() != "block 4 is full: at most 10 transactions" {
		t.Errorf("unexpected message %q", c.Error())
	}
	if _, ok := IsCapacityExceeded(ErrEmptyLedger); ok {
		t.Fatal("expected false for unrelated error")
	}
	if _, ok := IsCapacityExceeded(nil); ok {
		t.Fatal("expected false for nil")
	}
}

func TestIsFieldTooLong(t *testing.T) {
	err := fmt.Errorf("invalid block: %w", CheckField("payload", "abcdef", 3))
	f, ok := IsFieldTooLong(err)
	if !ok {
		t.Fatal("expected IsFieldTooLong to unwrap wrapped error")
	}
	expected := "payload too long: 6 bytes, max 3"
	if f.Error() != expected {
		t.Errorf("expected %q, got %q", expected, f.Error())
	}
	if CheckField("payload", "abc", 3) != nil {
		t.Fatal("value at the limit should pass")
	}
}

func TestMismatchErrorMessage(t *testing.T) {
	cases := map[MismatchKind]string{
		MismatchIndex:  "block 2 invalid: invalid index: expected a, got b",
		MismatchLink:   "block 2 invalid: invalid prev hash: expected a, got b",
		MismatchDigest: "block 2 invalid: invalid hash: expected a, got b",
		MismatchAmount: "block 2 invalid: invalid amount: expected a, got b",
	}
	for kind, expected := range cases {
		err := &MismatchError{Index: 2, Kind: kind, Expected: "a", Got: "b"}
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		if m, ok := IsMismatch(fmt.Errorf("x: %w", err)); !ok || m.Kind != kind {
			t.Errorf("IsMismatch failed for %s", kind)
		}
	}
}
