package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/hashledger/digest"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Unix(1700000000, 0) }
}

// TestBuilderSealMatchesDigest verifies that a sealed block carries the
// digest of the canonical encoding of its fields.
func TestBuilderSealMatchesDigest(t *testing.T) {
	bb, err := Open(0, "Genesis Block", digest.Genesis, WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := bb.Seal()
	expected := "595c9ce9e57268b9de43e26fbea7ff37ac48d7963711e05106d52515e55f5d5a"
	if b.Hash != expected {
		t.Fatalf("expected %s, got %s", expected, b.Hash)
	}
	if b.ComputeHash(digest.Default) != b.Hash {
		t.Fatal("recomputed hash differs from sealed hash")
	}
}

// TestBuilderResealChangesDigest verifies that sealing again after a new
// transaction yields a different digest and leaves the earlier block alone.
func TestBuilderResealChangesDigest(t *testing.T) {
	bb, err := Open(3, "payload", strings.Repeat("a", digest.Size), WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := bb.Seal()
	if _, err := bb.AddTransaction("alice", "bob", decimal.RequireFromString("10.50")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := bb.Seal()
	if first.Hash == second.Hash {
		t.Fatal("digest should change after adding a transaction")
	}
	if len(first.Transactions) != 0 {
		t.Fatal("an earlier sealed block must not see later transactions")
	}
	if bb.Len() != 1 {
		t.Fatalf("expected 1 transaction, got %d", bb.Len())
	}
}

// TestBuilderCapacity verifies that a full builder is left unchanged.
func TestBuilderCapacity(t *testing.T) {
	bb, _ := Open(0, "p", digest.Genesis, WithMaxTransactions(1), WithClock(fixedClock()))
	if _, err := bb.AddTransaction("a", "b", decimal.NewFromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := bb.Seal()
	if _, err := bb.AddTransaction("a", "b", decimal.NewFromInt(2)); err == nil {
		t.Fatal("expected capacity error, got nil")
	}
	if bb.Seal().Hash != before.Hash {
		t.Fatal("failed addition changed the digest")
	}
}

// TestOpenRejectsLongPayload verifies the default field policy.
func TestOpenRejectsLongPayload(t *testing.T) {
	_, err := Open(0, strings.Repeat("x", MaxPayloadLen+1), digest.Genesis)
	if _, ok := IsFieldTooLong(err); !ok {
		t.Fatalf("expected FieldTooLongError, got %v", err)
	}
}

// TestAmountFormattingInDigest verifies that amounts equal to two decimals
// hash the same regardless of their textual form.
func TestAmountFormattingInDigest(t *testing.T) {
	seal := func(amount string) string {
		bb, _ := Open(1, "p", digest.Genesis, WithClock(fixedClock()))
		bb.AddTransaction("alice", "bob", decimal.RequireFromString(amount))
		return bb.Seal().Hash
	}
	if seal("10.5") != seal("10.50") {
		t.Fatal("10.5 and 10.50 should hash identically")
	}
	if seal("10.5") == seal("10.51") {
		t.Fatal("10.5 and 10.51 should hash differently")
	}
}

// TestAmountRoundedOnAdmission verifies that the stored amount is exactly
// the value covered by the digest.
func TestAmountRoundedOnAdmission(t *testing.T) {
	bb, _ := Open(1, "p", digest.Genesis, WithClock(fixedClock()))
	tx, err := bb.AddTransaction("alice", "bob", decimal.RequireFromString("10.504"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("expected 10.50, got %s", tx.Amount)
	}
	b := bb.Seal()
	stored := b.Transactions[0].Amount
	hashed := stored.StringFixed(digest.AmountDecimals)
	if !stored.Equal(decimal.RequireFromString(hashed)) {
		t.Fatalf("expected stored amount %s to equal hashed %s", stored, hashed)
	}
	if b.Hash != b.ComputeHash(digest.Default) {
		t.Fatal("expected the sealed digest to match a recompute")
	}
}

func TestTruncateField(t *testing.T) {
	cases := []struct {
		in       string
		max      int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"},
		{"日本語", 4, "日"},
		{"", 0, ""},
	}
	for _, c := range cases {
		if got := TruncateField(c.in, c.max); got != c.expected {
			t.Fatalf("TruncateField(%q, %d): expected %q, got %q", c.in, c.max, c.expected, got)
		}
	}
}

func TestParseFieldPolicy(t *testing.T) {
	for in, expected := range map[string]FieldPolicy{"reject": Reject, "Truncate": Truncate, " reject ": Reject} {
		got, err := ParseFieldPolicy(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != expected {
			t.Fatalf("expected %v for %q, got %v", expected, in, got)
		}
	}
	if _, err := ParseFieldPolicy("wrap"); err == nil {
		t.Fatal("expected error for unknown policy, got nil")
	}
	if Truncate.String() != "truncate" {
		t.Fatalf("unexpected String() %q", Truncate.String())
	}
}
