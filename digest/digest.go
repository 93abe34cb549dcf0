package digest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

const (
	// Size is the length in characters of a hex encoded digest.
	Size = 64
	// Genesis is the previous-digest sentinel of the first block.
	Genesis = "0"
	// AmountDecimals is the number of decimals amounts are encoded with.
	AmountDecimals = 2
)

// Transfer is the hashed part of a transaction. The transaction timestamp
// is not part of the digest input.
type Transfer struct {
	Sender   string
	Receiver string
	Amount   decimal.Decimal
}

// Block holds the fields of a block that take part in its digest.
type Block struct {
	Index      int
	Timestamp  int64
	Payload    string
	PrevDigest string
	Transfers  []Transfer
}

// Canonical returns the byte representation hashed by Sum.
func Canonical(b Block) []byte {
	var buf bytes.Buffer
	n := 40 + len(b.Payload) + len(b.PrevDigest)
	for _, t := range b.Transfers {
		n += len(t.Sender) + len(t.Receiver) + 24
	}
	buf.Grow(n)

	var num [20]byte
	buf.Write(strconv.AppendInt(num[:0], int64(b.Index), 10))
	buf.Write(strconv.AppendInt(num[:0], b.Timestamp, 10))
	buf.WriteString(b.Payload)
	buf.WriteString(b.PrevDigest)
	for _, t := range b.Transfers {
		buf.WriteString(t.Sender)
		buf.WriteString(t.Receiver)
		buf.WriteString(t.Amount.StringFixed(AmountDecimals))
	}
	return buf.Bytes()
}

// Hasher computes block digests with the hash function of a kyber suite.
// The zero value uses the Ed25519 suite. A Hasher is safe for concurrent use.
type Hasher struct {
	factory kyber.HashFactory
}

var defaultSuite = suites.MustFind("Ed25519")

// Default is the Hasher used by the ledger unless configured otherwise.
var Default = Hasher{factory: defaultSuite}

// New returns a Hasher backed by the given factory. The factory must produce
// 256-bit hashes.
func New(factory kyber.HashFactory) (Hasher, error) {
	if factory == nil {
		return Hasher{}, fmt.Errorf("nil hash factory")
	}
	if size := factory.Hash().Size(); size*2 != Size {
		return Hasher{}, fmt.Errorf("hash size %d bytes, need %d", size, Size/2)
	}
	return Hasher{factory: factory}, nil
}

// FromSuite looks up a kyber suite by name and returns a Hasher using it.
func FromSuite(name string) (Hasher, error) {
	s, err := suites.Find(name)
	if err != nil {
		return Hasher{}, fmt.Errorf("unknown suite %q: %w", name, err)
	}
	return New(s)
}

// Sum returns the hex digest of b.
func (h Hasher) Sum(b Block) string {
	factory := h.factory
	if factory == nil {
		factory = defaultSuite
	}
	hh := factory.Hash()
	hh.Write(Canonical(b))
	return hex.EncodeToString(hh.Sum(nil))
}

// Sum hashes b with the Default hasher.
func Sum(b Block) string {
	return Default.Sum(b)
}

// Valid reports whether s has the shape of a digest: Size lowercase hex
// characters.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
