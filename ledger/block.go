package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/hashledger/digest"
)

// Transaction is a labelled transfer recorded in a block. Sender and
// receiver are plain labels, not authenticated identities.
type Transaction struct {
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp int64           `json:"timestamp"`
}

// Block is a sealed entry of the chain.
type Block struct {
	Index        int           `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Payload      string        `json:"payload"`
	Transactions []Transaction `json:"transactions"`
	PrevHash     string        `json:"prev_hash"`
	Hash         string        `json:"hash"`
}

func (b Block) digestInput() digest.Block {
	in := digest.Block{
		Index:      b.Index,
		Timestamp:  b.Timestamp,
		Payload:    b.Payload,
		PrevDigest: b.PrevHash,
	}
	if len(b.Transactions) > 0 {
		in.Transfers = make([]digest.Transfer, len(b.Transactions))
		for i, tx := range b.Transactions {
			in.Transfers[i] = digest.Transfer{Sender: tx.Sender, Receiver: tx.Receiver, Amount: tx.Amount}
		}
	}
	return in
}

// ComputeHash re-derives the digest of b from its fields with h. It never
// modifies b.
func (b Block) ComputeHash(h digest.Hasher) string {
	return h.Sum(b.digestInput())
}

// Clone returns a copy of b that shares no memory with it.
func (b Block) Clone() Block {
	b.Transactions = slices.Clone(b.Transactions)
	return b
}

// Builder is an open block. It accumulates transactions until Seal is called.
type Builder struct {
	block Block
	cfg   settings
}

// Open starts a block with the given index, payload and predecessor digest.
// The creation time is taken from the configured clock.
func Open(index int, payload, prevHash string, opts ...Option) (*Builder, error) {
	return open(index, payload, prevHash, applyOptions(opts))
}

func open(index int, payload, prevHash string, cfg settings) (*Builder, error) {
	payload, err := cfg.policy.apply("payload", payload, MaxPayloadLen)
	if err != nil {
		return nil, err
	}
	return &Builder{
		block: Block{
			Index:     index,
			Timestamp: cfg.clock().Unix(),
			Payload:   payload,
			PrevHash:  prevHash,
		},
		cfg: cfg,
	}, nil
}

// reopen returns a Builder holding a copy of b, with the timestamp kept.
// Only the ledger tail may be reopened, so it stays unexported.
func (b Block) reopen(cfg settings) *Builder {
	return &Builder{block: b.Clone(), cfg: cfg}
}

// Len returns the number of transactions added so far.
func (bb *Builder) Len() int {
	return len(bb.block.Transactions)
}

// AddTransaction appends a transaction. The amount is rounded to
// digest.AmountDecimals so the stored value is exactly the hashed one. It
// fails with a CapacityExceededError when the block is full and leaves the
// builder unchanged on any error.
func (bb *Builder) AddTransaction(sender, receiver string, amount decimal.Decimal) (Transaction, error) {
	if len(bb.block.Transactions) >= bb.cfg.maxTx {
		return Transaction{}, &CapacityExceededError{Index: bb.block.Index, Max: bb.cfg.maxTx}
	}
	sender, err := bb.cfg.policy.apply("sender", sender, MaxPartyLen)
	if err != nil {
		return Transaction{}, err
	}
	receiver, err = bb.cfg.policy.apply("receiver", receiver, MaxPartyLen)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount.Round(digest.AmountDecimals),
		Timestamp: bb.cfg.clock().Unix(),
	}
	bb.block.Transactions = append(bb.block.Transactions, tx)
	return tx, nil
}

// Seal computes the digest and returns the finished block. The builder can
// keep accepting transactions; a later Seal yields a block with a new digest.
func (bb *Builder) Seal() Block {
	b := bb.block.Clone()
	b.Hash = b.ComputeHash(bb.cfg.hasher)
	return b
}
