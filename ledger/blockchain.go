package ledger

import (
	"fmt"
	"iter"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/luca-patrignani/hashledger/digest"
)

// Blockchain is an append-only chain of blocks. Mutations are serialized by
// an exclusive lock; reads and validation share a read lock.
type Blockchain struct {
	mu     sync.RWMutex
	blocks []Block
	cfg    settings
}

// New creates an empty blockchain.
func New(opts ...Option) *Blockchain {
	return &Blockchain{
		blocks: make([]Block, 0),
		cfg:    applyOptions(opts),
	}
}

// Append seals a new block carrying payload and links it after the tail.
// On an empty chain the block gets index 0 and the previous digest
// sentinel "0". It returns a copy of the appended block.
func (bc *Blockchain) Append(payload string) (Block, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	index, prevHash := 0, digest.Genesis
	if n := len(bc.blocks); n > 0 {
		latest := bc.blocks[n-1]
		index, prevHash = latest.Index+1, latest.Hash
	}

	builder, err := open(index, payload, prevHash, bc.cfg)
	if err != nil {
		return Block{}, fmt.Errorf("invalid block: %w", err)
	}
	newBlock := builder.Seal()
	bc.blocks = append(bc.blocks, newBlock)

	bc.cfg.logger.Debug("block appended", "index", newBlock.Index, "hash", newBlock.Hash)
	bc.cfg.observer.BlockAppended(newBlock.Clone())
	return newBlock.Clone(), nil
}

// AddTransactionToTail records a transaction in the latest block and
// re-seals it. It fails with ErrEmptyLedger on an empty chain and with a
// CapacityExceededError when the tail is full; in both cases the chain is
// left untouched.
func (bc *Blockchain) AddTransactionToTail(sender, receiver string, amount decimal.Decimal) (Block, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	n := len(bc.blocks)
	if n == 0 {
		return Block{}, ErrEmptyLedger
	}

	builder := bc.blocks[n-1].reopen(bc.cfg)
	tx, err := builder.AddTransaction(sender, receiver, amount)
	if err != nil {
		return Block{}, err
	}
	sealed := builder.Seal()
	bc.blocks[n-1] = sealed

	bc.cfg.logger.Debug("transaction added", "index", sealed.Index, "transactions", len(sealed.Transactions), "hash", sealed.Hash)
	bc.cfg.observer.TransactionAdded(sealed.Clone(), tx)
	return sealed.Clone(), nil
}

// Len returns the number of blocks.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// GetLatest returns the most recently added block in the blockchain.
// Returns ErrEmptyLedger if the blockchain is empty.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, ErrEmptyLedger
	}
	return bc.blocks[len(bc.blocks)-1].Clone(), nil
}

// GetByIndex retrieves a block by its index in the chain.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("block %d: %w", index, ErrIndexOutOfRange)
	}
	return bc.blocks[index].Clone(), nil
}

// Snapshot returns a copy of every block in chain order.
func (bc *Blockchain) Snapshot() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]Block, len(bc.blocks))
	for i, b := range bc.blocks {
		out[i] = b.Clone()
	}
	return out
}

// All iterates over a snapshot of the chain taken when iteration starts.
func (bc *Blockchain) All() iter.Seq2[int, Block] {
	return func(yield func(int, Block) bool) {
		for i, b := range bc.Snapshot() {
			if !yield(i, b) {
				return
			}
		}
	}
}

// MaxTransactions returns the transaction capacity of each block.
func (bc *Blockchain) MaxTransactions() int {
	return bc.cfg.maxTx
}

// Teardown releases every block. The blockchain is empty afterwards.
func (bc *Blockchain) Teardown() {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	clear(bc.blocks)
	bc.blocks = nil
}
