package ledger

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/luca-patrignani/hashledger/digest"
)

// Verify validates the integrity of the entire blockchain. For every block
// after the first it checks index continuity, that the stored previous
// digest matches the recomputed digest of the predecessor and that the
// stored digest matches the block's own recomputed digest. It returns a
// MismatchError for the first failing block.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	err := verifyRange(bc.blocks, bc.cfg.hasher, 1, len(bc.blocks))
	n := len(bc.blocks)
	bc.mu.RUnlock()

	bc.report(n, err)
	return err
}

// Validate reports whether Verify succeeds.
func (bc *Blockchain) Validate() bool {
	return bc.Verify() == nil
}

// VerifyConcurrent splits the chain into segments checked by up to workers
// goroutines over a snapshot. It returns the same error Verify would, i.e.
// the mismatch with the lowest index. workers below 2 verifies sequentially.
func (bc *Blockchain) VerifyConcurrent(ctx context.Context, workers int) error {
	bc.mu.RLock()
	blocks := make([]Block, len(bc.blocks))
	copy(blocks, bc.blocks)
	bc.mu.RUnlock()

	n := len(blocks)
	if workers < 2 || n < 3 {
		err := verifyRange(blocks, bc.cfg.hasher, 1, n)
		bc.report(n, err)
		return err
	}

	pairs := n - 1
	segment := (pairs + workers - 1) / workers
	segments := (pairs + segment - 1) / segment
	found := make([]error, segments)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for s := 0; s < segments; s++ {
		lo := 1 + s*segment
		hi := min(lo+segment, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := checkPair(blocks[i-1], blocks[i], i, bc.cfg.hasher); err != nil {
					found[s] = err
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		bc.report(n, err)
		return err
	}

	for _, err := range found {
		if err != nil {
			bc.report(n, err)
			return err
		}
	}
	bc.report(n, nil)
	return nil
}

func (bc *Blockchain) report(n int, err error) {
	if err != nil {
		if m, ok := IsMismatch(err); ok {
			bc.cfg.logger.Warn("chain validation failed", "index", m.Index, "check", string(m.Kind))
		}
	}
	bc.cfg.observer.Validated(n, err)
}

func verifyRange(blocks []Block, h digest.Hasher, lo, hi int) error {
	for i := lo; i < hi; i++ {
		if err := checkPair(blocks[i-1], blocks[i], i, h); err != nil {
			return err
		}
	}
	return nil
}

// checkPair verifies the block at position i against its predecessor. The
// link is checked against both the recomputed and the stored digest of the
// predecessor, so an overwritten genesis digest is caught at position 1.
func checkPair(previous, current Block, i int, h digest.Hasher) error {
	if i == 1 {
		if err := checkAmounts(previous, 0); err != nil {
			return err
		}
	}

	if current.Index != previous.Index+1 {
		return &MismatchError{
			Index:    i,
			Kind:     MismatchIndex,
			Expected: strconv.Itoa(previous.Index + 1),
			Got:      strconv.Itoa(current.Index),
		}
	}

	if expected := previous.ComputeHash(h); current.PrevHash != expected {
		return &MismatchError{Index: i, Kind: MismatchLink, Expected: expected, Got: current.PrevHash}
	}

	if current.PrevHash != previous.Hash {
		return &MismatchError{Index: i, Kind: MismatchLink, Expected: previous.Hash, Got: current.PrevHash}
	}

	if expected := current.ComputeHash(h); current.Hash != expected {
		return &MismatchError{Index: i, Kind: MismatchDigest, Expected: expected, Got: current.Hash}
	}
	return checkAmounts(current, i)
}

// checkAmounts rejects amounts with more decimals than the digest covers;
// such a value cannot have been admitted and would hash like its rounding.
func checkAmounts(b Block, i int) error {
	for _, tx := range b.Transactions {
		if rounded := tx.Amount.Round(digest.AmountDecimals); !tx.Amount.Equal(rounded) {
			return &MismatchError{Index: i, Kind: MismatchAmount, Expected: rounded.String(), Got: tx.Amount.String()}
		}
	}
	return nil
}
