// Package ledger implements a tamper-evident, append-only chain of blocks
// that may carry value-transfer records.
//
// # Core Components
//
// Blockchain: An ordered arena of sealed blocks with a cached tail. It owns
// every block; readers only ever receive copies.
//
// Builder: An open block that accumulates transactions. Seal computes the
// digest once and yields an immutable Block.
//
// Block: A sealed record holding index, creation time, payload,
// transactions, the digest of its predecessor and its own digest.
//
// # Tail Re-sealing
//
// Only the tail of the chain accepts new transactions. Adding one reopens
// the tail, appends the transaction and seals it again, replacing the tail
// digest. No block links to the tail yet, so this never breaks the chain.
// Once a new block is appended the previous tail is final.
//
// # Tamper Detection
//
// Verify walks the chain from the second block and, for every block,
// checks index continuity, that the stored previous digest matches both the
// recomputed and the stored digest of the predecessor and that the stored
// digest matches the recomputed digest of the block itself. Amounts with more
// decimals than the digest covers are also a mismatch. It stops at the first
// mismatch. A chain with zero or one block is always valid.
//
// # Bounded Fields
//
// Payloads and party labels have maximum lengths. By default an oversized
// value is rejected with a FieldTooLongError; WithFieldPolicy(Truncate)
// cuts it at the limit instead.
package ledger
