// Package digest derives the content hash that binds every block of the
// ledger to its predecessor.
//
// # Canonical Encoding
//
// A block is hashed over the concatenation, without separators, of:
//   - the index as decimal text
//   - the creation time as decimal Unix seconds
//   - the raw payload bytes
//   - the raw previous-block digest
//   - for every transfer, in insertion order: sender, receiver and the
//     amount formatted with exactly two decimals
//
// The encoding is built in a growable buffer, so no field combination can
// be truncated before hashing.
//
// # Hash Provider
//
// The underlying 256-bit hash comes from a kyber suite. The default suite
// is Ed25519, whose hash function is SHA-256. The output is always the
// lowercase hex encoding of the 32 digest bytes.
package digest
