// Package datum owns the fixed 64-byte datum header contract.
//
// Ownership boundary:
// - byte layout constants and the flag model
// - recognition (HasHeader) and validation (HasValidHeader, Validate)
// - header decode and encode primitives
//
// The payload that follows the header is never inspected here.
package datum
