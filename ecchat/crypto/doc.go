// Package crypto provides the X25519 key agreement used by chat sessions.
//
// The scalar multiplier is a from-scratch Montgomery ladder over the field
// package, not a wrapper: no general big-integer arithmetic, a fixed 255-step
// loop and branchless operand swaps. Private keys hold raw entropy and are
// clamped on every use, so a scalar is never clamped twice by the caller.
package crypto
