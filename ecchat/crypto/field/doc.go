// Package field implements arithmetic in GF(2^255-19) for Curve25519.
//
// Elements are sixteen signed radix-2^16 limbs. Add and Sub never carry, Mul
// carries twice before returning, and Bytes carries three times before the
// final reduction, so callers may chain a few additions between products
// without normalizing by hand.
//
// Every operation is constant-time with respect to the limb values. Swap is the
// only way to make a data-dependent choice and it never branches on its flag.
package field
