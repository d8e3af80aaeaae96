/*
Package checksum provides a fast, seedable, non-cryptographic 32-bit hash (xxHash32).

It's used to detect alteration of stored values and to fingerprint device identifiers.
The output for a given input and seed never changes across platforms or process restarts, so hashes may be persisted.

This is NOT a cryptographic hash.
Anyone able to recompute it can forge it, which is fine for the intended use of catching casual save editing.
*/
package checksum
