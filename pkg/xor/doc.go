/*
Package xor provides the light-weight screening used to obscure save data and in-memory values.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category.
It's meant to defeat casual inspection and editing of saves, not a determined attacker with the binary in hand.

# How it works:

An XOR key (with optional offset) is applied byte by byte to the data.
Once a key byte is used, the screen will progress to the next byte in the key.
When the last byte is used, the first will be used again, operating like a ring buffer.
Applying the same key a second time restores the original bytes, so a single operation serves both directions.

Screen is the one-shot form used for short values.
Reader and Writer apply the same screen to a stream, which is handy for whole files.

# Important note:

The same key and offset parameters must be provided to accurately reverse the process.
Failing to do so will result in garbled data, which the callers of this package detect with a checksum over the plain bytes.
*/
package xor
