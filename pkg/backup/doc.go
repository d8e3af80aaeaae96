/*
Package backup exports secure store records into a passphrase protected archive, and imports them back.

Records are exported in their stored form, so values are never revealed while backing up.
An archive restored on another device is still subject to that device's lock policy.

# How it works:

A key is derived from the passphrase with scrypt, using a random salt. The KDF parameters and salt are written in the
archive header, so only the passphrase is needed to import.
The records are encoded as JSON and sealed with AES-GCM.

	[magic, 4 bytes][archive version][KDF parameters][salt][nonce][sealed records]

# General guidelines:
  - The default KeyGenerator uses a long delay iteration count. Use SetShortDelayIterations for interactive tools.
  - Don't customize the CPU cost, iteration count, or relative block size unless you know what you're doing.
*/
package backup
