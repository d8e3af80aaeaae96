/*
Package securestore provides an obfuscated, tamper-evident key-value store for game save data.

Values are written into a flat string mapping (see package prefs), and never appear there in plain form.
This is NOT encryption: the cipher is an XOR screen, and the store only promises to *detect* edited or foreign saves.

# How it works:

Each value is encoded to fixed-width little-endian bytes, screened with a key made of the value's name plus the store secret,
and framed with some trailing metadata before being base64 encoded.

	[screened bytes][device hash, 4 bytes, optional][type tag][format version][lock level][integrity hash, 4 bytes]

The integrity hash is an xxHash32 of the plain bytes, so any edit to the screened bytes is caught when the value is read back.
The device hash is present whenever the store was locked to a device at write time, and ties the record to that device.
Metadata is located by negative offsets from the end of the record, so the record length determines its layout.

The name the value is stored under is screened with the secret as well.

# Reading values:

Get never fails.
When a record is missing, malformed, altered, or rejected by the device lock policy, the caller's default is returned.
Alteration and possible foreign saves are reported through callbacks that fire at most once until ResetDetection is called.

A Strict lock silently returns the default for records that aren't locked to any device.
Callers can't tell this apart from a missing key, and that is intended.

# Migration:

Plain values found under the unscreened name, and records in the older colon delimited format, are read transparently
and rewritten in the current format.
*/
package securestore
