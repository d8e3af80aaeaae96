/*
Package obscured keeps strings in memory in a screened form, so the plain value can't be found by scanning process memory.

A String is screened with a package wide default key, or a per-instance random key after RandomizeKey.
The plain value is only produced on demand with Reveal.

A Detector can be started to catch edits to the screened bytes. While it runs, assignments also keep a plain shadow of the
value, and each Reveal compares against it.
*/
package obscured
