// Package sanitize repairs the GENESET XML dump so a standard XML decoder can
// read it.
//
// The dump is a single large document whose GENESET attribute values were
// written without escaping. Repair happens in three steps: invalid UTF-8 is
// replaced with U+FFFD, characters outside the XML 1.0 Char production are
// dropped, and a small state machine re-escapes &, <, > and stray quotes
// inside GENESET attribute values. Everything outside GENESET start tags is
// copied through untouched.
//
// Sanitizing never fails because of content. Whatever still cannot be parsed
// afterwards is reported by the XML reader.
package sanitize
