// Package document models the content files contentlint operates on.
//
// # Overview
//
// A document is an optional YAML front-matter block followed by body lines.
// Parse splits the two and decodes the front matter; body lines keep their
// original file positions so rule diagnostics point at real lines. Hosts
// that strip front matter themselves can build a document from bare body
// lines with New.
//
// # Front Matter
//
// Front matter is delimited by "---" fences starting on the first line.
// Decoding is lenient: a document with malformed front matter is still
// returned (with the decode error) so its body can be linted.
package document
