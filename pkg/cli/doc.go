// Package cli implements the contentlint command line interface.
//
// Commands:
//
//	lint      lint Markdown documents under a directory
//	rules     list available lint rules
//	validate  validate a lint configuration file
//	version   print the build version
//
// The lint command walks a documentation tree for .md and .mdx files,
// lints them concurrently, and prints results as text, JSON, or GitHub
// Actions annotations.
package cli
