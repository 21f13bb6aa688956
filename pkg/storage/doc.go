// Package storage provides content sources and archive backends.
//
// A ContentSource enumerates and reads the Markdown documents a lint run
// operates on. FilesystemSource is the default, walking a documentation
// tree for .md and .mdx files. S3Archive stores exported report bundles
// in object storage and works against AWS S3 or any S3-compatible
// endpoint such as MinIO.
package storage
