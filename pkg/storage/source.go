package storage

import "context"

// ContentSource enumerates and reads lintable documents
type ContentSource interface {
	// List returns the paths of all lintable documents, relative to the
	// source root, in lexical order.
	List(ctx context.Context) ([]string, error)

	// Read returns the raw content of one document by its relative path.
	Read(ctx context.Context, path string) ([]byte, error)
}
