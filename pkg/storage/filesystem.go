package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Directories that never contain lintable documentation.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// FilesystemSource reads Markdown documents from a local directory tree
type FilesystemSource struct {
	root   string
	logger *logrus.Logger
}

// NewFilesystemSource creates a content source rooted at dir. The
// directory must already exist.
func NewFilesystemSource(dir string, logger *logrus.Logger) (*FilesystemSource, error) {
	if logger == nil {
		logger = logrus.New()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", dir)
	}

	return &FilesystemSource{root: dir, logger: logger}, nil
}

// Root returns the source's root directory
func (s *FilesystemSource) Root() string {
	return s.root
}

// List walks the tree and returns the relative paths of all .md and
// .mdx files. Hidden directories, node_modules, and vendor are skipped.
func (s *FilesystemSource) List(ctx context.Context) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := d.Name()
		if d.IsDir() {
			if path == s.root {
				return nil
			}
			if strings.HasPrefix(name, ".") || skippedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsLintable(name) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content root: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"root":  s.root,
		"count": len(paths),
	}).Debug("listed lintable documents")

	return paths, nil
}

// Read returns the content of one document. The path must stay inside
// the source root.
func (s *FilesystemSource) Read(ctx context.Context, path string) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("path %s escapes content root", path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return data, nil
}

// IsLintable reports whether a file name looks like a Markdown document
func IsLintable(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
