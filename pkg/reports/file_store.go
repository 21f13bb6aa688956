package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const currentLogName = "reports.ndjson"

// FileStore implements Store as an append-only NDJSON file with size-based
// rotation. Rotated files are archival: Get, Search, and Purge operate on
// the current file only.
type FileStore struct {
	dir     string
	maxSize int64

	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// NewFileStore creates a file-backed report store under dir
func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	if maxSize <= 0 {
		maxSize = 64 << 20
	}

	store := &FileStore{
		dir:     dir,
		maxSize: maxSize,
	}

	if err := store.openCurrent(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *FileStore) openCurrent() error {
	path := filepath.Join(s.dir, currentLogName)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open reports file: %w", err)
	}

	s.file = file
	s.encoder = json.NewEncoder(file)
	return nil
}

// rotate renames the current file with a timestamp suffix and reopens
func (s *FileStore) rotate() error {
	current := filepath.Join(s.dir, currentLogName)

	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	stamp := time.Now().UTC().Format("2006-01-02-15-04-05")
	rotated := filepath.Join(s.dir, fmt.Sprintf("reports-%s.ndjson", stamp))
	if err := os.Rename(current, rotated); err != nil {
		return fmt.Errorf("failed to rotate reports file: %w", err)
	}

	return s.openCurrent()
}

// Save appends a report, rotating first when the file is full
func (s *FileStore) Save(ctx context.Context, report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if info, err := s.file.Stat(); err == nil && info.Size() >= s.maxSize {
			if err := s.rotate(); err != nil {
				return err
			}
		}
	}

	if err := s.encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Get retrieves a report by ID
func (s *FileStore) Get(ctx context.Context, id string) (*Report, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for _, report := range all {
		if report.ID == id {
			return report, nil
		}
	}

	return nil, ErrNotFound
}

// Search returns reports matching the query, newest first
func (s *FileStore) Search(ctx context.Context, q ReportQuery) ([]*Report, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	matched := make([]*Report, 0)
	for _, report := range all {
		if q.Path != "" && report.Path != q.Path {
			continue
		}
		if q.Since != nil && report.CreatedAt.Before(*q.Since) {
			continue
		}
		if q.Until != nil && report.CreatedAt.After(*q.Until) {
			continue
		}
		matched = append(matched, report)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []*Report{}, nil
		}
		matched = matched[q.Offset:]
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return matched, nil
}

// Purge rewrites the current file keeping only reports at or after the cutoff
func (s *FileStore) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	all, err := s.readAll()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	path := filepath.Join(s.dir, currentLogName)
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to rewrite reports file: %w", err)
	}

	encoder := json.NewEncoder(file)
	var purged int64
	for _, report := range all {
		if report.CreatedAt.Before(olderThan) {
			purged++
			continue
		}
		if err := encoder.Encode(report); err != nil {
			file.Close()
			return purged, fmt.Errorf("failed to rewrite report: %w", err)
		}
	}

	if err := file.Close(); err != nil {
		return purged, err
	}

	return purged, s.openCurrent()
}

// Close closes the current file
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}

	return nil
}

func (s *FileStore) readAll() ([]*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, currentLogName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open reports file: %w", err)
	}
	defer file.Close()

	var all []*Report
	decoder := json.NewDecoder(file)
	for {
		var report Report
		if err := decoder.Decode(&report); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		all = append(all, &report)
	}

	return all, nil
}
