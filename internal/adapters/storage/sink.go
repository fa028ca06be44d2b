// Package storage persists the encoded fights document.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Sink stores a named document and returns where it went.
type Sink interface {
	Name() string
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes documents under a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Name implements Sink.
func (s *FileSink) Name() string { return "file" }

// Write creates dir when missing and replaces any existing file at name.
func (s *FileSink) Write(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrWrite, s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return path, nil
}
