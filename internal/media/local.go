package media

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig holds configuration for local media.
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"`
}

// LocalSource opens media from the filesystem.
type LocalSource struct {
	basePath string
}

// NewLocalSource creates a LocalSource rooted at cfg.BasePath.
func NewLocalSource(cfg LocalConfig) (*LocalSource, error) {
	base := cfg.BasePath
	if base == "" {
		base = "."
	}

	absPath, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &LocalSource{basePath: absPath}, nil
}

// fullPath resolves key against the base path. Absolute keys are used as is;
// relative keys may not escape the base path.
func (s *LocalSource) fullPath(key string) (string, error) {
	if filepath.IsAbs(key) {
		return filepath.Clean(key), nil
	}

	cleanKey := filepath.Clean(key)
	if cleanKey == ".." || strings.HasPrefix(cleanKey, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s escapes base path", ErrUnsupportedRef, key)
	}
	return filepath.Join(s.basePath, cleanKey), nil
}

// Open opens a local file.
func (s *LocalSource) Open(ctx context.Context, key string) (*Attachment, error) {
	p, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedRef, key)
	}

	br := bufio.NewReader(file)
	head, _ := br.Peek(512)

	return &Attachment{
		Name:        filepath.Base(p),
		ContentType: detectContentType(p, head),
		Size:        info.Size(),
		Body:        readCloser{Reader: br, Closer: file},
	}, nil
}
