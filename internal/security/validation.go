// Package security provides input validation for files the host reads and
// binaries it executes.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSizeLimit is returned once a LimitedReader has delivered its limit.
var ErrSizeLimit = errors.New("size limit exceeded")

// ValidatePluginPath checks that pluginPath names an executable regular file
// and returns its absolute, cleaned form.
func ValidatePluginPath(pluginPath string) (string, error) {
	if pluginPath == "" {
		return "", errors.New("empty plugin path")
	}

	abs, err := filepath.Abs(filepath.Clean(pluginPath))
	if err != nil {
		return "", fmt.Errorf("invalid plugin path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid plugin path: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("plugin %s is not a regular file", abs)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("plugin %s is not executable", abs)
	}
	return abs, nil
}

// LimitedReader reads from R until Remaining bytes have been read, then fails
// with ErrSizeLimit instead of silently truncating.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Only data past the limit is an error; EOF, other errors and empty
		// reads pass through.
		var extra [1]byte
		n, err := l.R.Read(extra[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader returns a reader that fails after maxBytes.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
