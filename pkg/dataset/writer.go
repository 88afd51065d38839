package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// WriteFile stores cal in dir under its canonical file name and returns the
// path written. The file is replaced atomically.
func WriteFile(dir string, cal *YearCalendar, compressed bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dataset directory: %w", err)
	}

	target := filepath.Join(dir, FileName(cal.Year, compressed))
	tmp, err := os.CreateTemp(dir, ".holidays-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if compressed {
		zw := gzip.NewWriter(bw)
		if err := Encode(zw, cal); err != nil {
			tmp.Close()
			return "", err
		}
		if err := zw.Close(); err != nil {
			tmp.Close()
			return "", fmt.Errorf("failed to compress %s: %w", target, err)
		}
	} else if err := Encode(bw, cal); err != nil {
		tmp.Close()
		return "", err
	}

	if err := bw.Flush(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to chmod %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", target, err)
	}

	return target, nil
}
