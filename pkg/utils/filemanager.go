// =============================================================================
// Clinical Catalog Builder - File Manager Utility
// =============================================================================
//
// This module provides the file operations shared by the converters:
//   - Destination directory creation
//   - Output writing through a temporary file
//   - Small file inspection helpers
//
// WRITE STRATEGY:
//   Output is written to "<dir>/.<name>.<uuid>.tmp" next to the destination,
//   then renamed over it. A failed write removes the temporary file and
//   leaves any previous destination untouched.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory tree that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteFile creates the parent directories of path and writes its content
// with write. The destination is replaced only when write succeeds.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmpPath := TempPathFor(path)
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(file)
	if err := write(writer); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// TempPathFor returns a unique temporary path in the same directory as path.
func TempPathFor(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.New().String()))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists. A path that cannot be stat'ed
// (permission denied, a file used as a directory) does not exist.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
