package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// tempPattern names in-progress outputs. The target's base name stays at the
// end so writers that dispatch on extension (excelize) accept the path.
const tempPattern = ".tmp-*-%s"

// Manager provides file management operations
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// AtomicWrite calls produce with a temporary path in dst's directory and
// moves the result onto dst when produce succeeds. On failure the temporary
// file is removed and dst is left untouched.
func (m *Manager) AtomicWrite(dst string, produce func(tmpPath string) error) (err error) {
	dir := filepath.Dir(dst)
	if err := m.EnsureDirectory(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(tempPattern, filepath.Base(dst)))
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err := produce(tmpPath); err != nil {
		return err
	}

	return m.MoveFile(tmpPath, dst)
}

// MoveFile moves a file from source to destination
func (m *Manager) MoveFile(src, dst string) error {
	m.logger.Debug("Moving file",
		slog.String("src", src),
		slog.String("dst", dst))

	if err := m.EnsureDirectory(filepath.Dir(dst)); err != nil {
		return err
	}

	// Try rename first (atomic if on same filesystem)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Fall back to copy and delete
	if err := m.CopyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(src)
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return dstFile.Sync()
}
