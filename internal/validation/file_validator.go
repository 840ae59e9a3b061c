package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"webagg/internal/errors"
)

// Accepted file extensions
var (
	InputExtensions  = []string{".csv", ".xlsx", ".xlsm"}
	OutputExtensions = []string{".xlsx"}
)

// FileValidator checks input files and output locations before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return errors.NewNotFoundError(fmt.Sprintf("file %s", path))
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return errors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks that path is a readable CSV or Excel file
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !hasExtension(ext, InputExtensions) {
		v.logger.Error("Unsupported input file type",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewAppValidationError(
			fmt.Sprintf("file %s is not a CSV or Excel file (extension: %s)", path, ext))
	}

	// Check it's not an Excel lock file
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file",
			slog.String("file", path))
		return errors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputFile checks the workbook path: an .xlsx name in a writable
// directory, not an existing directory.
func (v *FileValidator) ValidateOutputFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !hasExtension(ext, OutputExtensions) {
		v.logger.Error("Output file must be an Excel workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewAppValidationError(
			fmt.Sprintf("output %s must have an .xlsx extension", path))
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.NewAppValidationError(fmt.Sprintf("output %s is a directory", path))
	}

	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// ValidateDistinctInputs rejects runs that read both tables from one file
func (v *FileValidator) ValidateDistinctInputs(sessionsPath, cartAddsPath string) error {
	a, errA := filepath.Abs(sessionsPath)
	b, errB := filepath.Abs(cartAddsPath)
	if errA != nil || errB != nil {
		return nil
	}
	if a == b {
		v.logger.Warn("Both inputs point at the same file",
			slog.String("file", a))
		return errors.NewAppValidationError(
			fmt.Sprintf("session counts and adds-to-cart inputs are the same file: %s", sessionsPath))
	}
	return nil
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
