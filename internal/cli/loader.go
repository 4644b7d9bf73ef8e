package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ast"
	"github.com/roach88/headergen/internal/config"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No dump files found
	ErrCodeLoadFailed   = "E004" // Dump could not be decoded
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeConfigFailed = "E006" // Translation config could not be loaded
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeStoreFailed  = "E008" // Snapshot store error
	ErrCodeMismatch     = "E009" // Generated IR differs from the snapshot
)

// dumpExts are the file extensions LoadDumps picks up from directories.
var dumpExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// LoadError represents an error that occurred while loading inputs.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDumps loads translation units from dump files and directories.
// Directories are searched recursively for .yaml, .yml and .json files.
// Units are returned sorted by library then file, and the first failure
// stops loading.
func LoadDumps(paths []string) ([]*ast.Unit, error) {
	files, err := FindDumpFiles(paths)
	if err != nil {
		return nil, err
	}

	units := make([]*ast.Unit, 0, len(files))
	for _, path := range files {
		u, err := ast.LoadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error(), Path: path}
		}
		units = append(units, u)
	}

	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Library != units[j].Library {
			return units[i].Library < units[j].Library
		}
		return units[i].File < units[j].File
	})
	return units, nil
}

// FindDumpFiles expands the given paths into dump files. Explicit file
// paths are kept whatever their extension so the loader can report them.
func FindDumpFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "dump not found", Path: p}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: p}
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && dumpExts[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: err.Error(), Path: p}
		}
	}

	if len(files) == 0 {
		return nil, &LoadError{
			Code:    ErrCodeNoFiles,
			Message: fmt.Sprintf("no dump files found in %s", strings.Join(paths, ", ")),
		}
	}
	return files, nil
}

// outputLoadError reports a dump or config load failure. Load failures
// are command errors (exit code 2).
func outputLoadError(f *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()

	var loadErr *LoadError
	var cfgErr *config.LoadError
	switch {
	case errors.As(err, &loadErr):
		code = loadErr.Code
	case errors.As(err, &cfgErr):
		code = ErrCodeConfigFailed
		message = cfgErr.Error()
	}

	_ = f.Error(code, message, nil)
	return WrapExitError(ExitCommandError, code, err)
}
