// Package loader reads scribe configuration sources: TOML or YAML files,
// .env files and SCRIBE_* environment variables.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by loaders.
var (
	// ErrNotExist indicates the configuration file does not exist.
	ErrNotExist = errors.New("config file does not exist")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ParseError describes a file that could not be decoded.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the line of the failure, when the decoder reports one.
	Line int
	// Message describes the failure.
	Message string
	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decoder decodes file content into a struct.
type Decoder interface {
	// Decode fills v from data. Fields absent from data keep their values.
	Decode(source string, data []byte, v any) error
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader decodes a config file chosen by extension.
type FileLoader struct {
	fs       FileSystem
	decoders map[string]Decoder
}

// NewFileLoader creates a loader for .toml, .yaml and .yml files.
func NewFileLoader(fsys FileSystem) *FileLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{
		fs: fsys,
		decoders: map[string]Decoder{
			".toml": TOMLDecoder{},
			".yaml": YAMLDecoder{},
			".yml":  YAMLDecoder{},
		},
	}
}

// Load decodes the file at path into v.
func (l *FileLoader) Load(path string, v any) error {
	dec, ok := l.decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return dec.Decode(path, data, v)
}
