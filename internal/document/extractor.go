// Package document validates input documents and extracts speech-ready text.
package document

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var (
	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = errors.New("file does not exist")
	// ErrNotAFile is returned when the input path is not a regular file.
	ErrNotAFile = errors.New("path is not a file")
	// ErrUnsupportedType is returned for file extensions outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNotUTF8 is returned when the file content is not valid UTF-8.
	ErrNotUTF8 = errors.New("file encoding error, expected UTF-8")
	// ErrUnreadable is returned when the file cannot be read.
	ErrUnreadable = errors.New("cannot read file")
)

// Extractor produces normalized, speech-ready text from a document on disk.
// Implementations are reusable across documents and safe to keep around.
type Extractor interface {
	// Parse reads the document and returns clean text suitable for synthesis.
	Parse(path string) (string, error)
	// Name returns the extractor identifier.
	Name() string
}

// readFileUTF8 loads the whole file into memory and verifies it decodes as UTF-8.
func readFileUTF8(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, path)
	}
	return string(data), nil
}
