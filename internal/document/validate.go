package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions is the set of input file types the pipeline accepts,
// keyed by lowercase extension.
var supportedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// ValidateInput checks that path exists, is a regular file, and carries a
// supported extension. Extension matching is case-insensitive.
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return fmt.Errorf("%w: %s (supported: .md, .txt)", ErrUnsupportedType, ext)
	}

	return nil
}
