package audio

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputPath resolves where synthesized audio should be written. An explicit
// path is used verbatim; otherwise the input's directory and filename stem
// with a _tts suffix and the format's extension.
func OutputPath(inputPath, explicit string, format Format) string {
	if explicit != "" {
		return explicit
	}

	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, stem+"_tts."+format.Extension())
}

// EnsureParentDir creates the parent directory of path if it is missing.
// Idempotent and recursive.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
