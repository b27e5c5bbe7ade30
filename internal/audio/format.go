// Package audio defines output audio formats and file path helpers.
package audio

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a supported output audio encoding. The value is the
// provider's encoding name.
type Format string

const (
	// MP3 is compressed output (.mp3).
	MP3 Format = "MP3"
	// Linear16 is uncompressed 16-bit PCM output (.wav).
	Linear16 Format = "LINEAR16"
)

// ErrUnknownFormat is returned for encodings outside the supported set.
var ErrUnknownFormat = errors.New("unknown audio format")

// ParseFormat converts a format name to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "MP3":
		return MP3, nil
	case "LINEAR16":
		return Linear16, nil
	default:
		return "", fmt.Errorf("%w: %s (use MP3 or LINEAR16)", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == Linear16 {
		return "wav"
	}
	return "mp3"
}

// MediaType returns the MIME type for the format.
func (f Format) MediaType() string {
	if f == Linear16 {
		return "audio/wav"
	}
	return "audio/mpeg"
}

// String returns the provider's encoding name.
func (f Format) String() string {
	return string(f)
}
