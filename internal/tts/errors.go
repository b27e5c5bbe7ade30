package tts

import (
	"errors"
	"fmt"
)

var (
	// ErrTextTooLong is returned when text exceeds the provider's byte limit.
	ErrTextTooLong = errors.New("text too long")
	// ErrInvalidVoice is returned when a voice name fails validation.
	ErrInvalidVoice = errors.New("invalid voice name")
	// ErrAuthentication is returned when provider credentials cannot be acquired.
	ErrAuthentication = errors.New("text-to-speech authentication failed")
	// ErrSynthesisFailed is returned when the provider call fails after retries.
	ErrSynthesisFailed = errors.New("speech synthesis failed")
)

// MaxTextBytes is the provider's hard request limit for Chirp 3 HD input.
// It is not configurable.
const MaxTextBytes = 5000

// ValidateTextLength rejects text whose UTF-8 encoding exceeds MaxTextBytes.
// The error reports actual versus allowed byte counts so callers can split
// oversized input.
func ValidateTextLength(text string) error {
	if n := len(text); n > MaxTextBytes {
		return fmt.Errorf("%w: %d bytes (max %d bytes); consider splitting the document into smaller sections",
			ErrTextTooLong, n, MaxTextBytes)
	}
	return nil
}
