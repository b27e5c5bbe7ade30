package tts

import (
	"fmt"
	"strings"

	"github.com/kiwitts/kiwi-go/internal/audio"
)

// DefaultSampleRate is the output sample rate used when none is specified.
const DefaultSampleRate = 24000

// Config describes a single synthesis configuration. It is fixed for the
// lifetime of a Client.
type Config struct {
	VoiceName    string
	LanguageCode string
	Encoding     audio.Format
	SampleRate   int
}

// withDefaults fills in unset fields.
func (c Config) withDefaults() Config {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Encoding == "" {
		c.Encoding = audio.MP3
	}
	return c
}

// ValidateVoice checks that the voice name follows the
// <language>-Chirp3-HD-<Name> format for the configured language and that
// the name suffix is in the known-voice catalog. A bad voice is never
// silently replaced with a default.
func (c Config) ValidateVoice() error {
	prefix := c.LanguageCode + "-" + voiceTier + "-"
	if !strings.HasPrefix(c.VoiceName, prefix) {
		return fmt.Errorf("%w: %q, expected format %s<VoiceName>", ErrInvalidVoice, c.VoiceName, prefix)
	}

	name := strings.TrimPrefix(c.VoiceName, prefix)
	if !knownVoice(name) {
		return fmt.Errorf("%w: unknown %s voice %q (available: %s)",
			ErrInvalidVoice, voiceTier, name, strings.Join(chirp3HDVoices, ", "))
	}

	return nil
}
