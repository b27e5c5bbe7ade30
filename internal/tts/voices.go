// Package tts synthesizes speech through Google Cloud Text-to-Speech
// Chirp 3 HD voices.
package tts

import "strings"

// voiceTier is the provider's voice family this client targets.
const voiceTier = "Chirp3-HD"

// chirp3HDVoices lists the known Chirp 3 HD voice short names, in catalog
// order as published by the provider.
var chirp3HDVoices = []string{
	"Achernar", "Achird", "Algenib", "Algieba", "Alnilam", "Aoede", "Autonoe",
	"Callirrhoe", "Charon", "Despina", "Enceladus", "Erinome", "Fenrir", "Gacrux",
	"Iapetus", "Kore", "Laomedeia", "Leda", "Orus", "Pulcherrima", "Puck",
	"Rasalgethi", "Sadachbia", "Sadaltager", "Schedar", "Sulafat", "Umbriel",
	"Vindemiatrix", "Zephyr", "Zubenelgenubi",
}

// ListVoices returns the full voice identifiers for a language, in catalog
// order. No network call is made; the catalog is static.
func ListVoices(languageCode string) []string {
	voices := make([]string, 0, len(chirp3HDVoices))
	for _, name := range chirp3HDVoices {
		voices = append(voices, languageCode+"-"+voiceTier+"-"+name)
	}
	return voices
}

// VoiceShortName returns the short name suffix of a full voice identifier,
// or the identifier unchanged if it does not contain the tier marker.
func VoiceShortName(voice string) string {
	if i := strings.LastIndex(voice, voiceTier+"-"); i >= 0 {
		return voice[i+len(voiceTier)+1:]
	}
	return voice
}

// knownVoice reports whether name is in the catalog.
func knownVoice(name string) bool {
	for _, v := range chirp3HDVoices {
		if v == name {
			return true
		}
	}
	return false
}
