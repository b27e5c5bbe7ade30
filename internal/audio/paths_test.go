package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath_Derived(t *testing.T) {
	tests := []struct {
		input  string
		format Format
		want   string
	}{
		{"/a/b/doc.md", MP3, "/a/b/doc_tts.mp3"},
		{"/a/b/doc.md", Linear16, "/a/b/doc_tts.wav"},
		{"/a/b/notes.txt", MP3, "/a/b/notes_tts.mp3"},
		{"doc.md", MP3, "doc_tts.mp3"},
	}

	for _, tt := range tests {
		got := OutputPath(tt.input, "", tt.format)
		if got != tt.want {
			t.Errorf("OutputPath(%s, \"\", %s) = %s, want %s", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestOutputPath_Explicit(t *testing.T) {
	got := OutputPath("/a/b/doc.md", "/elsewhere/speech.mp3", Linear16)
	if got != "/elsewhere/speech.mp3" {
		t.Errorf("OutputPath with explicit = %s, want /elsewhere/speech.mp3", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.mp3")

	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("parent directory not created: %v", err)
	}

	// Idempotent on an existing directory
	if err := EnsureParentDir(path); err != nil {
		t.Errorf("EnsureParentDir() second call error = %v", err)
	}
}
