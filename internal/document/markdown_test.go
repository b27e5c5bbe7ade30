package document

import (
	"strings"
	"testing"
)

func parseMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := writeTemp(t, "doc.md", content)
	got, err := NewMarkdownExtractor().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return got
}

func TestMarkdownExtractor_StripsMarkup(t *testing.T) {
	got := parseMarkdown(t, "# Heading\n\nSome *emphasized* and **bold** text.\n")

	if strings.ContainsAny(got, "<>#*") {
		t.Errorf("markup survived extraction: %q", got)
	}
	if !strings.Contains(got, "Heading") {
		t.Errorf("heading text lost: %q", got)
	}
	if !strings.Contains(got, "Some emphasized and bold text.") {
		t.Errorf("body text mangled: %q", got)
	}
}

func TestMarkdownExtractor_FrontMatterTitle(t *testing.T) {
	got := parseMarkdown(t, "---\ntitle: Hello\nauthor: someone\n---\nWorld\n")

	hello := strings.Index(got, "Hello")
	world := strings.Index(got, "World")
	if hello < 0 || world < 0 {
		t.Fatalf("expected both title and body in output, got %q", got)
	}
	if hello > world {
		t.Errorf("title should precede body: %q", got)
	}
	if strings.Contains(got, "author") {
		t.Errorf("front matter metadata leaked into output: %q", got)
	}
}

func TestMarkdownExtractor_MalformedFrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unterminated block", "---\ntitle: Hello\nNo closing delimiter here"},
		{"invalid yaml", "---\n\t{{not yaml::\n---\nBody text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMarkdown(t, tt.content)
			if got == "" {
				t.Error("expected best-effort text, got empty string")
			}
		})
	}
}

func TestMarkdownExtractor_EntitiesDecoded(t *testing.T) {
	got := parseMarkdown(t, "Ben &amp; Jerry\n")
	if !strings.Contains(got, "Ben & Jerry") {
		t.Errorf("entity not decoded: %q", got)
	}
}

func TestMarkdownExtractor_FencedCodeBlock(t *testing.T) {
	got := parseMarkdown(t, "Before\n\n```go\nfmt.Println(1)\n```\n\nAfter\n")

	if !strings.Contains(got, "Before") || !strings.Contains(got, "After") {
		t.Errorf("prose around code block lost: %q", got)
	}
	// Sentence-boundary repair may insert a space after the period.
	if !strings.Contains(got, "Println(1)") {
		t.Errorf("code block text content lost: %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("code fence survived extraction: %q", got)
	}
}

func TestMarkdownExtractor_Table(t *testing.T) {
	got := parseMarkdown(t, "| Name | Age |\n|------|-----|\n| Ada  | 36  |\n")

	if !strings.Contains(got, "Ada") || !strings.Contains(got, "36") {
		t.Errorf("table cell text lost: %q", got)
	}
	if strings.Contains(got, "|") {
		t.Errorf("table markup survived extraction: %q", got)
	}
}

func TestMarkdownExtractor_ParagraphBreaks(t *testing.T) {
	got := parseMarkdown(t, "First paragraph.\n\nSecond paragraph.\n")

	if !strings.Contains(got, "First paragraph.\n\nSecond paragraph.") {
		t.Errorf("paragraph break not preserved as double newline: %q", got)
	}
}

func TestMarkdownExtractor_SentenceBoundaryRepair(t *testing.T) {
	if got := htmlToText("<p>End.Next sentence</p>"); !strings.Contains(got, "End. Next") {
		t.Errorf("sentence boundary not repaired: %q", got)
	}
}

func TestMarkdownExtractor_Reusable(t *testing.T) {
	e := NewMarkdownExtractor()

	first := writeTemp(t, "a.md", "# One\n\nalpha\n")
	second := writeTemp(t, "b.md", "# Two\n\nbeta\n")

	gotFirst, err := e.Parse(first)
	if err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	gotSecond, err := e.Parse(second)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}

	if strings.Contains(gotSecond, "alpha") {
		t.Errorf("state leaked between documents: %q", gotSecond)
	}
	if !strings.Contains(gotFirst, "alpha") || !strings.Contains(gotSecond, "beta") {
		t.Errorf("unexpected outputs: %q / %q", gotFirst, gotSecond)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantOK    bool
		wantBlock string
		wantRest  string
	}{
		{"terminated", "---\ntitle: x\n---\nbody\n", true, "title: x\n", "body\n"},
		{"dots terminator", "---\ntitle: x\n...\nbody\n", true, "title: x\n", "body\n"},
		{"unterminated", "---\ntitle: x\nbody", false, "", ""},
		{"no front matter", "body\n---\n", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, rest, ok := splitFrontMatter(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if block != tt.wantBlock {
				t.Errorf("block = %q, want %q", block, tt.wantBlock)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}
