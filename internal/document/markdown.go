package document

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

var (
	blockBreakRE     = regexp.MustCompile(`(?i)</(p|h[1-6]|li|ul|ol|blockquote|pre|table|tr)>|<(br|hr)\s*/?>`)
	tagRE            = regexp.MustCompile(`<[^>]+>`)
	newlinePaddingRE = regexp.MustCompile(` *\n *`)
	sentenceBoundRE  = regexp.MustCompile(`\.([A-Z])`)
)

// MarkdownExtractor extracts Markdown files, handling YAML front matter and
// stripping all structural markup down to plain prose. A single instance is
// reusable across documents.
type MarkdownExtractor struct {
	md goldmark.Markdown
}

// NewMarkdownExtractor creates a Markdown extractor with table, fenced code
// block, and strikethrough support.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Name returns the extractor identifier.
func (m *MarkdownExtractor) Name() string {
	return "markdown"
}

// Parse reads the file and returns clean prose. Front matter parsing is
// best-effort: a malformed block downgrades to treating the whole content as
// plain Markdown, never to a failure.
func (m *MarkdownExtractor) Parse(path string) (string, error) {
	content, err := readFileUTF8(path)
	if err != nil {
		return "", err
	}

	body := content
	if strings.HasPrefix(content, frontMatterDelim) {
		if block, rest, ok := splitFrontMatter(content); ok {
			var meta map[string]any
			if yaml.Unmarshal([]byte(block), &meta) == nil {
				body = rest
				if title, ok := meta["title"].(string); ok && title != "" {
					body = "# " + title + "\n\n" + body
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(body), &buf); err != nil {
		// Conversion never fails on well-formed UTF-8 in practice, but a
		// malformed document must still degrade to best-effort text.
		return htmlToText(body), nil
	}

	return htmlToText(buf.String()), nil
}

// splitFrontMatter separates a leading `---` delimited block from the rest of
// the content. ok is false when no terminating delimiter exists.
func splitFrontMatter(content string) (block, rest string, ok bool) {
	lines := strings.SplitAfter(content, "\n")
	if strings.TrimRight(lines[0], "\r\n") != frontMatterDelim {
		return "", "", false
	}

	var b strings.Builder
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], "\r\n")
		if trimmed == frontMatterDelim || trimmed == "..." {
			return b.String(), strings.Join(lines[i+1:], ""), true
		}
		b.WriteString(lines[i])
	}

	return "", "", false
}

// htmlToText strips markup from rendered HTML while preserving text content:
// block boundaries become paragraph breaks, remaining tags are dropped,
// entities are decoded, and whitespace is collapsed. A space is inserted
// after a period directly followed by a capital letter to repair sentence
// boundaries lost in concatenated prose.
func htmlToText(rendered string) string {
	text := blockBreakRE.ReplaceAllString(rendered, "\n\n")
	text = tagRE.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	text = spaceRunRE.ReplaceAllString(text, " ")
	text = newlinePaddingRE.ReplaceAllString(text, "\n")
	text = multiNewlineRE.ReplaceAllString(text, "\n\n")

	text = sentenceBoundRE.ReplaceAllString(text, ". $1")

	return strings.TrimSpace(text)
}
