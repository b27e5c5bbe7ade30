package document

import (
	"regexp"
	"strings"
)

var (
	lineEndingRE   = regexp.MustCompile(`\r\n|\r`)
	multiNewlineRE = regexp.MustCompile(`\n{3,}`)
	spaceRunRE     = regexp.MustCompile(`[ \t]+`)
)

// TextExtractor extracts plain text files with basic whitespace cleanup.
// It performs no structural interpretation of the content.
type TextExtractor struct{}

// Name returns the extractor identifier.
func (TextExtractor) Name() string {
	return "text"
}

// Parse reads the file and normalizes its whitespace.
func (TextExtractor) Parse(path string) (string, error) {
	content, err := readFileUTF8(path)
	if err != nil {
		return "", err
	}
	return normalizeText(content), nil
}

// normalizeText normalizes line endings, caps consecutive newlines at two,
// and collapses runs of spaces and tabs. The result is stable under repeated
// application.
func normalizeText(content string) string {
	content = lineEndingRE.ReplaceAllString(content, "\n")
	content = multiNewlineRE.ReplaceAllString(content, "\n\n")
	content = spaceRunRE.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
