// Package sanitize provides text sanitization utilities.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// StripHTML removes all markup from s and returns the decoded text content
// with runs of whitespace collapsed. Script and style bodies are dropped.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way the text so far is the result.
			return collapse(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isOpaque(name) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isOpaque(name) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// Text sanitizes a string for safe text storage by stripping HTML.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// Excerpt returns the plain-text form of content cut to at most limit runes,
// suffixed with "..." when it was cut.
func Excerpt(content string, limit int) string {
	text := StripHTML(content)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

// WordCount counts whitespace-separated words in the plain-text form of content.
func WordCount(content string) int {
	return len(strings.Fields(StripHTML(content)))
}

func isOpaque(tag []byte) bool {
	name := string(tag)
	return name == "script" || name == "style"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
