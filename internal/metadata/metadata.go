// Package metadata extracts a human-readable description from raw resource
// file text. Extraction is a pure function over the text with a strict,
// exclusive fallback chain: a frontmatter-shaped structured block beats an
// inline comment block beats a paragraph derived from the body. The chain
// is total; every input produces a usable description.
package metadata

import (
	"strings"
	"unicode/utf8"
)

// Source tags where a description came from. It drives diagnostic logging
// only and never changes behavior.
type Source string

const (
	// SourceStructured marks a frontmatter-style block at the start of
	// the document.
	SourceStructured Source = "structured"

	// SourceInlineComment marks a comment-delimited metadata block.
	SourceInlineComment Source = "inline-comment"

	// SourceDerived marks the first-paragraph fallback.
	SourceDerived Source = "derived"
)

const (
	structuredDelimiter = "---"
	commentOpen         = "<!--"
	commentClose        = "-->"
	commentMarker       = "metadata"

	// referenceDirective starts a line that points the reader at other
	// files; everything from it onward is noise for a description.
	referenceDirective = "Read:"

	// Caps for the derived fallback when a document is one long
	// paragraph with no blank line.
	fallbackCap           = 500
	fallbackTrimThreshold = 200

	placeholderDescription = "No description available"
)

// Description is the result of extraction: the raw metadata text and the
// strategy that produced it. Content is unparsed; consumers interpret it
// freely.
type Description struct {
	Content string
	Source  Source
}

// Extract runs the fallback chain over raw file text. Precedence is strict
// and exclusive: only the highest-priority marker present contributes to
// the result, even when several markers appear in the same document.
func Extract(raw string) Description {
	if content, ok := structuredBlock(raw); ok {
		return Description{Content: content, Source: SourceStructured}
	}
	if content, ok := commentBlock(raw); ok {
		return Description{Content: content, Source: SourceInlineComment}
	}
	return Description{Content: derivedParagraph(raw), Source: SourceDerived}
}

// structuredBlock matches the classic frontmatter shape: a delimiter line
// at the very start of the document, a block, and the same delimiter line
// again. The inner text is returned verbatim; no semantic parsing happens
// here, so an empty or malformed block is still a structured result.
func structuredBlock(raw string) (string, bool) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 || strings.TrimRight(lines[0], "\r") != structuredDelimiter {
		return "", false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == structuredDelimiter {
			return strings.Join(lines[1:i], "\n"), true
		}
	}
	return "", false
}

// commentBlock finds a comment opened with the literal metadata marker
// anywhere in the document and returns its inner text trimmed.
func commentBlock(raw string) (string, bool) {
	search := raw
	for {
		idx := strings.Index(search, commentOpen)
		if idx < 0 {
			return "", false
		}

		after := search[idx+len(commentOpen):]
		trimmed := strings.TrimLeft(after, " \t\r\n")
		if strings.HasPrefix(trimmed, commentMarker) {
			body := trimmed[len(commentMarker):]
			end := strings.Index(body, commentClose)
			if end < 0 {
				return "", false
			}
			return strings.TrimSpace(body[:end]), true
		}

		search = after
	}
}

// derivedParagraph is the always-succeeding fallback: strip one leading
// heading line, drop everything from the reference directive onward, and
// take the first paragraph of what remains.
func derivedParagraph(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.TrimLeft(text, "\n")

	if strings.HasPrefix(text, "#") {
		if nl := strings.Index(text, "\n"); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = ""
		}
	}

	text = truncateAtDirective(text)
	text = strings.TrimLeft(text, "\n")

	para := text
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		para = text[:idx]
	} else if len(text) > fallbackCap {
		cut := fallbackCap
		// Avoid cutting mid-word: back up to the nearest sentence end
		// or line break, unless that lands before the minimum useful
		// length.
		if brk := lastBreak(text[:cut]); brk >= fallbackTrimThreshold {
			cut = brk + 1
		} else {
			// Hard cap: back up to a rune boundary so multibyte text
			// stays valid UTF-8.
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		para = text[:cut]
	}

	para = strings.TrimSpace(para)
	if para == "" {
		return placeholderDescription
	}
	return para
}

// truncateAtDirective cuts the text at the first line starting with the
// reference directive keyword.
func truncateAtDirective(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, referenceDirective) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// lastBreak returns the index of the last sentence-end or line-break
// character in s, or -1 when none exists.
func lastBreak(s string) int {
	return strings.LastIndexAny(s, ".!?\n")
}
