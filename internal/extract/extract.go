// Package extract pulls a JSON payload out of raw model output. Model
// responses are not guaranteed to be well-formed: the payload may be wrapped
// in prose or markdown fences, use typographic quotes, or be truncated
// mid-structure. The sentinel markers are the primary contract with the
// prompt; everything else here is a pragmatic safety net for the common
// failure modes, not a grammar-aware repair.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// StartMarker and EndMarker delimit the expected JSON payload inside
	// free-form model output. The prompt instructs the model to use them.
	StartMarker = "<<<JSON_START>>>"
	EndMarker   = "<<<JSON_END>>>"

	// rawPrefixLen bounds how much raw text is carried in a ParseError.
	rawPrefixLen = 500
)

// ErrNoMarkers is returned when the response contains neither the sentinel
// markers nor any brace pair to fall back on.
var ErrNoMarkers = errors.New("no JSON markers or braces found in response")

// ParseError reports a strict-parse failure after cleanup, carrying a bounded
// prefix of the raw response for diagnosis.
type ParseError struct {
	Err       error
	RawPrefix string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse extracted JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	codeFenceRe     = regexp.MustCompile("```[a-zA-Z]*\n?")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	quoteReplacer   = strings.NewReplacer(
		"“", `"`, // left double
		"”", `"`, // right double
		"‘", "'", // left single
		"’", "'", // right single
	)
)

// FromResponse locates the candidate JSON text in raw model output, cleans it
// up, and parses it into a generic value. The returned error is either
// ErrNoMarkers or a *ParseError.
func FromResponse(text string) (any, error) {
	candidate, err := candidateText(text)
	if err != nil {
		return nil, err
	}

	cleaned := Clean(candidate)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, &ParseError{Err: err, RawPrefix: prefix(text, rawPrefixLen)}
	}

	return v, nil
}

// candidateText selects the probable JSON span: between the sentinel markers
// if both are present, everything after the start marker if truncation ate
// the end marker, otherwise from the first '{' to the last '}'.
func candidateText(text string) (string, error) {
	start := strings.Index(text, StartMarker)
	end := strings.Index(text, EndMarker)

	if start != -1 {
		payload := text[start+len(StartMarker):]
		if end > start {
			payload = text[start+len(StartMarker) : end]
		}
		return strings.TrimSpace(payload), nil
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last < first {
		return "", ErrNoMarkers
	}
	return text[first : last+1], nil
}

// Clean normalizes candidate JSON text so a strict parser will accept the
// common formatting drift models produce.
func Clean(s string) string {
	s = codeFenceRe.ReplaceAllString(s, "")
	s = quoteReplacer.Replace(s)

	// Ellipses show up mid-value when the model abbreviates and break strict
	// parsing.
	s = strings.ReplaceAll(s, "...", "")
	s = strings.ReplaceAll(s, "…", "")

	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = stripControl(s)
	s = strings.TrimSpace(s)
	s = closeTruncated(s)

	return s
}

// stripControl removes C0 control characters except tab, newline and carriage
// return.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// closeTruncated appends the closers still open at end of input, innermost
// first. This only repairs truncation that cut off trailing closers; a
// response cut mid-key or mid-string still fails to parse, which is accepted.
func closeTruncated(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		s += string(stack[i])
	}
	return s
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
