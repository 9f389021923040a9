package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject finds a JSON object embedded in free text.
//
// The scan tracks brace depth and string literals, so braces inside quoted
// values do not end a region early and stray braces in the surrounding prose
// do not merge unrelated regions. Balanced regions are considered left to
// right: the first one that parses to a non-empty object is returned. If only
// empty objects parse, the first of those is returned. If regions exist but
// none parse, an *InvalidJSONError carrying the first parse error is
// returned. ErrNoJSONFound means there was no balanced region at all.
func ExtractJSONObject(content string) ([]byte, error) {
	var (
		firstEmpty []byte
		firstErr   error
	)

	for start := strings.IndexByte(content, '{'); start >= 0; {
		end := matchBrace(content, start)
		if end < 0 {
			next := strings.IndexByte(content[start+1:], '{')
			if next < 0 {
				break
			}
			start += next + 1
			continue
		}

		candidate := content[start : end+1]
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			// the region may wrap a valid object, e.g. "{see {...}}"
			next := strings.IndexByte(content[start+1:], '{')
			if next < 0 {
				break
			}
			start += next + 1
			continue
		}
		if len(obj) > 0 {
			return []byte(candidate), nil
		}
		if firstEmpty == nil {
			firstEmpty = []byte(candidate)
		}

		next := strings.IndexByte(content[end+1:], '{')
		if next < 0 {
			break
		}
		start = end + 1 + next
	}

	switch {
	case firstEmpty != nil:
		return firstEmpty, nil
	case firstErr != nil:
		return nil, &InvalidJSONError{Err: firstErr}
	default:
		return nil, ErrNoJSONFound
	}
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
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
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
