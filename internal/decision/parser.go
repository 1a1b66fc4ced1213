package decision

import (
	"fmt"
	"strings"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/tidwall/gjson"
)

// Parse extracts the first well-formed decision object from a raw LLM reply.
// Replies are best-effort JSON: markdown fences and surrounding prose are
// tolerated. Returns ErrParseFailure when no usable object is found; callers
// treat that as action NONE.
func Parse(raw string) (domain.Decision, error) {
	candidate := extractObject(raw)
	if candidate == "" {
		return domain.Decision{}, domain.ErrParseFailure
	}

	obj := gjson.Parse(candidate)
	d, err := domain.NewDecision(
		obj.Get("action").String(),
		obj.Get("content").String(),
		obj.Get("target_id").String(),
	)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}
	return d, nil
}

// extractObject returns the first balanced JSON object in s that carries an
// "action" key.
func extractObject(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		if end := matchBrace(s, start); end > start {
			candidate := s[start : end+1]
			if gjson.Valid(candidate) && gjson.Get(candidate, "action").Exists() {
				return candidate
			}
		}
	}
	return ""
}

// matchBrace returns the index of the brace closing the object opened at
// start, or -1. String literals and escapes are respected.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
