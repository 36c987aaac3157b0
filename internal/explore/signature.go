package explore

import (
	"strings"

	"github.com/seitarof/go-explorer/internal/provider"
)

const selfMarker = provider.SelfMarker

// FormatSignature drops a leading self parameter from a raw signature such
// as "(self *List, v any) *Element". When self is the only parameter the
// marker is stripped in place, leaving the receiver type.
func FormatSignature(raw string) string {
	if !strings.HasPrefix(raw, "(") {
		return raw
	}
	end := matchingParen(raw)
	if end < 0 {
		return raw
	}
	params := raw[1:end]
	rest := raw[end+1:]

	first, tail, hasTail := cutTopLevel(params)
	if !isSelfParam(first) {
		return raw
	}
	if hasTail {
		return "(" + strings.TrimLeft(tail, " ") + ")" + rest
	}
	stripped := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), selfMarker))
	stripped = strings.TrimPrefix(stripped, ":")
	return "(" + strings.TrimSpace(stripped) + ")" + rest
}

func isSelfParam(p string) bool {
	p = strings.TrimSpace(p)
	if p == selfMarker {
		return true
	}
	return strings.HasPrefix(p, selfMarker+" ") || strings.HasPrefix(p, selfMarker+":")
}

// matchingParen returns the index of the parenthesis closing s[0].
func matchingParen(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// cutTopLevel splits s at its first comma outside brackets.
func cutTopLevel(s string) (before, after string, found bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}
