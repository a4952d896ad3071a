package helpers

import (
	"errors"
	"strings"
)

// ExtractFencedBlock returns the content of the first fenced code block in s,
// optionally filtered by language identifiers (case-insensitive). Both ```
// and ~~~ fences are supported. The fence lines themselves are not returned.
func ExtractFencedBlock(s string, langFilter ...string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty input")
	}

	var want map[string]struct{}
	if len(langFilter) > 0 {
		want = make(map[string]struct{}, len(langFilter))
		for _, lf := range langFilter {
			lf = strings.ToLower(strings.TrimSpace(lf))
			if lf != "" {
				want[lf] = struct{}{}
			}
		}
	}

	for _, fence := range []string{"```", "~~~"} {
		start := 0
		for {
			i := strings.Index(s[start:], fence)
			if i == -1 {
				break
			}
			i += start
			afterFence := i + len(fence)
			nl := strings.IndexByte(s[afterFence:], '\n')
			if nl == -1 {
				break
			}
			info := strings.TrimSpace(s[afterFence : afterFence+nl])
			contentStart := afterFence + nl + 1
			j := strings.Index(s[contentStart:], fence)
			if j == -1 {
				break
			}
			content := s[contentStart : contentStart+j]

			if want != nil {
				var lang string
				if fields := strings.Fields(info); len(fields) > 0 {
					lang = strings.ToLower(fields[0])
				}
				if _, ok := want[lang]; !ok {
					start = afterFence
					continue
				}
			}
			return strings.TrimSpace(content), nil
		}
	}

	return "", errors.New("no fenced block found")
}

// ExtractJSON finds and returns the first balanced JSON object or array in s,
// scanning past any surrounding prose. Braces and brackets inside strings are
// ignored, escape sequences included.
func ExtractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			if out, ok := balancedJSONFrom(s, i); ok {
				return out, nil
			}
		}
	}
	return "", errors.New("no balanced JSON object/array found")
}

func balancedJSONFrom(s string, start int) (string, bool) {
	var (
		stack    []byte
		inString bool
		escape   bool
	)
	stack = append(stack, s[start])

	for i := start + 1; i < len(s); i++ {
		c := s[i]
		if inString {
			if escape {
				escape = false
				continue
			}
			switch c {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			top := stack[len(stack)-1]
			if (top == '{' && c != '}') || (top == '[' && c != ']') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
