package etymology

import "strings"

const (
	templateOpen  = "{{"
	templateClose = "}}"
	linkOpen      = "[["
	linkClose     = "]]"
)

// Template is a single parsed template invocation.
type Template struct {
	Name       string
	Positional []string
	Named      map[string]string
}

// Arg returns the i-th positional parameter (0-based), or "" when absent.
func (t Template) Arg(i int) string {
	if i < 0 || i >= len(t.Positional) {
		return ""
	}
	return t.Positional[i]
}

// Param returns the first non-empty named parameter among keys.
func (t Template) Param(keys ...string) string {
	for _, k := range keys {
		if v := t.Named[k]; v != "" {
			return v
		}
	}
	return ""
}

// ParseTemplate splits raw ("{{name|a|k=v}}") into name, positional and named
// parameters. Nested templates must already be resolved. A pipe inside a
// [[link|display]] is not a parameter boundary. Duplicate keys keep the first value.
func ParseTemplate(raw string) Template {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, templateOpen)
	body = strings.TrimSuffix(body, templateClose)

	parts := splitParams(body)
	t := Template{
		Name:  strings.TrimSpace(parts[0]),
		Named: make(map[string]string),
	}

	for _, part := range parts[1:] {
		if eq := indexOutsideLinks(part, '='); eq >= 0 {
			key := strings.TrimSpace(part[:eq])
			if _, exists := t.Named[key]; !exists {
				t.Named[key] = strings.TrimSpace(part[eq+1:])
			}
			continue
		}
		t.Positional = append(t.Positional, strings.TrimSpace(part))
	}

	return t
}

// splitParams splits on '|' at link depth zero. It always returns at least one part.
func splitParams(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], linkOpen):
			depth++
			i++
		case strings.HasPrefix(s[i:], linkClose) && depth > 0:
			depth--
			i++
		case s[i] == '|' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func indexOutsideLinks(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], linkOpen):
			depth++
			i++
		case strings.HasPrefix(s[i:], linkClose) && depth > 0:
			depth--
			i++
		case s[i] == c && depth == 0:
			return i
		}
	}
	return -1
}
