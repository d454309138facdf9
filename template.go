package conjparse

import "strings"

// A Template is one {{name|arg|key=value}} invocation from an entry body.
type Template struct {
	Name  string
	Pos   []string
	Named map[string]string
}

// Arg returns the i-th positional argument (1-based, wiki convention) or
// the empty string.
func (t *Template) Arg(i int) string {
	if i < 1 || i > len(t.Pos) {
		return ""
	}
	return t.Pos[i-1]
}

// findTemplate locates the first template invocation at or after start,
// returning its bounds. Nested invocations are kept inside the outer one.
// Returns ok=false when no balanced invocation remains.
func findTemplate(text string, start int) (open, end int, ok bool) {
	open = strings.Index(text[start:], "{{")
	if open < 0 {
		return 0, 0, false
	}
	open += start

	depth := 0
	for i := open; i+1 < len(text); i++ {
		switch {
		case text[i] == '{' && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}' && text[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return open, i + 1, true
			}
		}
	}
	return 0, 0, false
}

// splitArgs splits a template body on top-level pipes, leaving pipes
// inside nested templates and links alone.
func splitArgs(body string) []string {
	args := make([]string, 0, 8)
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		switch {
		case i+1 < len(body) && (body[i] == '{' && body[i+1] == '{' ||
			body[i] == '[' && body[i+1] == '['):
			depth++
			i++
		case i+1 < len(body) && (body[i] == '}' && body[i+1] == '}' ||
			body[i] == ']' && body[i+1] == ']'):
			depth--
			i++
		case body[i] == '|' && depth == 0:
			args = append(args, body[last:i])
			last = i + 1
		}
	}
	return append(args, body[last:])
}

// ParseTemplate parses one balanced {{...}} invocation. Arguments with an
// '=' at top level become named arguments, the rest stay positional.
func ParseTemplate(raw string) *Template {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "{{"), "}}")
	parts := splitArgs(body)

	t := &Template{
		Name:  strings.TrimSpace(parts[0]),
		Named: map[string]string{},
	}
	for _, part := range parts[1:] {
		if eq := strings.Index(part, "="); eq >= 0 &&
			!strings.Contains(part[:eq], "{{") {
			key := strings.TrimSpace(part[:eq])
			t.Named[key] = strings.TrimSpace(part[eq+1:])
			continue
		}
		t.Pos = append(t.Pos, strings.TrimSpace(part))
	}
	return t
}

// FindTemplates parses every balanced template invocation in text whose
// name matches one of the given names (all of them when names is empty).
func FindTemplates(text string, names ...string) []*Template {
	var rv []*Template
	for pos := 0; ; {
		open, end, ok := findTemplate(text, pos)
		if !ok {
			break
		}
		pos = end

		t := ParseTemplate(text[open:end])
		if len(names) == 0 {
			rv = append(rv, t)
			continue
		}
		for _, name := range names {
			if t.Name == name {
				rv = append(rv, t)
				break
			}
		}
	}
	return rv
}

// templateOffsets returns the bounds of every balanced template invocation
// in text, outermost only.
func templateOffsets(text string) [][2]int {
	var rv [][2]int
	for pos := 0; ; {
		open, end, ok := findTemplate(text, pos)
		if !ok {
			return rv
		}
		rv = append(rv, [2]int{open, end})
		pos = end
	}
}
