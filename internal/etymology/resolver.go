package etymology

import "strings"

// Resolver replaces template invocations with their rendered fragments,
// innermost first, until the text stops changing.
type Resolver struct {
	interp *Interpreter
}

// NewResolver creates a Resolver that renders templates with interp.
func NewResolver(interp *Interpreter) *Resolver {
	return &Resolver{interp: interp}
}

// Resolve returns the fully resolved text and the number of passes made,
// including the final pass that observed no change.
func (r *Resolver) Resolve(text string) (string, int) {
	// Each changing pass consumes at least one "{{", so this cap is never
	// reached by well-formed input.
	maxPasses := strings.Count(text, templateOpen) + 1

	passes := 0
	for passes < maxPasses {
		passes++
		next := r.pass(text)
		if next == text {
			break
		}
		text = next
	}
	return text, passes
}

// pass resolves every innermost invocation once. An invocation is innermost
// when no "{{" occurs between its opening and closing delimiters.
func (r *Resolver) pass(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	copied, open := 0, -1
	for i := 0; i+1 < len(text); i++ {
		switch text[i : i+2] {
		case templateOpen:
			open = i
			i++
		case templateClose:
			if open < 0 {
				i++
				continue
			}
			end := i + 2
			b.WriteString(text[copied:open])
			b.WriteString(r.interp.Render(ParseTemplate(text[open:end])))
			copied, open = end, -1
			i++
		}
	}
	b.WriteString(text[copied:])
	return b.String()
}
