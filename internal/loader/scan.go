package loader

import "github.com/GriffinCanCode/vcms/internal/shared/errs"

// scanJSON walks the raw document once and reports structural faults the
// decoder would only describe as generic syntax errors: nesting deeper than
// maxDepth, a closing bracket that does not match its opener, and raw
// control characters inside strings. On failure it returns the category and
// the byte offset of the fault.
//
// Other malformations, including unterminated input, pass through and are
// reported by the decoder.
func scanJSON(data []byte, maxDepth int) (errs.Category, int, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)

	for i, c := range data {
		if inString {
			switch {
			case c < 0x20:
				return errs.CategoryControlChar, i, false
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
		case '{', '[':
			closer := byte('}')
			if c == '[' {
				closer = ']'
			}
			stack = append(stack, closer)
			if len(stack) > maxDepth {
				return errs.CategoryDepth, i, false
			}
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return errs.CategoryStateMismatch, i, false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return "", 0, true
}
