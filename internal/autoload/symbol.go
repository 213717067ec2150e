package autoload

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
)

// Delimiter joins the segments of a normalized symbol.
const Delimiter = "-"

var separators = regexp.MustCompile(`[.\-\\]+`)

// NormalizeSymbol turns a namespaced symbol into an index key: trimmed, one
// leading separator removed, runs of separators folded to Delimiter and
// lower-cased.
func NormalizeSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s != "" && strings.ContainsRune(`.-\`, rune(s[0])) {
		s = s[1:]
	}
	return strings.ToLower(separators.ReplaceAllString(s, Delimiter))
}

// IndexKey computes the index key of a file name: the extension is removed,
// dots become Delimiter and the result is lower-cased.
func IndexKey(name, extension string) string {
	base := name
	if len(base) > len(extension) && strings.EqualFold(base[len(base)-len(extension):], extension) {
		base = base[:len(base)-len(extension)]
	}
	return strings.ToLower(strings.ReplaceAll(base, ".", Delimiter))
}

// Pattern builds the fallback search expression for symbol. It matches a
// file base name, extension removed, case-insensitively.
func Pattern(symbol string) (*regexp.Regexp, error) {
	key := NormalizeSymbol(symbol)
	if key == "" {
		return nil, fmt.Errorf("empty symbol %q: %w", symbol, errs.ErrInvalidArgument)
	}

	parts := strings.Split(key, Delimiter)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := fmt.Sprintf(`(?i)^(class\.)?%s(\.class|\.inc){0,2}$`, strings.Join(parts, `(\.|-)+`))
	return regexp.Compile(expr)
}
