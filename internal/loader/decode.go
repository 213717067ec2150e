package loader

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/saintfish/chardet"
	"github.com/tidwall/gjson"
)

// Format identifies a settings file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

const commentMarker = "##"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// field is one top-level key in document order.
type field struct {
	key   string
	value any
}

type document []field

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func decode(path string, format Format, data []byte, maxDepth int) (document, error) {
	if err := checkText(path, data); err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, &errs.SyntaxError{Path: path, Category: errs.CategoryUTF8, Detail: detectCharset(data)}
	}

	switch format {
	case FormatYAML:
		return decodeYAML(path, data)
	case FormatTOML:
		return decodeTOML(path, data)
	default:
		return decodeJSON(path, data, maxDepth)
	}
}

// checkText rejects content recognized as a binary format. Unrecognized
// content is left to the decoder.
func checkText(path string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	if mt.Is("application/octet-stream") {
		return nil
	}
	return &errs.SyntaxError{Path: path, Category: errs.CategoryBinary, Detail: "detected " + mt.String()}
}

func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return "detected charset " + result.Charset
}

// stripComments blanks every line whose first non-blank characters are the
// comment marker. Line count is preserved so decoder offsets stay useful.
func stripComments(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte(commentMarker)) {
			lines[i] = nil
		}
	}
	return bytes.Join(lines, []byte("\n"))
}

func decodeJSON(path string, data []byte, maxDepth int) (document, error) {
	clean := stripComments(data)

	if category, offset, ok := scanJSON(clean, maxDepth); !ok {
		return nil, &errs.SyntaxError{
			Path:     path,
			Category: category,
			Detail:   fmt.Sprintf("offset %d", offset),
		}
	}

	var values map[string]any
	if err := sonic.ConfigStd.Unmarshal(clean, &values); err != nil {
		return nil, errs.NewSyntax(path, errs.CategorySyntax, err)
	}
	if values == nil {
		return nil, &errs.SyntaxError{Path: path, Category: errs.CategorySyntax, Detail: "top-level value must be an object"}
	}

	// key order comes from the raw document, values from the decoded map
	doc := make(document, 0, len(values))
	seen := make(map[string]bool, len(values))
	gjson.ParseBytes(clean).ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if !seen[name] {
			seen[name] = true
			doc = append(doc, field{key: name, value: values[name]})
		}
		return true
	})
	return doc, nil
}

func decodeYAML(path string, data []byte) (document, error) {
	var items yaml.MapSlice
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, errs.NewSyntax(path, errs.CategorySyntax, err)
	}

	doc := make(document, 0, len(items))
	for _, item := range items {
		doc = append(doc, field{key: fmt.Sprint(item.Key), value: normalize(item.Value)})
	}
	return doc, nil
}

// decodeTOML decodes into a map, so top-level keys are processed in sorted
// order rather than file order.
func decodeTOML(path string, data []byte) (document, error) {
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		syntaxErr := errs.NewSyntax(path, errs.CategorySyntax, err)
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			syntaxErr.Detail = fmt.Sprintf("line %d column %d", row, col)
		}
		return nil, syntaxErr
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(document, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, field{key: k, value: normalize(values[k])})
	}
	return doc, nil
}

// normalize converts decoder-specific shapes to the JSON shapes the rest of
// the loader works with: []any, map[string]any and float64 numbers.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case yaml.MapSlice:
		out := make(map[string]any, len(v))
		for _, item := range v {
			out[fmt.Sprint(item.Key)] = normalize(item.Value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
