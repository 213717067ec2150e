package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotFound             = errors.New("not found")
	ErrOverwrite            = errors.New("overwrite of read-only binding")
	ErrSyntax               = errors.New("syntax error")
	ErrUnsupportedStructure = errors.New("unsupported structure")
)

// Category classifies why a configuration file could not be decoded.
type Category string

const (
	CategoryDepth         Category = "depth"
	CategoryStateMismatch Category = "state_mismatch"
	CategoryUTF8          Category = "utf8"
	CategoryControlChar   Category = "control_char"
	CategorySyntax        Category = "syntax"
	CategoryBinary        Category = "binary"
)

var categoryText = map[Category]string{
	CategoryDepth:         "The maximum stack depth has been exceeded",
	CategoryStateMismatch: "Invalid or malformed structure",
	CategoryUTF8:          "Malformed UTF-8 characters, possibly incorrectly encoded",
	CategoryControlChar:   "Control character error, possibly incorrectly encoded",
	CategorySyntax:        "Syntax error",
	CategoryBinary:        "File is not a text document",
}

// Describe returns the human readable reason for a category.
func (c Category) Describe() string {
	if text, ok := categoryText[c]; ok {
		return text
	}
	return string(c)
}

// SyntaxError reports a configuration file that failed to decode.
type SyntaxError struct {
	Path     string
	Category Category
	Detail   string // optional, e.g. detected charset or byte offset
	Err      error  // underlying decoder error, may be nil
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error in %s: %s", e.Path, e.Category.Describe())
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes every SyntaxError match ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// UserMessage renders the diagnostic shown to an operator when startup halts.
func (e *SyntaxError) UserMessage() string {
	return fmt.Sprintf("Could not decode configuration file %s: %s.", e.Path, e.Category.Describe())
}

// NewSyntax builds a SyntaxError.
func NewSyntax(path string, category Category, err error) *SyntaxError {
	return &SyntaxError{Path: path, Category: category, Err: err}
}

// Kind returns the sentinel an error wraps, or nil if it wraps none.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidArgument, ErrNotFound, ErrOverwrite, ErrSyntax, ErrUnsupportedStructure} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a short label for metrics and logs.
func KindName(err error) string {
	switch Kind(err) {
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrNotFound:
		return "not_found"
	case ErrOverwrite:
		return "overwrite"
	case ErrSyntax:
		return "syntax"
	case ErrUnsupportedStructure:
		return "unsupported_structure"
	default:
		return "other"
	}
}
