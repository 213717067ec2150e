package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("unexpected end of input")
	err := fmt.Errorf("loading: %w", NewSyntax("/etc/app/config.json", CategorySyntax, cause))

	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "/etc/app/config.json", syntaxErr.Path)
}

func TestSyntaxErrorMessages(t *testing.T) {
	err := &SyntaxError{Path: "/c.json", Category: CategoryUTF8, Detail: "detected charset ISO-8859-1"}

	assert.Equal(t,
		"syntax error in /c.json: Malformed UTF-8 characters, possibly incorrectly encoded (detected charset ISO-8859-1)",
		err.Error())
	assert.Equal(t,
		"Could not decode configuration file /c.json: Malformed UTF-8 characters, possibly incorrectly encoded.",
		err.UserMessage())
}

func TestCategoryDescribe(t *testing.T) {
	assert.Equal(t, "The maximum stack depth has been exceeded", CategoryDepth.Describe())
	assert.Equal(t, "unknown", Category("unknown").Describe())
}

func TestKindName(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("key: %w", ErrInvalidArgument), "invalid_argument"},
		{fmt.Errorf("file: %w", ErrNotFound), "not_found"},
		{ErrOverwrite, "overwrite"},
		{NewSyntax("/x", CategoryDepth, nil), "syntax"},
		{fmt.Errorf("load: %w", ErrUnsupportedStructure), "unsupported_structure"},
		{errors.New("boom"), "other"},
		{nil, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindName(tt.err))
		})
	}
}
