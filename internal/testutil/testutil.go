// Package testutil provides fixtures and mocks shared by package tests.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/stretchr/testify/mock"
)

// MockResolver is a mock implementation of a symbol resolver.
type MockResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method.
func (m *MockResolver) Resolve(symbol string) (string, bool, error) {
	args := m.Called(symbol)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockConfigLoader is a mock implementation of a settings loader.
type MockConfigLoader struct {
	mock.Mock
}

// Load mocks the Load method.
func (m *MockConfigLoader) Load(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// NewMockResolver creates a resolver mock whose expectations are checked
// when the test ends.
func NewMockResolver(t *testing.T) *MockResolver {
	t.Helper()
	m := new(MockResolver)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewMockConfigLoader creates a loader mock whose expectations are checked
// when the test ends.
func NewMockConfigLoader(t *testing.T) *MockConfigLoader {
	t.Helper()
	m := new(MockConfigLoader)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WriteFile writes content to dir/rel, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Tree creates a temporary directory holding files, keyed by slash-separated
// relative path, and returns its root.
func Tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// AssertKind fails the test unless err wraps the expected sentinel.
func AssertKind(t *testing.T, err error, expected error) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v, got nil", expected)
	}
	if !errors.Is(err, expected) {
		t.Fatalf("Expected %v, got %v (kind %s)", expected, err, errs.KindName(err))
	}
}

// AssertCategory fails the test unless err is a SyntaxError of the given
// category.
func AssertCategory(t *testing.T, err error, expected errs.Category) {
	t.Helper()
	var syntaxErr *errs.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected syntax error %s, got %v", expected, err)
	}
	if syntaxErr.Category != expected {
		t.Fatalf("Expected category %s, got %s: %v", expected, syntaxErr.Category, err)
	}
}

// Chdir changes the working directory to dir and restores the previous
// directory when the test ends. It stands in for testing.T.Chdir, which is
// unavailable before Go 1.24.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("chdir %s: %v", prev, err)
		}
	})
}
