package registry

import (
	"fmt"
	"testing"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	reg := New()

	for _, key := range []string{"nope", "admin_email", ""} {
		_, err := reg.Get(key)
		assert.ErrorIs(t, err, errs.ErrNotFound, key)
		assert.False(t, reg.IsKey(key), key)
	}
}

func TestAddInvalidArguments(t *testing.T) {
	reg := New()

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "empty key", key: "", value: "x"},
		{name: "nil value", key: "k", value: nil},
		{name: "empty string", key: "k", value: ""},
		{name: "empty list", key: "k", value: []any{}},
		{name: "nil map", key: "k", value: map[string]any(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Add(tt.key, tt.value, false)
			assert.ErrorIs(t, err, errs.ErrInvalidArgument)
			assert.False(t, reg.IsKey(tt.key))
		})
	}
}

func TestAddCoercesAndMerges(t *testing.T) {
	tests := []struct {
		name   string
		first  any
		second any
		want   []any
	}{
		{name: "scalars", first: "a", second: "b", want: []any{"a", "b"}},
		{name: "scalar then list", first: 1.0, second: []any{2.0, 3.0}, want: []any{1.0, 2.0, 3.0}},
		{name: "list then scalar", first: []string{"x", "y"}, second: "z", want: []any{"x", "y", "z"}},
		{name: "booleans", first: true, second: false, want: []any{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			require.NoError(t, reg.Add("k", tt.first, false))
			require.NoError(t, reg.Add("k", tt.second, false))

			got, err := reg.Get("k")
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("merged value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddReadOnlyRejectsFurtherAdds(t *testing.T) {
	for _, second := range []bool{true, false} {
		t.Run(fmt.Sprintf("second readonly=%v", second), func(t *testing.T) {
			reg := New()
			require.NoError(t, reg.Add("k", "v", true))

			err := reg.Add("k", "v2", second)
			assert.ErrorIs(t, err, errs.ErrOverwrite)

			got, err := reg.Get("k")
			require.NoError(t, err)
			assert.Equal(t, []any{"v"}, got)
		})
	}
}

func TestAddPromotesToReadOnlyWithMerge(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add("k", "a", false))
	require.NoError(t, reg.Add("k", "b", true))

	got, err := reg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	ro, err := reg.IsReadOnly("k")
	require.NoError(t, err)
	assert.True(t, ro)

	assert.ErrorIs(t, reg.Add("k", "c", false), errs.ErrOverwrite)
	assert.ErrorIs(t, reg.Set("k", "c", false), errs.ErrOverwrite)
	assert.ErrorIs(t, reg.Clear("k"), errs.ErrOverwrite)
}

func TestSetReplaces(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add("k", "a", false))
	require.NoError(t, reg.Set("k", "b", false))

	got, err := reg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	value := map[string]any{"host": "localhost", "port": 5432.0}
	require.NoError(t, reg.Set("db", value, false))
	got, err = reg.Get("db")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestSetInvalidArguments(t *testing.T) {
	reg := New()
	assert.ErrorIs(t, reg.Set("", "x", false), errs.ErrInvalidArgument)
	assert.ErrorIs(t, reg.Set("k", nil, false), errs.ErrInvalidArgument)
}

func TestSetThenAddMerges(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Set("k", "a", false))
	require.NoError(t, reg.Add("k", "b", false))

	got, err := reg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestGetReturnsCopyOfLists(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add("k", []any{"a", "b"}, true))

	got, err := reg.Get("k")
	require.NoError(t, err)
	got.([]any)[0] = "mutated"

	again, err := reg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, again)
}

func TestAttachSharesReference(t *testing.T) {
	reg := New()

	counter := 1
	require.NoError(t, reg.Attach("counter", &counter, false))
	counter = 42

	got, err := reg.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, 42, *got.(*int))

	settings := map[string]any{"theme": "dark"}
	require.NoError(t, reg.Attach("settings", settings, true))
	settings["theme"] = "light"

	got, err = reg.Get("settings")
	require.NoError(t, err)
	assert.Equal(t, "light", got.(map[string]any)["theme"])

	assert.ErrorIs(t, reg.Attach("settings", &counter, false), errs.ErrOverwrite)
}

func TestAttachRejectsNonReferences(t *testing.T) {
	reg := New()
	var nilPtr *int

	assert.ErrorIs(t, reg.Attach("k", nil, false), errs.ErrInvalidArgument)
	assert.ErrorIs(t, reg.Attach("k", 5, false), errs.ErrInvalidArgument)
	assert.ErrorIs(t, reg.Attach("k", nilPtr, false), errs.ErrInvalidArgument)
	assert.ErrorIs(t, reg.Attach("", &struct{}{}, false), errs.ErrInvalidArgument)
}

func TestAttachReplacesWritableBinding(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add("k", "a", false))

	value := []string{"x"}
	require.NoError(t, reg.Attach("k", value, false))

	got, err := reg.Get("k")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestIsReadOnly(t *testing.T) {
	reg := New()

	_, err := reg.IsReadOnly("missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = reg.IsReadOnly("")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	require.NoError(t, reg.Set("rw", 1, false))
	require.NoError(t, reg.Set("ro", 1, true))

	ro, err := reg.IsReadOnly("rw")
	require.NoError(t, err)
	assert.False(t, ro)

	ro, err = reg.IsReadOnly("ro")
	require.NoError(t, err)
	assert.True(t, ro)
}

func TestClear(t *testing.T) {
	reg := New()

	assert.ErrorIs(t, reg.Clear("missing"), errs.ErrNotFound)

	require.NoError(t, reg.Add("k", "v", false))
	require.NoError(t, reg.Clear("k"))
	assert.False(t, reg.IsKey("k"))

	// cleared keys can be bound again
	require.NoError(t, reg.Add("k", "w", true))
	assert.True(t, reg.IsKey("k"))
}

func TestKeysAndSnapshot(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Set("b", "2", true))
	require.NoError(t, reg.Add("a", "1", false))

	assert.Equal(t, []string{"a", "b"}, reg.Keys())
	assert.Equal(t, 2, reg.Len())

	want := []Entry{
		{Key: "a", Value: []any{"1"}},
		{Key: "b", Value: "2", ReadOnly: true},
	}
	if diff := cmp.Diff(want, reg.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
