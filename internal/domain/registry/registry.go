package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"go.uber.org/zap"
)

// node is a single binding.
type node struct {
	value    any
	readOnly bool
	attached bool
}

// Entry is a snapshot of one binding, used for diagnostics.
type Entry struct {
	Key      string `json:"key"`
	Value    any    `json:"value"`
	ReadOnly bool   `json:"readonly"`
	Attached bool   `json:"attached,omitempty"`
}

// Registry is the process-wide key/value store.
type Registry struct {
	mu     sync.RWMutex
	vars   map[string]*node
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for binding changes.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		vars:   make(map[string]*node),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add merges value into the binding for key. The stored value is always a
// list: scalars become single-element lists and lists are concatenated onto
// whatever the key already holds. The read-only flag is replaced by readonly
// in the same step as the merge.
func (r *Registry) Add(key string, value any, readonly bool) error {
	if key == "" {
		return fmt.Errorf("add: empty key: %w", errs.ErrInvalidArgument)
	}
	if isEmpty(value) {
		return fmt.Errorf("add %q: empty value: %w", key, errs.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged := toList(value)
	if existing, ok := r.vars[key]; ok {
		if existing.readOnly {
			return fmt.Errorf("add %q: %w", key, errs.ErrOverwrite)
		}
		merged = append(toList(existing.value), merged...)
	}

	r.vars[key] = &node{value: merged, readOnly: readonly}
	r.logger.Debug("Registry add",
		zap.String("key", key),
		zap.Int("values", len(merged)),
		zap.Bool("readonly", readonly))
	return nil
}

// Attach binds key to a value the caller keeps ownership of. Later changes
// made through ref are visible through Get. ref must be a reference kind:
// pointer, map, slice, channel or function.
func (r *Registry) Attach(key string, ref any, readonly bool) error {
	if key == "" {
		return fmt.Errorf("attach: empty key: %w", errs.ErrInvalidArgument)
	}
	if !isReference(ref) {
		return fmt.Errorf("attach %q: value must be a non-nil reference, got %T: %w", key, ref, errs.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.vars[key]; ok && existing.readOnly {
		return fmt.Errorf("attach %q: %w", key, errs.ErrOverwrite)
	}

	r.vars[key] = &node{value: ref, readOnly: readonly, attached: true}
	r.logger.Debug("Registry attach", zap.String("key", key), zap.Bool("readonly", readonly))
	return nil
}

// Set replaces the binding for key with value as given.
func (r *Registry) Set(key string, value any, readonly bool) error {
	if key == "" {
		return fmt.Errorf("set: empty key: %w", errs.ErrInvalidArgument)
	}
	if value == nil {
		return fmt.Errorf("set %q: nil value: %w", key, errs.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.vars[key]; ok && existing.readOnly {
		return fmt.Errorf("set %q: %w", key, errs.ErrOverwrite)
	}

	if list, ok := value.([]any); ok {
		value = append([]any(nil), list...)
	}
	r.vars[key] = &node{value: value, readOnly: readonly}
	r.logger.Debug("Registry set", zap.String("key", key), zap.Bool("readonly", readonly))
	return nil
}

// Get returns the value bound to key. Lists are returned as copies so the
// stored binding cannot be changed behind the registry's back; attached
// references are returned as-is.
func (r *Registry) Get(key string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.vars[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, errs.ErrNotFound)
	}
	return n.get(), nil
}

// Lookup is Get without an error for absent keys.
func (r *Registry) Lookup(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.vars[key]
	if !ok {
		return nil, false
	}
	return n.get(), true
}

// IsKey reports whether key is bound. It never fails.
func (r *Registry) IsKey(key string) bool {
	if key == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.vars[key]
	return ok
}

// IsReadOnly reports whether the binding for key is read-only.
func (r *Registry) IsReadOnly(key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("is read-only: empty key: %w", errs.ErrInvalidArgument)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.vars[key]
	if !ok {
		return false, fmt.Errorf("key %q: %w", key, errs.ErrNotFound)
	}
	return n.readOnly, nil
}

// Clear removes a binding that is not read-only.
func (r *Registry) Clear(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.vars[key]
	if !ok {
		return fmt.Errorf("clear %q: %w", key, errs.ErrNotFound)
	}
	if n.readOnly {
		return fmt.Errorf("clear %q: %w", key, errs.ErrOverwrite)
	}

	delete(r.vars, key)
	r.logger.Debug("Registry clear", zap.String("key", key))
	return nil
}

// Keys returns all bound keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.vars))
	for key := range r.vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns every binding sorted by key.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.vars))
	for key, n := range r.vars {
		entries = append(entries, Entry{
			Key:      key,
			Value:    n.get(),
			ReadOnly: n.readOnly,
			Attached: n.attached,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vars)
}

func (n *node) get() any {
	if list, ok := n.value.([]any); ok && !n.attached {
		return append([]any(nil), list...)
	}
	return n.value
}

// toList coerces value into a fresh []any. Slices and arrays are spread,
// anything else becomes a single element.
func toList(value any) []any {
	switch v := value.(type) {
	case []any:
		return append([]any(nil), v...)
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{value}
}

// isEmpty reports values Add refuses: nil, empty strings and empty lists.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Map:
		return rv.IsNil()
	}
	return false
}

func isReference(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return !rv.IsNil()
	}
	return false
}
