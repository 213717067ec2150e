package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
)

// Strings returns the binding for key as a list of strings. A bare string
// binding yields a single-element list.
func (r *Registry) Strings(key string) ([]string, error) {
	value, err := r.Get(key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("key %q element %d is %T, not a string: %w", key, i, item, errs.ErrInvalidArgument)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("key %q holds %T, not strings: %w", key, value, errs.ErrInvalidArgument)
	}
}

// String returns the first string bound to key.
func (r *Registry) String(key string) (string, error) {
	values, err := r.Strings(key)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("key %q is empty: %w", key, errs.ErrNotFound)
	}
	return values[0], nil
}

// Bool interprets the binding for key as a flag. Lists use their first
// element; strings accept the usual strconv spellings; numbers are true when
// non-zero.
func (r *Registry) Bool(key string) (bool, error) {
	value, err := r.Get(key)
	if err != nil {
		return false, err
	}
	return truthy(key, value)
}

// BoolOr is Bool with a fallback for absent or unreadable keys.
func (r *Registry) BoolOr(key string, fallback bool) bool {
	b, err := r.Bool(key)
	if err != nil {
		return fallback
	}
	return b
}

func truthy(key string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case []any:
		if len(v) == 0 {
			return false, nil
		}
		return truthy(key, v[0])
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("key %q: %q is not a boolean: %w", key, v, errs.ErrInvalidArgument)
		}
		return b, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("key %q holds %T, not a boolean: %w", key, value, errs.ErrInvalidArgument)
	}
}
