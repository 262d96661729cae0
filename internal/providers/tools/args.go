package tools

import (
	"fmt"

	"github.com/spf13/cast"
)

func requiredString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("argument %q: %w", key, err)
	}
	return s, nil
}

func optionalString(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("argument %q: %w", key, err)
	}
	return s, nil
}

// requiredInt accepts JSON numbers and numeric strings, since models send both.
func requiredInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be an integer: %w", key, err)
	}
	return n, nil
}

func optionalInt(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be an integer: %w", key, err)
	}
	return n, nil
}
