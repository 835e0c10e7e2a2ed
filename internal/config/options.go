package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// MissingOptionError reports a required option that has no value.
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return "missing option: " + e.Option
}

// Options is a flat mapping from dotted keys (caret.style.above) to leaf
// values. Panels read their settings from it.
type Options map[string]any

type pending struct {
	prefix string
	tree   map[string]any
}

// Flatten walks a nested settings tree with an explicit work stack and
// returns its leaves keyed by dotted path. Keys are lowercased.
func Flatten(tree map[string]any) Options {
	out := Options{}
	stack := []pending{{tree: tree}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for key, value := range top.tree {
			path := strings.ToLower(key)
			if top.prefix != "" {
				path = top.prefix + "." + path
			}
			switch child := value.(type) {
			case map[string]any:
				stack = append(stack, pending{prefix: path, tree: child})
			case map[any]any:
				stack = append(stack, pending{prefix: path, tree: cast.ToStringMap(child)})
			default:
				out[path] = value
			}
		}
	}
	return out
}

// Keys returns the option keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of o with key set to value.
func (o Options) With(key string, value any) Options {
	out := make(Options, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[key] = value
	return out
}

// Lookup returns the raw value of key.
func (o Options) Lookup(key string) (any, bool) {
	value, ok := o[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func (o Options) require(key string) (any, error) {
	value, ok := o.Lookup(key)
	if !ok {
		return nil, &MissingOptionError{Option: key}
	}
	return value, nil
}

// String returns key as a string.
func (o Options) String(key string) (string, error) {
	value, err := o.require(key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("option %s: %w", key, err)
	}
	return s, nil
}

// Rune returns key as a single glyph. Longer strings keep their first rune.
func (o Options) Rune(key string) (rune, error) {
	s, err := o.String(key)
	if err != nil {
		return 0, err
	}
	for _, r := range s {
		return r, nil
	}
	return 0, &MissingOptionError{Option: key}
}

// Int returns key as an int.
func (o Options) Int(key string) (int, error) {
	value, err := o.require(key)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return n, nil
}

// Bool returns key as a bool.
func (o Options) Bool(key string) (bool, error) {
	value, err := o.require(key)
	if err != nil {
		return false, err
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, fmt.Errorf("option %s: %w", key, err)
	}
	return b, nil
}

// Duration returns key as a time.Duration.
func (o Options) Duration(key string) (time.Duration, error) {
	value, err := o.require(key)
	if err != nil {
		return 0, err
	}
	d, err := cast.ToDurationE(value)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return d, nil
}

// Decimal returns key as a decimal price.
func (o Options) Decimal(key string) (decimal.Decimal, error) {
	value, err := o.require(key)
	if err != nil {
		return decimal.Zero, err
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("option %s: %w", key, err)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("option %s: %w", key, err)
	}
	return d, nil
}
