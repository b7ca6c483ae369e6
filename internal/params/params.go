// Package params implements shorthand-argument resolution for nodes.
//
// A node declares an ordered Table of short parameter keys (such as
// "c", "k", "s") with their defaults. Callers supply a mixed argument
// list: bare values bind positionally to the table order, KV values
// override by key, and a Named value sets the display name. Resolve
// merges the three sources into a single map, keyword overrides
// winning over positional values, positional values winning over
// defaults.
package params

import (
	"fmt"
	"sort"
)

// Param is one entry of a parameter table: a short key and its
// default value. A nil default means "derived later" (for example
// output channels computed from the input shape).
type Param struct {
	Key     string
	Default any
}

// Table is the ordered parameter declaration of a node kind.
// It is defined once per kind and never mutated afterwards.
type Table []Param

// Keys returns the table keys in declaration order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, p := range t {
		keys[i] = p.Key
	}
	return keys
}

// Has reports whether the table declares the given key.
func (t Table) Has(key string) bool {
	for _, p := range t {
		if p.Key == key {
			return true
		}
	}
	return false
}

// KV is an explicit keyword argument: it overrides the binding for
// Key regardless of positional values or defaults.
type KV struct {
	Key   string
	Value any
}

// Named sets the display name of a node. It is extracted by Resolve
// and never enters the resolved parameter map.
type Named string

// Resolved is the merged parameter map of a node instance. Builders
// may later add derived keys (for example a concrete padding computed
// from a symbolic one).
type Resolved map[string]any

// Resolve merges an argument list against a parameter table.
//
// Each element of args is either a positional value, a KV override or
// a Named display name. Positional values must precede all options.
// The class name is used in error messages only.
//
// Returns the resolved map, the display name ("" if none was given)
// and an error for: more positional values than table entries, a KV
// key the table does not declare, a positional value after an option,
// or an explicitly empty name.
func Resolve(class string, t Table, args []any) (Resolved, string, error) {
	var (
		positional []any
		overrides  []KV
		name       string
		sawOption  bool
	)

	for i, arg := range args {
		switch v := arg.(type) {
		case KV:
			overrides = append(overrides, v)
			sawOption = true
		case Named:
			name = string(v)
			sawOption = true
			if name == "" {
				return nil, "", &InvalidNameError{Class: class}
			}
		default:
			if sawOption {
				return nil, "", fmt.Errorf(
					"%s: positional argument %d given after a keyword argument", class, i)
			}
			positional = append(positional, v)
		}
	}

	if len(positional) > len(t) {
		return nil, "", &TooManyArgsError{Class: class, Got: len(positional), Max: len(t)}
	}

	resolved := make(Resolved, len(t))
	for i, v := range positional {
		resolved[t[i].Key] = v
	}
	for _, kv := range overrides {
		if !t.Has(kv.Key) {
			return nil, "", &UnknownArgError{Class: class, Key: kv.Key}
		}
		resolved[kv.Key] = kv.Value
	}
	for _, p := range t {
		if _, ok := resolved[p.Key]; !ok {
			resolved[p.Key] = p.Default
		}
	}

	return resolved, name, nil
}

// Clone returns a shallow copy of the resolved map. Values are shared;
// node arguments are treated as immutable scalars.
func (r Resolved) Clone() Resolved {
	clone := make(Resolved, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// IsNil reports whether the key resolves to a nil value (a "derive at
// build time" marker).
func (r Resolved) IsNil(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}

// Int returns the key's value as an int. Numeric YAML and literal
// values (int, int64, float64 with integral value) are accepted;
// anything else panics, since it indicates a misdeclared argument
// that no build could recover from.
func (r Resolved) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	panic(fmt.Sprintf("params: %q is not an integer (got %T: %v)", key, r[key], r[key]))
}

// Bool returns the key's value as a bool, panicking on other types.
func (r Resolved) Bool(key string) bool {
	v, ok := r[key].(bool)
	if !ok {
		panic(fmt.Sprintf("params: %q is not a bool (got %T: %v)", key, r[key], r[key]))
	}
	return v
}

// Format renders the resolved map as "k=v, ..." in table order,
// derived keys outside the table appended at the end.
func (r Resolved) Format(t Table) string {
	out := ""
	appendKV := func(k string, v any) {
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%s=%v", k, v)
	}
	for _, p := range t {
		if v, ok := r[p.Key]; ok {
			appendKV(p.Key, v)
		}
	}
	var extras []string
	for k := range r {
		if !t.Has(k) {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		appendKV(k, r[k])
	}
	return out
}
