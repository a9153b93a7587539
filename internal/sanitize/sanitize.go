// Package sanitize normalizes decoded JSON-like payloads before validation.
package sanitize

import (
	"reflect"
	"strings"
)

// Trim returns a copy of v in which every string, at any depth of nested
// map[string]any and []any values, has leading and trailing Unicode
// whitespace removed. Other values are returned as they are. The input is
// never modified.
//
// Cyclic structures are supported: a container reached again while it is
// being copied maps to its copy, so the output has the same shape of cycles.
func Trim(v any) any {
	t := trimmer{seen: make(map[ref]any)}
	return t.value(v)
}

// ref identifies a container by its data pointer. Slices also key on length
// so distinct sub-slices of one backing array are kept apart.
type ref struct {
	ptr   uintptr
	n     int
	slice bool
}

type trimmer struct {
	seen map[ref]any
}

func (t *trimmer) value(v any) any {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case map[string]any:
		return t.object(x)
	case []any:
		return t.array(x)
	default:
		return v
	}
}

func (t *trimmer) object(m map[string]any) any {
	if m == nil {
		return m
	}

	id := ref{ptr: reflect.ValueOf(m).Pointer()}
	if done, ok := t.seen[id]; ok {
		return done
	}

	out := make(map[string]any, len(m))
	t.seen[id] = out
	for k, v := range m {
		out[k] = t.value(v)
	}
	return out
}

func (t *trimmer) array(s []any) any {
	if s == nil {
		return s
	}

	if len(s) == 0 {
		return []any{}
	}

	id := ref{ptr: reflect.ValueOf(s).Pointer(), n: len(s), slice: true}
	if done, ok := t.seen[id]; ok {
		return done
	}

	out := make([]any, len(s))
	t.seen[id] = out
	for i, v := range s {
		out[i] = t.value(v)
	}
	return out
}
