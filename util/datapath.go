package util

import (
	"reflect"
	"strconv"
	"strings"
)

// PathSeparator separates segments in a dot-path such as "headers.accept".
const PathSeparator = "."

// SplitPath splits a dot-path into its segments. An empty path has no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// Get resolves a dot-path against a nested value. Maps are addressed by key
// and slices by numeric index. It returns fallback when any segment is missing.
func Get(data any, path string, fallback any) any {
	v, ok := lookup(data, SplitPath(path))
	if !ok {
		return fallback
	}
	return v
}

// Has reports whether a dot-path resolves against a nested value.
func Has(data any, path string) bool {
	_, ok := lookup(data, SplitPath(path))
	return ok
}

// Set assigns value at a dot-path inside m, creating intermediate maps as
// needed. Other string-keyed maps on the path are converted to
// map[string]any with their entries kept; a non-map value in the way is
// replaced by a new map.
func Set(m map[string]any, path string, value any) {
	segments := SplitPath(path)
	if m == nil || len(segments) == 0 {
		return
	}
	current := m
	for _, seg := range segments[:len(segments)-1] {
		next, ok := asMap(current[seg])
		if !ok {
			next = make(map[string]any)
		}
		current[seg] = next
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// Remove deletes the value at a dot-path inside m. Parent containers are
// left in place even when they become empty.
func Remove(m map[string]any, path string) {
	segments := SplitPath(path)
	if m == nil || len(segments) == 0 {
		return
	}
	current := m
	for _, seg := range segments[:len(segments)-1] {
		next, ok := asMap(current[seg])
		if !ok {
			return
		}
		current[seg] = next
		current = next
	}
	delete(current, segments[len(segments)-1])
}

// IsEmpty reports whether v is nil or an empty map, slice or string.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case map[string]string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

func lookup(data any, segments []string) (any, bool) {
	current := data
	for _, seg := range segments {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case map[string]string:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			m, ok := asMap(node)
			if !ok {
				return nil, false
			}
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			current = v
		}
	}
	return current, true
}

// asMap returns v as a mutable map[string]any. Plain maps are returned as
// is; any other non-nil map with string keys is copied into a new one.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, m != nil
	}
	m, ok := cloneNode(v).(map[string]any)
	return m, ok && m != nil
}

// CloneTree deep-copies a nested option tree. Every string-keyed map,
// including named map types, becomes map[string]any so dot-path Set can
// extend it in place.
func CloneTree(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = cloneNode(v)
	}
	return result
}

func cloneNode(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneTree(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m
	case []any:
		return append([]any(nil), t...)
	case []string:
		return append([]string(nil), t...)
	default:
		return cloneStringKeyedMap(v)
	}
}

func cloneStringKeyedMap(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return v
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = cloneNode(iter.Value().Interface())
	}
	return m
}
