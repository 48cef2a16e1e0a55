package util

import (
	"sort"
	"strings"
)

// Contains checks if a slice contains a value.
func Contains[T comparable](slice []T, val T) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LowerCaseKeys returns a shallow copy of m with every key lower-cased.
// When two keys fold to the same name, the one sorting last wins so the
// result does not depend on map iteration order.
func LowerCaseKeys[V any](m map[string]V) map[string]V {
	result := make(map[string]V, len(m))
	for _, k := range SortedKeys(m) {
		result[strings.ToLower(k)] = m[k]
	}
	return result
}

// CloneMap returns a shallow copy of m. A nil map yields an empty map.
func CloneMap[V any](m map[string]V) map[string]V {
	result := make(map[string]V, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
