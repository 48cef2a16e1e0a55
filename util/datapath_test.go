package util

import (
	"reflect"
	"testing"
)

func TestGet(t *testing.T) {
	data := map[string]any{
		"message": "ooops",
		"errors": map[string]any{
			"email": []any{"e1", "e2"},
		},
		"labels": map[string]string{"env": "prod"},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"top level", "message", "ooops"},
		{"nested", "errors.email", []any{"e1", "e2"}},
		{"slice index", "errors.email.1", "e2"},
		{"string map", "labels.env", "prod"},
		{"missing", "errors.name", "fallback"},
		{"index out of range", "errors.email.5", "fallback"},
		{"through primitive", "message.x", "fallback"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Get(data, tc.path, "fallback")
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Get(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestHas(t *testing.T) {
	data := map[string]any{"headers": map[string]any{"accept": nil}}
	if !Has(data, "headers.accept") {
		t.Error("expected headers.accept to exist even with nil value")
	}
	if Has(data, "headers.content-type") {
		t.Error("expected headers.content-type to be missing")
	}
	if Has("scalar", "x") {
		t.Error("scalar values have no paths")
	}
}

func TestSet(t *testing.T) {
	m := map[string]any{
		"headers": map[string]any{"content-type": "application/json"},
	}

	Set(m, "mode", "cors")
	Set(m, "headers.content-type", "text/plain")
	Set(m, "a.b.c", 1)

	want := map[string]any{
		"headers": map[string]any{"content-type": "text/plain"},
		"mode":    "cors",
		"a":       map[string]any{"b": map[string]any{"c": 1}},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("after Set = %v, want %v", m, want)
	}
}

func TestSet_ReplacesScalarParent(t *testing.T) {
	m := map[string]any{"headers": "oops"}
	Set(m, "headers.accept", "text/plain")
	if Get(m, "headers.accept", nil) != "text/plain" {
		t.Errorf("expected nested value, got %v", m)
	}
}

func TestRemove_LeavesEmptyParents(t *testing.T) {
	m := map[string]any{
		"mode":    "cors",
		"headers": map[string]any{"content-type": "application/json"},
	}

	Remove(m, "mode")
	Remove(m, "headers.content-type")
	Remove(m, "missing.path")

	want := map[string]any{"headers": map[string]any{}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("after Remove = %v, want %v", m, want)
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{"", true},
		{map[string]any{}, true},
		{[]any{}, true},
		{map[string]any{"a": 1}, false},
		{"x", false},
		{0, false},
	}
	for _, tc := range tests {
		if got := IsEmpty(tc.v); got != tc.want {
			t.Errorf("IsEmpty(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestCloneTree(t *testing.T) {
	src := map[string]any{
		"headers": map[string]string{"accept": "text/plain"},
		"nested":  map[string]any{"a": map[string]any{"b": 1}},
		"list":    []string{"x"},
	}
	c := CloneTree(src)

	Set(c, "headers.authorization", "Bearer t")
	Set(c, "nested.a.b", 2)

	if got := Get(c, "headers.accept", nil); got != "text/plain" {
		t.Errorf("headers.accept = %v, want text/plain", got)
	}
	if got := Get(c, "headers.authorization", nil); got != "Bearer t" {
		t.Errorf("headers.authorization = %v, want Bearer t", got)
	}
	if _, ok := src["headers"].(map[string]string)["authorization"]; ok {
		t.Error("source headers were modified")
	}
	if got := Get(src, "nested.a.b", nil); got != 1 {
		t.Errorf("source nested.a.b = %v, want 1", got)
	}
}

type headerSet map[string]any

func TestSet_KeepsEntriesOfOtherMapTypes(t *testing.T) {
	tests := []struct {
		name    string
		headers any
	}{
		{"named map", headerSet{"x-keep": "1"}},
		{"string map", map[string]string{"x-keep": "1"}},
		{"string list map", map[string][]string{"x-keep": {"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := map[string]any{"headers": tt.headers}
			Set(m, "headers.x-new", "2")

			headers, ok := m["headers"].(map[string]any)
			if !ok {
				t.Fatalf("headers = %T, want map[string]any", m["headers"])
			}
			if headers["x-new"] != "2" {
				t.Errorf("x-new = %v, want 2", headers["x-new"])
			}
			if !Has(m, "headers.x-keep") {
				t.Errorf("x-keep was dropped: %v", headers)
			}
		})
	}
}

func TestRemove_OtherMapTypes(t *testing.T) {
	m := map[string]any{"headers": headerSet{"a": "1", "b": "2"}}
	Remove(m, "headers.a")

	if Has(m, "headers.a") {
		t.Error("headers.a was not removed")
	}
	if got := Get(m, "headers.b", nil); got != "2" {
		t.Errorf("headers.b = %v, want 2", got)
	}
}

func TestCloneTree_NamedMaps(t *testing.T) {
	src := map[string]any{
		"headers": headerSet{"accept": []string{"text/plain"}},
		"query":   map[string][]string{"tag": {"a", "b"}},
	}
	c := CloneTree(src)

	if _, ok := c["headers"].(map[string]any); !ok {
		t.Errorf("headers = %T, want map[string]any", c["headers"])
	}
	if _, ok := c["query"].(map[string]any); !ok {
		t.Errorf("query = %T, want map[string]any", c["query"])
	}

	Set(c, "headers.accept", "application/json")
	if got := src["headers"].(headerSet)["accept"]; len(got.([]string)) != 1 {
		t.Errorf("source headers were modified: %v", got)
	}
}
