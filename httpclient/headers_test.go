package httpclient

import (
	"net/http"
	"reflect"
	"testing"
)

func TestNewHeaders_LowerCasesKeys(t *testing.T) {
	h := NewHeaders(map[string]any{
		"Content-Type": "application/json",
		"X-Trace-ID":   "abc",
	})

	for _, key := range []string{"content-type", "Content-Type", "CONTENT-TYPE"} {
		if got := h.Get(key); got != "application/json" {
			t.Errorf("Get(%q) = %v, want application/json", key, got)
		}
		if !h.Has(key) {
			t.Errorf("Has(%q) = false, want true", key)
		}
	}
	for k := range h {
		if k != "content-type" && k != "x-trace-id" {
			t.Errorf("unexpected key %q", k)
		}
	}
}

func TestHeaders_GetFallback(t *testing.T) {
	h := NewHeaders(nil)

	if got := h.Get("missing"); got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
	if got := h.Get("missing", "fallback"); got != "fallback" {
		t.Errorf("Get() = %v, want fallback", got)
	}
	if h.Has("missing") {
		t.Error("Has() = true, want false")
	}
	if got := h.ContentType(); got != "" {
		t.Errorf("ContentType() = %q, want empty", got)
	}
}

func TestHeaders_GetString(t *testing.T) {
	h := NewHeaders(map[string]any{
		"accept": []string{"application/json", "text/plain"},
		"x-n":    42,
	})

	if got := h.GetString("Accept"); got != "application/json" {
		t.Errorf("GetString(accept) = %q, want application/json", got)
	}
	if got := h.GetString("x-n"); got != "42" {
		t.Errorf("GetString(x-n) = %q, want 42", got)
	}
}

func TestHeadersFromHTTP(t *testing.T) {
	native := http.Header{}
	native.Set("Content-Type", "application/json")
	native.Add("Set-Cookie", "a=1")
	native.Add("Set-Cookie", "b=2")

	h := HeadersFromHTTP(native)

	if got := h.ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want application/json", got)
	}
	want := []string{"a=1", "b=2"}
	if got := h.Get("set-cookie"); !reflect.DeepEqual(got, want) {
		t.Errorf("Get(set-cookie) = %v, want %v", got, want)
	}
}

func TestHeaders_SetDelClone(t *testing.T) {
	h := Headers{}
	h.Set("X-Key", "v")
	c := h.Clone()
	h.Del("x-key")

	if h.Has("x-key") {
		t.Error("Del() did not remove header")
	}
	if got := c.Get("x-key"); got != "v" {
		t.Errorf("clone Get() = %v, want v", got)
	}
}

func TestHeaders_HTTPHeader(t *testing.T) {
	h := NewHeaders(map[string]any{
		"accept":       []string{"application/json", "text/plain"},
		"content-type": "text/plain",
	})

	native := h.HTTPHeader()

	if got := native.Values("Accept"); !reflect.DeepEqual(got, []string{"application/json", "text/plain"}) {
		t.Errorf("Accept = %v", got)
	}
	if got := native.Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}
}
