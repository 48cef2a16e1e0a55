package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/risan/http-client/httpclient"
)

type testUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/1" {
			t.Errorf("expected /users/1, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Accept"); ct != "application/json" {
			t.Errorf("expected Accept: application/json, got %s", ct)
		}
		writeJSON(w, http.StatusOK, testUser{Name: "Alice", Email: "alice@example.com"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	resp, err := Get[testUser](context.Background(), c, "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Name != "Alice" {
		t.Errorf("expected Alice, got %s", resp.Data.Name)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Headers.ContentType(); got != "application/json" {
		t.Errorf("expected application/json, got %s", got)
	}
}

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type: application/json, got %s", ct)
		}
		var user testUser
		_ = json.NewDecoder(r.Body).Decode(&user)
		user.Email = "bob@example.com"
		writeJSON(w, http.StatusCreated, user)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)

	resp, err := Post[testUser](context.Background(), c, "/users", testUser{Name: "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Data.Name != "Bob" {
		t.Errorf("expected Bob, got %s", resp.Data.Name)
	}
	if resp.Data.Email != "bob@example.com" {
		t.Errorf("expected bob@example.com, got %s", resp.Data.Email)
	}
}

func TestPut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, testUser{Name: "Updated"})
	}))
	defer srv.Close()

	resp, err := Put[testUser](context.Background(), New(srv.URL, nil), "/users/1", testUser{Name: "Updated"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Name != "Updated" {
		t.Errorf("expected Updated, got %s", resp.Data.Name)
	}
}

func TestPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, testUser{Name: "Patched"})
	}))
	defer srv.Close()

	resp, err := Patch[testUser](context.Background(), New(srv.URL, nil), "/users/1", map[string]string{"name": "Patched"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Name != "Patched" {
		t.Errorf("expected Patched, got %s", resp.Data.Name)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}))
	defer srv.Close()

	resp, err := Delete[map[string]bool](context.Background(), New(srv.URL, nil), "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Data["deleted"] {
		t.Error("expected deleted=true")
	}
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := Delete[map[string]bool](context.Background(), New(srv.URL, nil), "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Data != nil {
		t.Errorf("expected nil data, got %v", resp.Data)
	}
}

func TestGet_WithQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("expected limit=10, got %q", got)
		}
		writeJSON(w, http.StatusOK, []testUser{{Name: "Alice"}})
	}))
	defer srv.Close()

	resp, err := Get[[]testUser](context.Background(), New(srv.URL, nil), "/users",
		WithQuery(map[string]string{"page": "2", "limit": "10"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 user, got %d", len(resp.Data))
	}
}

func TestGet_WithHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("expected X-Request-ID=abc-123, got %q", got)
		}
		writeJSON(w, http.StatusOK, testUser{Name: "Alice"})
	}))
	defer srv.Close()

	_, err := Get[testUser](context.Background(), New(srv.URL, nil), "/users/1",
		WithHeaders(map[string]string{"X-Request-ID": "abc-123"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_DefaultBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer override" {
			t.Errorf("expected Bearer override, got %q", got)
		}
		writeJSON(w, http.StatusOK, testUser{Name: "Alice"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.HTTP().SetDefaultBearerToken("default")

	_, err := Get[testUser](context.Background(), c, "/users/1",
		WithHeaders(map[string]string{"Authorization": "Bearer override"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_ErrorResponse_StillDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	resp, err := Get[map[string]string](context.Background(), New(srv.URL, nil), "/users/999",
		WithErrorPaths("error", ""),
	)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
	if resp == nil || resp.Data["error"] != "not found" {
		t.Fatalf("expected decoded error body, got %+v", resp)
	}
	e, _ := httpclient.AsError(err)
	if e.Message != "not found" {
		t.Errorf("expected message from body, got %q", e.Message)
	}
}

func TestGet_ErrorResponse_TextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	resp, err := Get[map[string]string](context.Background(), New(srv.URL, nil), "/users/1")
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if resp != nil {
		t.Errorf("expected nil response for a text error body, got %+v", resp)
	}
	if e, ok := httpclient.AsError(err); !ok || e.Response == nil || e.Response.Body != "upstream down" {
		t.Errorf("error = %v, want text body on the error response", err)
	}
}

func TestPost_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": map[string][]string{"email": {"required"}},
		})
	}))
	defer srv.Close()

	_, err := Post[testUser](context.Background(), New(srv.URL, nil), "/users", testUser{Name: "Bob"},
		WithErrorPaths("", "errors"),
	)
	if err == nil {
		t.Fatal("expected error for 422")
	}
	fields := ValidationErrors(err)
	if fields == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := fields["email"]; !ok {
		t.Errorf("expected email field, got %v", fields)
	}
	if IsRetryable(err) {
		t.Error("422 should not be retryable")
	}
}

func TestNew_KeepsExplicitHeaders(t *testing.T) {
	c := New("https://api.example.com", map[string]any{
		"headers": map[string]any{"Accept": "application/vnd.api+json"},
	})

	headers := c.HTTP().MergeOptions(httpclient.Options{}).Headers
	if got := headers.Get("accept"); got != "application/vnd.api+json" {
		t.Errorf("expected explicit accept, got %v", got)
	}
	if got := headers.ContentType(); got != "application/json" {
		t.Errorf("expected application/json content type, got %q", got)
	}
}

func TestNewFromClient(t *testing.T) {
	hc := httpclient.New("https://api.example.com", nil)

	c := NewFromClient(hc)
	if c.HTTP() != hc {
		t.Error("HTTP() should return the underlying client")
	}
}
