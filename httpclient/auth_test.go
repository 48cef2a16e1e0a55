package httpclient

import (
	"context"
	"testing"
)

func TestClient_SetDefaultAuth(t *testing.T) {
	tests := []struct {
		name       string
		auth       *AuthConfig
		wantHeader string
		wantValue  string
	}{
		{"bearer", BearerAuth("secret"), "authorization", "Bearer secret"},
		{"basic", BasicAuth("user", "pass"), "authorization", "Basic dXNlcjpwYXNz"},
		{"api key", APIKeyAuth("k-123"), "x-api-key", "k-123"},
		{"api key custom name", &AuthConfig{Type: AuthAPIKey, Key: "k-123"}, "x-api-key", "k-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []recordedCall
			c := New("", nil, WithTransport(fakeTransport(&calls, jsonRaw(200, `{}`), nil)))
			c.SetDefaultAuth(tt.auth)

			if _, err := c.Get(context.Background(), "x", Options{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := calls[0].opts.Headers.GetString(tt.wantHeader); got != tt.wantValue {
				t.Errorf("%s = %q, want %q", tt.wantHeader, got, tt.wantValue)
			}
		})
	}
}

func TestClient_SetDefaultAuth_QueryKey(t *testing.T) {
	var calls []recordedCall
	c := New("", nil, WithTransport(fakeTransport(&calls, jsonRaw(200, `{}`), nil)))
	c.SetDefaultAuth(APIKeyAuthQuery("k-123", "api_key"))

	if _, err := c.Get(context.Background(), "x", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params, err := searchParams(calls[0].opts.Extra)
	if err != nil {
		t.Fatalf("searchParams() error = %v", err)
	}
	if params.Get("api_key") != "k-123" {
		t.Errorf("params = %v", params)
	}
	if calls[0].opts.Headers.Has("authorization") {
		t.Error("query key should not set an authorization header")
	}
}

func TestClient_SetDefaultAuth_NilAndNone(t *testing.T) {
	c := New("", nil, WithTransport(TransportFunc(nil)))
	c.SetDefaultAuth(nil)
	c.SetDefaultAuth(&AuthConfig{Type: AuthNone})
	if len(c.DefaultOptions()) != 0 {
		t.Errorf("DefaultOptions() = %v, want empty", c.DefaultOptions())
	}
}

func TestClient_RemoveDefaultBearerToken(t *testing.T) {
	c := New("", nil, WithTransport(TransportFunc(nil)))
	c.SetDefaultBearerToken("secret").RemoveDefaultBearerToken()

	headers, ok := c.DefaultOptions()[OptionHeaders].(map[string]any)
	if !ok {
		t.Fatalf("headers container = %#v, want empty map", c.DefaultOptions()[OptionHeaders])
	}
	if len(headers) != 0 {
		t.Errorf("headers = %v, want empty", headers)
	}
}
