package httpclient

import (
	"encoding/base64"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey
)

// AuthConfig describes static credentials sent with every request.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey). Defaults to "X-API-Key".
	Name string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// SetDefaultAuth stores the credentials as default options: an
// authorization or API key header, or a default search parameter.
func (c *Client) SetDefaultAuth(a *AuthConfig) *Client {
	if a == nil {
		return c
	}
	switch a.Type {
	case AuthBearer:
		c.SetDefaultBearerToken(a.Token)
	case AuthBasic:
		c.SetDefaultBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "X-API-Key"
		}
		if a.In == "query" {
			c.SetDefaultOption(OptionSearchParams+"."+name, a.Key)
		} else {
			c.SetDefaultHeader(name, a.Key)
		}
	}
	return c
}

// SetDefaultBasicAuth sends "Authorization: Basic ..." with every request.
func (c *Client) SetDefaultBasicAuth(username, password string) *Client {
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return c.SetDefaultHeader("authorization", "Basic "+credentials)
}
