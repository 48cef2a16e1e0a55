// Package rest provides typed JSON helpers on top of httpclient.
//
// Request bodies are encoded as JSON and successful responses are decoded
// into the requested type:
//
//	client := rest.New("https://api.example.com", nil)
//	client.HTTP().SetDefaultBearerToken("token")
//
//	// Typed GET
//	user, err := rest.Get[User](ctx, client, "/users/123")
//
//	// Typed POST
//	created, err := rest.Post[User](ctx, client, "/users", CreateUserRequest{Name: "Alice"})
//
// Failures are *httpclient.Error values; when the error body is JSON it is
// also decoded into the requested type and returned alongside the error.
package rest
