// Package version reports the build version of the client and renders it
// as a User-Agent product token.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/risan/http-client/version.Version=1.0.0"
//
// Without them the commit and dirty flag fall back to the VCS settings
// recorded by the Go toolchain.
package version
