// Package util provides generic helpers shared across the module.
//
// It includes slice and map helpers and dot-path access to nested
// map[string]any trees, such as client default options:
//
//	opts := map[string]any{}
//	util.Set(opts, "headers.authorization", "Bearer secret")
//	util.Get(opts, "headers.authorization", nil) // "Bearer secret"
//	util.Remove(opts, "headers.authorization")   // opts == {"headers": {}}
package util
