// Package binder decodes HTTP request bodies into typed structs.
//
// JSON returns a binding func that enforces the application/json media
// type, caps body size, rejects unknown fields and trailing data, and
// strips control characters from decoded strings before the handler
// sees them.
package binder
