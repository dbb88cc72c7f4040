// Package middleware provides HTTP middleware for the LiveJourney API.
//
// Middlewares compose via Chain and follow the standard
// func(http.Handler) http.Handler shape. Request-scoped values
// (request ID, authenticated user) travel through the request context
// under unexported key types to avoid collisions.
package middleware
