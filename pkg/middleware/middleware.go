// Package middleware holds HTTP middleware shared by the web frontend.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler
