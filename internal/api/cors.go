package api

import (
	"net/http"

	"github.com/rs/cors"
)

// WithCORS wraps h so the browser client can call the API from the given
// origins. "*" allows any origin.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "token"},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(h)
}
