package app

import (
	"net/http"
	"time"

	"github.com/digitalive/digitalive/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Request logging with method, path, and duration
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debugf("%s %s took %s", req.Method, req.URL.Path, time.Since(start))
		})
	})
}
