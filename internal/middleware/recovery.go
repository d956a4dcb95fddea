package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"invoice-backend/internal/models"
	"invoice-backend/pkg/utils"
)

// PanicRecovery turns handler panics into the same JSON error shape the
// handlers emit, instead of tearing down the connection.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
