package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
)

const bearerPrefix = "Bearer "

// BearerAuthMiddleware enforces a static bearer token on every request.
// When no token is configured, authentication is disabled and requests pass
// straight through. Token issuance is out of scope; this only compares.
func BearerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := config.GetAuthToken()
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) ||
			subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(auth, bearerPrefix)), []byte(token)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			errMsg := "Invalid or missing bearer token"
			_ = json.NewEncoder(w).Encode(model.Response{
				Error:   &errMsg,
				Message: "Unauthorized",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
