package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AgentAPIKeyHeader carries the shared secret for the inter-agent API.
const AgentAPIKeyHeader = "x-edify-api-key"

// AgentAuth guards the agent mailbox routes. With no key configured the
// mailbox is considered unprovisioned and answers 503; a missing or wrong
// header answers 401.
func AgentAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				writeError(w, http.StatusServiceUnavailable, "Agent API not configured")
				return
			}

			provided := r.Header.Get(AgentAPIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "Unauthorized: Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
