package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func agentAuthProbe(apiKey, header string) (*httptest.ResponseRecorder, bool) {
	reached := false
	handler := AgentAuth(apiKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/agent/intel", nil)
	if header != "" {
		req.Header.Set(AgentAPIKeyHeader, header)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, reached
}

func TestAgentAuth(t *testing.T) {
	tests := []struct {
		name        string
		configured  string
		header      string
		wantStatus  int
		wantReached bool
	}{
		{"not configured", "", "anything", http.StatusServiceUnavailable, false},
		{"missing header", "secret", "", http.StatusUnauthorized, false},
		{"wrong key", "secret", "wrong", http.StatusUnauthorized, false},
		{"correct key", "secret", "secret", http.StatusOK, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, reached := agentAuthProbe(tc.configured, tc.header)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if reached != tc.wantReached {
				t.Errorf("expected handler reached=%v, got %v", tc.wantReached, reached)
			}
		})
	}
}
