package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edify-backend/internal/models"
)

type stubAnalyticsRepo struct {
	created *models.PageView
}

func (s *stubAnalyticsRepo) CreatePageView(ctx context.Context, v *models.PageView) error {
	v.ID = 42
	v.CreatedAt = time.Now()
	s.created = v
	return nil
}

func (s *stubAnalyticsRepo) TopPages(ctx context.Context, since time.Time, limit int) (map[string]int, error) {
	return map[string]int{"/services": 12}, nil
}

func TestTrackPageView(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	h := NewAnalyticsHandler(repo)

	body := `{"path":"/portfolio","referrer":"https://google.com","sessionId":"abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/pageview", bytes.NewReader([]byte(body)))
	req.Header.Set("User-Agent", "test-agent/1.0")
	rr := httptest.NewRecorder()
	h.TrackPageView(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp["success"])
	}
	if resp["id"] != float64(42) {
		t.Errorf("expected id 42, got %v", resp["id"])
	}

	if repo.created.Path != "/portfolio" {
		t.Errorf("unexpected path %q", repo.created.Path)
	}
	if repo.created.UserAgent == nil || *repo.created.UserAgent != "test-agent/1.0" {
		t.Error("user agent should come from the request header")
	}
	if repo.created.SessionID == nil || *repo.created.SessionID != "abc123" {
		t.Error("session id not captured")
	}
}

func TestTrackPageView_DefaultsPath(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	h := NewAnalyticsHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/pageview", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	h.TrackPageView(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if repo.created.Path != "/" {
		t.Errorf("expected default path /, got %q", repo.created.Path)
	}
}

func TestTopPages(t *testing.T) {
	h := NewAnalyticsHandler(&stubAnalyticsRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/top-pages?days=7", nil)
	rr := httptest.NewRecorder()
	h.TopPages(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Pages map[string]int `json:"pages"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Pages["/services"] != 12 {
		t.Errorf("unexpected aggregation: %v", resp.Pages)
	}
}
