package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"edify-backend/internal/models"
)

type analyticsRepository interface {
	CreatePageView(ctx context.Context, v *models.PageView) error
	TopPages(ctx context.Context, since time.Time, limit int) (map[string]int, error)
}

type AnalyticsHandler struct {
	analyticsRepo analyticsRepository
}

func NewAnalyticsHandler(analyticsRepo analyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsRepo: analyticsRepo}
}

func (h *AnalyticsHandler) TrackPageView(w http.ResponseWriter, r *http.Request) {
	var req models.PageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if req.Path == "" {
		req.Path = "/"
	}

	view := &models.PageView{
		Path:      req.Path,
		Referrer:  req.Referrer,
		SessionID: req.SessionID,
	}
	if ua := r.UserAgent(); ua != "" {
		view.UserAgent = &ua
	}
	// RemoteAddr already holds the client IP via the RealIP middleware.
	if ip := r.RemoteAddr; ip != "" {
		view.IPAddress = &ip
	}

	if err := h.analyticsRepo.CreatePageView(r.Context(), view); err != nil {
		log.Printf("failed to record page view: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": view.ID})
}

// TopPages reports per-path view counts for the CRM dashboard. Served
// behind the agent API key.
func (h *AnalyticsHandler) TopPages(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 || days > 365 {
		days = 30
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	since := time.Now().AddDate(0, 0, -days)
	counts, err := h.analyticsRepo.TopPages(r.Context(), since, limit)
	if err != nil {
		log.Printf("failed to aggregate page views: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"since": since, "pages": counts})
}
