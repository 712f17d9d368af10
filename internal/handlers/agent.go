package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"edify-backend/internal/models"
)

type agentRepository interface {
	CreateIntel(ctx context.Context, in *models.AgentIntelRequest) (*models.AgentIntel, error)
	ListIntel(ctx context.Context, agentID string, since *time.Time) ([]*models.AgentIntel, error)
	MarkIntelRead(ctx context.Context, id int) error
	UpsertAvailability(ctx context.Context, in *models.AgentAvailabilityRequest) (*models.AgentAvailability, error)
	GetAvailability(ctx context.Context, agentID string) (*models.AgentAvailability, error)
	ListAvailability(ctx context.Context) ([]*models.AgentAvailability, error)
}

// AgentHandler serves the inter-agent mailbox and availability CRUD. It is
// plain storage access; any orchestration lives in the agents themselves.
type AgentHandler struct {
	agentRepo agentRepository
}

func NewAgentHandler(agentRepo agentRepository) *AgentHandler {
	return &AgentHandler{agentRepo: agentRepo}
}

func (h *AgentHandler) CreateIntel(w http.ResponseWriter, r *http.Request) {
	var req models.AgentIntelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	for field, value := range map[string]string{
		"from_agent_id": req.FromAgentID,
		"to_agent_id":   req.ToAgentID,
		"topic":         req.Topic,
		"payload":       req.Payload,
	} {
		if strings.TrimSpace(value) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": field + " is required"})
			return
		}
	}

	intel, err := h.agentRepo.CreateIntel(r.Context(), &req)
	if err != nil {
		log.Printf("failed to create agent intel: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, intel)
}

func (h *AgentHandler) ListIntel(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agentId")
	if agentID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agentId is required"})
		return
	}

	var since *time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		t, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be an RFC 3339 timestamp"})
			return
		}
		since = &t
	}

	intel, err := h.agentRepo.ListIntel(r.Context(), agentID, since)
	if err != nil {
		log.Printf("failed to list agent intel: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if intel == nil {
		intel = []*models.AgentIntel{}
	}
	writeJSON(w, http.StatusOK, intel)
}

func (h *AgentHandler) MarkIntelRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid intel ID"})
		return
	}

	if err := h.agentRepo.MarkIntelRead(r.Context(), id); err != nil {
		log.Printf("failed to mark intel %d read: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AgentHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req models.AgentAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.AgentID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agent_id is required"})
		return
	}
	if req.Status == "" {
		req.Status = "offline"
	}

	availability, err := h.agentRepo.UpsertAvailability(r.Context(), &req)
	if err != nil {
		log.Printf("failed to update agent availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

func (h *AgentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentId")

	availability, err := h.agentRepo.GetAvailability(r.Context(), agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Agent not found"})
			return
		}
		log.Printf("failed to get agent availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

func (h *AgentHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.agentRepo.ListAvailability(r.Context())
	if err != nil {
		log.Printf("failed to list agent availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	if availability == nil {
		availability = []*models.AgentAvailability{}
	}
	writeJSON(w, http.StatusOK, availability)
}
