package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"edify-backend/internal/models"
	"edify-backend/internal/services"
)

// upstreamCallTimeout bounds one full upstream completion call, streaming
// included.
const upstreamCallTimeout = 60 * time.Second

type auditModel interface {
	StreamConversation(ctx context.Context, stage int, transcript []models.ChatMessage) (services.ReplyStream, error)
	Analyze(ctx context.Context, req models.AnalyzeRequest) (string, error)
}

type AuditHandler struct {
	ai    auditModel // nil when the upstream integration is not configured
	redis *redis.Client
}

func NewAuditHandler(ai auditModel, redisClient *redis.Client) *AuditHandler {
	return &AuditHandler{ai: ai, redis: redisClient}
}

// Chat bridges the browser chat widget to the upstream model. The reply
// streams back as SSE: `content` fragments followed by exactly one terminal
// frame, `done` with the full concatenated reply on success or `error` if
// the upstream fails after streaming began. Failures before the first
// written byte answer with a buffered JSON error instead.
func (h *AuditHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		log.Println("audit chat requested but AI integration is not configured")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "AI chat is temporarily unavailable. Please try again later or contact us directly.",
		})
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Messages must be an array"})
		return
	}

	transcript := req.Messages
	if len(transcript) == 0 {
		transcript = []models.ChatMessage{{Role: "user", Content: services.OpeningUserTurn}}
	}

	// One inbound request maps to one upstream call; a client disconnect
	// cancels it through the request context.
	ctx, cancel := context.WithTimeout(r.Context(), upstreamCallTimeout)
	defer cancel()

	stream, err := h.ai.StreamConversation(ctx, req.Stage, transcript)
	if err != nil {
		log.Printf("audit chat: failed to open upstream stream: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process request"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)
	wrote := false

	writeEvent := func(payload interface{}) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(w, "data: %s\n\n", data)
		if flusher != nil {
			flusher.Flush()
		}
		wrote = true
	}

	var full strings.Builder
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			writeEvent(map[string]interface{}{"done": true, "fullResponse": full.String()})
			break
		}
		if err != nil {
			log.Printf("audit chat: upstream stream failed: %v", err)
			if !wrote {
				// Nothing sent yet, a buffered error is still possible.
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process request"})
				return
			}
			// Whatever already streamed stays delivered; only the terminal
			// frame differs.
			writeEvent(map[string]string{"error": "Failed to process request"})
			return
		}
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		writeEvent(map[string]string{"content": chunk})
	}

	h.logConversation(req.Stage, transcript, full.String())
}

// logConversation queues the finished exchange for CRM persistence. It runs
// off the request path and its failure never reaches the client.
func (h *AuditHandler) logConversation(stage int, transcript []models.ChatMessage, reply string) {
	if h.redis == nil || reply == "" {
		return
	}

	record := models.ChatConversation{Stage: stage, Transcript: transcript, Reply: reply}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.redis.LPush(ctx, "queue:conversation-log", data).Err(); err != nil {
			log.Printf("failed to enqueue conversation log: %v", err)
		}
	}()
}

// Analyze runs the one-shot digital-presence analysis (no streaming).
func (h *AuditHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "AI analysis is temporarily unavailable. Please contact us directly for a consultation.",
		})
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), upstreamCallTimeout)
	defer cancel()

	analysis, err := h.ai.Analyze(ctx, req)
	if err != nil {
		log.Printf("audit analyze: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to analyze"})
		return
	}

	writeJSON(w, http.StatusOK, models.AnalyzeResponse{Analysis: analysis})
}
