package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"edify-backend/internal/models"
)

type contactRepository interface {
	Create(ctx context.Context, c *models.ContactSubmission) error
}

type ContactHandler struct {
	contactRepo contactRepository
	redis       *redis.Client
}

func NewContactHandler(contactRepo contactRepository, redisClient *redis.Client) *ContactHandler {
	return &ContactHandler{contactRepo: contactRepo, redis: redisClient}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFieldError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if message, field := validateContact(&req); field != "" {
		writeFieldError(w, http.StatusBadRequest, message, field)
		return
	}

	submission := &models.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}

	if err := h.contactRepo.Create(r.Context(), submission); err != nil {
		log.Printf("failed to persist contact submission: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	h.queueNotification(submission)

	writeJSON(w, http.StatusCreated, submission)
}

// validateContact returns a message and the offending field name, or an
// empty field when the payload is valid.
func validateContact(req *models.ContactRequest) (string, string) {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required", "name"
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "Email is required", "email"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Email is invalid", "email"
	}
	if strings.TrimSpace(req.Message) == "" {
		return "Message is required", "message"
	}
	return "", ""
}

// queueNotification hands the submission to the async pipeline so the SMTP
// call never delays the response.
func (h *ContactHandler) queueNotification(c *models.ContactSubmission) {
	if h.redis == nil {
		return
	}

	data, err := json.Marshal(c)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.redis.LPush(ctx, "queue:contact-notification", data).Err(); err != nil {
			log.Printf("failed to enqueue contact notification: %v", err)
		}
	}()
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeFieldError(w http.ResponseWriter, status int, message, field string) {
	body := map[string]string{"message": message}
	if field != "" {
		body["field"] = field
	}
	writeJSON(w, status, body)
}
