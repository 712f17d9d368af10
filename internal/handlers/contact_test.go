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

type stubContactRepo struct {
	created *models.ContactSubmission
	err     error
}

func (s *stubContactRepo) Create(ctx context.Context, c *models.ContactSubmission) error {
	if s.err != nil {
		return s.err
	}
	c.ID = 7
	c.CreatedAt = time.Now()
	s.created = c
	return nil
}

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Submit(rr, req)
	return rr
}

func TestContactSubmit_Valid(t *testing.T) {
	repo := &stubContactRepo{}
	h := NewContactHandler(repo, nil)

	rr := postContact(h, `{"name":"Kai","email":"kai@example.com","message":"Help with my site"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if repo.created == nil {
		t.Fatal("submission was not persisted")
	}

	var resp models.ContactSubmission
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 7 || resp.Name != "Kai" {
		t.Errorf("unexpected persisted record: %+v", resp)
	}
}

func TestContactSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty name", `{"name":"","email":"a@b.com","message":"hi"}`, "name"},
		{"missing email", `{"name":"Kai","email":"","message":"hi"}`, "email"},
		{"invalid email", `{"name":"Kai","email":"not-an-email","message":"hi"}`, "email"},
		{"empty message", `{"name":"Kai","email":"a@b.com","message":"  "}`, "message"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubContactRepo{}
			h := NewContactHandler(repo, nil)

			rr := postContact(h, tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["field"] != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, resp["field"])
			}
			if resp["message"] == "" {
				t.Error("error message missing")
			}
			if repo.created != nil {
				t.Error("invalid submission must not be persisted")
			}
		})
	}
}
