package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"edify-backend/internal/models"
)

type blogRepository interface {
	ListPublished(ctx context.Context) ([]*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

type BlogHandler struct {
	blogRepo blogRepository
}

func NewBlogHandler(blogRepo blogRepository) *BlogHandler {
	return &BlogHandler{blogRepo: blogRepo}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogRepo.ListPublished(r.Context())
	if err != nil {
		log.Printf("failed to list blog posts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	if posts == nil {
		posts = []*models.BlogPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.blogRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
			return
		}
		log.Printf("failed to fetch blog post %q: %v", slug, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}
