package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"edify-backend/internal/models"
)

type stubBlogRepo struct {
	posts map[string]*models.BlogPost
}

func (s *stubBlogRepo) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	var published []*models.BlogPost
	for _, p := range s.posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *stubBlogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	if p, ok := s.posts[slug]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func getBlog(h *BlogHandler, slug string) *httptest.ResponseRecorder {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)

	req := httptest.NewRequest(http.MethodGet, "/api/blog/"+slug, nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.GetBySlug(rr, req)
	return rr
}

func TestBlogGetBySlug_RoundTrip(t *testing.T) {
	repo := &stubBlogRepo{posts: map[string]*models.BlogPost{
		"hello-world": {ID: 1, Slug: "hello-world", Title: "Hello World", Published: true},
	}}
	h := NewBlogHandler(repo)

	rr := getBlog(h, "hello-world")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var post models.BlogPost
	if err := json.NewDecoder(rr.Body).Decode(&post); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if post.Slug != "hello-world" || post.Title != "Hello World" {
		t.Errorf("unexpected post: %+v", post)
	}
}

func TestBlogGetBySlug_NotFound(t *testing.T) {
	h := NewBlogHandler(&stubBlogRepo{posts: map[string]*models.BlogPost{}})

	rr := getBlog(h, "does-not-exist")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestBlogList_OnlyPublished(t *testing.T) {
	repo := &stubBlogRepo{posts: map[string]*models.BlogPost{
		"live":  {ID: 1, Slug: "live", Published: true},
		"draft": {ID: 2, Slug: "draft", Published: false},
	}}
	h := NewBlogHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var posts []models.BlogPost
	if err := json.NewDecoder(rr.Body).Decode(&posts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Errorf("expected only the published post, got %+v", posts)
	}
}

func TestBlogList_EmptyIsArray(t *testing.T) {
	h := NewBlogHandler(&stubBlogRepo{posts: map[string]*models.BlogPost{}})

	req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
