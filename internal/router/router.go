package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"edify-backend/internal/handlers"
	"edify-backend/internal/middleware"
)

func New(
	auditHandler *handlers.AuditHandler,
	contactHandler *handlers.ContactHandler,
	blogHandler *handlers.BlogHandler,
	agentHandler *handlers.AgentHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	agentAPIKey string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Contact form rate limiter (10 req/min per IP)
	contactLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── AI Audit Routes ────
		r.Post("/audit-chat", auditHandler.Chat)
		r.Post("/audit-analyze", auditHandler.Analyze)

		// ──── Contact Form ────
		r.Group(func(r chi.Router) {
			r.Use(contactLimiter.Middleware)
			r.Post("/contact", contactHandler.Submit)
		})

		// ──── Blog Routes ────
		r.Get("/blog", blogHandler.List)
		r.Get("/blog/{slug}", blogHandler.GetBySlug)

		// ──── Agent Communication (API key protected) ────
		r.Route("/agent", func(r chi.Router) {
			r.Use(middleware.AgentAuth(agentAPIKey))
			r.Post("/intel", agentHandler.CreateIntel)
			r.Get("/intel", agentHandler.ListIntel)
			r.Patch("/intel/{id}/read", agentHandler.MarkIntelRead)
			r.Post("/availability", agentHandler.UpdateAvailability)
			r.Get("/availability", agentHandler.ListAvailability)
			r.Get("/availability/{agentId}", agentHandler.GetAvailability)
		})

		// ──── Analytics ────
		r.Post("/analytics/pageview", analyticsHandler.TrackPageView)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AgentAuth(agentAPIKey))
			r.Get("/analytics/top-pages", analyticsHandler.TopPages)
		})
	})

	return r
}
