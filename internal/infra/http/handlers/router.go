package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/http/middleware"
)

type RouterConfig struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Referral *ReferralHandler
	Admin    *AdminHandler
	Pix      *PixHandler

	Tokens      auth.Verifier
	AuthLimiter middleware.Limiter
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.Handle)
	r.Method(http.MethodGet, "/metrics", middleware.Handler())

	r.Route("/auth", func(r chi.Router) {
		if cfg.AuthLimiter != nil {
			r.Use(middleware.RateLimit(cfg.AuthLimiter, time.Minute))
		}
		r.Post("/register", cfg.Auth.Register)
		r.Post("/login", cfg.Auth.Login)
		r.Post("/admin/login", cfg.Auth.AdminLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(cfg.Tokens))

		r.Get("/me", cfg.Auth.Me)

		r.Route("/partner", func(r chi.Router) {
			r.Use(auth.RequireRole(entity.RolePartner))
			r.Use(auth.RequireApproved)

			r.Get("/referrals", cfg.Referral.List)
			r.Post("/referrals", cfg.Referral.Create)
			r.Get("/dashboard", cfg.Referral.Dashboard)
			r.Get("/pix", cfg.Pix.Get)
			r.Put("/pix", cfg.Pix.Save)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(entity.RoleAdmin))

			r.Get("/referrals", cfg.Admin.ListReferrals)
			r.Patch("/referrals/{id}/status", cfg.Admin.UpdateStatus)
			r.Get("/summary", cfg.Admin.Summary)

			r.Get("/partners/pending", cfg.Admin.PendingPartners)
			r.Get("/partners/pix", cfg.Pix.Batch)
			r.Post("/partners/{id}/approve", cfg.Admin.ApprovePartner)
			r.Post("/partners/{id}/reject", cfg.Admin.RejectPartner)
		})
	})

	return r
}
