// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/saucier/internal/auth"
	"github.com/tomtom215/saucier/internal/middleware"
	"github.com/tomtom215/saucier/internal/models"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so the shared middleware package works with
// r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router assembles the HTTP surface.
type Router struct {
	handler *Handler
	chiMw   *ChiMiddleware
	authMw  *auth.Middleware
}

// NewRouter creates a router around the handler and middleware factories.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, authMw *auth.Middleware) *Router {
	return &Router{handler: handler, chiMw: chiMw, authMw: authMw}
}

// Setup configures all routes and returns the root http.Handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	authenticated := chiMiddleware(router.authMw.Authenticate)
	adminOnly := chiMiddleware(router.authMw.RequireRole(models.RoleAdmin))
	chefOrAdmin := chiMiddleware(router.authMw.RequireRole(models.RoleChef, models.RoleAdmin))

	// Global middleware, applied to every route in order
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMw.CORS())

	// Health and metrics stay outside the rate limits so monitoring never
	// competes with traffic
	r.Get("/api/v1/health", h.Health)
	r.Get("/api/v1/health/live", h.HealthLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})

	r.Route("/api/v1/waitlist", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Signup is the one write endpoint open to anonymous traffic, so
		// it gets its own tight per-IP limit
		r.With(router.chiMw.RateLimitJoin()).Post("/", h.JoinWaitlist)
		r.With(router.chiMw.RateLimit()).Get("/stats", h.WaitlistStats)

		// Queue administration
		r.Group(func(r chi.Router) {
			r.Use(router.chiMw.RateLimit())
			r.Use(authenticated)
			r.Use(adminOnly)

			r.Get("/", h.ListWaitlist)
			r.Get("/next", h.WaitlistNext)
			r.Get("/{id}", h.GetWaitlistEntry)
			r.Put("/{id}", h.UpdateWaitlistEntry)
			r.Delete("/{id}", h.DeleteWaitlistEntry)
			r.Post("/{id}/invite", h.InviteWaitlistEntry)
			r.Post("/{id}/register", h.RegisterWaitlistEntry)
			r.Post("/{id}/decline", h.DeclineWaitlistEntry)
		})
	})

	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Use(router.chiMw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Catalog reads are public
		r.Get("/", h.ListRecipes)
		r.Get("/quick", h.QuickRecipes)
		r.Get("/trending", h.TrendingRecipes)
		r.Post("/match", h.MatchRecipes)
		r.Get("/{id}", h.GetRecipe)

		// Ratings need an account
		r.With(authenticated).Post("/{id}/rate", h.RateRecipe)

		// Catalog writes need the chef or admin role; the handlers further
		// restrict edits and deletes to the recipe's author or an admin
		r.With(authenticated, chefOrAdmin).Post("/", h.CreateRecipe)
		r.With(authenticated, chefOrAdmin).Put("/{id}", h.UpdateRecipe)
		r.With(authenticated, chefOrAdmin).Delete("/{id}", h.DeleteRecipe)
	})

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(router.chiMw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(authenticated)

		r.Get("/", h.Recommendations)
	})

	r.Route("/api/v1/users/me", func(r chi.Router) {
		r.Use(router.chiMw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(authenticated)

		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/favorites/{recipeID}", h.AddFavorite)
		r.Delete("/favorites/{recipeID}", h.RemoveFavorite)
		r.Post("/saved/{recipeID}", h.SaveRecipe)
		r.Delete("/saved/{recipeID}", h.UnsaveRecipe)
		r.Post("/cooked/{recipeID}", h.MarkCooked)
	})

	return r
}
