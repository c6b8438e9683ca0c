package matchhandlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the match API under /api/matches.
func RegisterRoutes(r chi.Router, h *MatchHandlers, allowedOrigins []string, limiter *IPRateLimiter) {
	r.Route("/api/matches", func(r chi.Router) {
		r.Use(CORSMiddleware(allowedOrigins))
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Post("/", h.traced("HandleCreateMatch", h.HandleCreateMatch))
		r.Get("/", h.traced("HandleListMatches", h.HandleListMatches))
		r.Delete("/", h.traced("HandleClearMatches", h.HandleClearMatches))

		r.Route("/{matchID}", func(r chi.Router) {
			r.Get("/", h.traced("HandleGetMatch", h.HandleGetMatch))
			r.Delete("/", h.traced("HandleDeleteMatch", h.HandleDeleteMatch))
			r.Get("/status", h.traced("HandleGetStatus", h.HandleGetStatus))
			r.Post("/complete", h.traced("HandleCompleteMatch", h.HandleCompleteMatch))
			r.Put("/teams/{teamID}", h.traced("HandleRenameTeam", h.HandleRenameTeam))
			r.Put("/holes/{hole}/scores/{teamID}", h.traced("HandleEnterScore", h.HandleEnterScore))
			r.Post("/holes/{hole}/presses", h.traced("HandleCreatePresses", h.HandleCreatePresses))
			r.Get("/scorecard.xlsx", h.traced("HandleExportScorecard", h.HandleExportScorecard))
			r.Get("/chart.png", h.traced("HandleScoreChart", h.HandleScoreChart))
		})
	})
}
