package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSession(r chi.Router, sessionHandler *adaptor.SessionHandler, g routeGuards) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sessions/{id} - Movie, hall and start time of a session (public)
	r.Get("/api/sessions/{id}", sessionHandler.GetSession)

	// GET /api/sessions/{id}/seats - Free seats; ?all=true for the full seat map (public)
	r.Get("/api/sessions/{id}/seats", sessionHandler.GetSessionSeats)

	// GET /api/halls/{id}/sessions, /api/movies/{id}/sessions - Schedule by hall or movie (public)
	r.Get("/api/halls/{id}/sessions", sessionHandler.GetHallSessions)
	r.Get("/api/movies/{id}/sessions", sessionHandler.GetMovieSessions)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		// Apply middleware chain: Auth → Admin
		r.Use(g.auth)
		r.Use(g.admin)

		r.Post("/api/admin/sessions", sessionHandler.CreateSession)        // Schedule a movie in a hall
		r.Delete("/api/admin/sessions/{id}", sessionHandler.DeleteSession) // Drop a session and its tickets
	})
}
