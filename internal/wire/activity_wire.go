package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireActivity(r chi.Router, activityHandler *adaptor.ActivityHandler, g routeGuards) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/activity", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		// GET /api/admin/activity - Audit trail, newest first
		r.Get("/", activityHandler.GetActivity)
	})
}
