package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/halls - List halls (public)
	r.Get("/api/halls", hallHandler.GetHalls)

	// GET /api/halls/{id}/seats - Fixed seat layout of a hall (public)
	r.Get("/api/halls/{id}/seats", hallHandler.GetHallSeats)
}
