package wire

import (
	"cinema-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler, g routeGuards) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		// The stored role decides admin rights; token claims can be stale
		r.Use(g.auth)
		r.Use(g.role)

		// POST /api/sessions/{id}/reservations - Buy one ticket per seat, all or nothing
		r.With(g.rateLimit("reserve")).Post("/api/sessions/{id}/reservations", ticketHandler.Reserve)

		// GET /api/user/tickets - Own tickets, paginated
		r.Get("/api/user/tickets", ticketHandler.GetUserTickets)

		// GET /api/tickets/{id} - Ticket details (holder or admin)
		r.Get("/api/tickets/{id}", ticketHandler.GetTicket)

		// GET /api/tickets/{id}/pdf - Printable ticket with QR code (holder or admin)
		r.Get("/api/tickets/{id}/pdf", ticketHandler.GetTicketPDF)

		// DELETE /api/tickets/{id} - Cancel; holders are bound by the cutoff
		r.With(g.rateLimit("cancel")).Delete("/api/tickets/{id}", ticketHandler.CancelTicket)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		// GET /api/admin/sessions/{id}/tickets - Every ticket sold for a session
		r.Get("/api/admin/sessions/{id}/tickets", ticketHandler.GetSessionTickets)

		// DELETE /api/admin/tickets/{id} - Cancel any ticket at any time
		r.Delete("/api/admin/tickets/{id}", ticketHandler.AdminCancelTicket)
	})
}
