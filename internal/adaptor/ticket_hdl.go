package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/pdf"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type TicketRenderer interface {
	Render(data pdf.TicketData) ([]byte, error)
}

type TicketHandler struct {
	service     usecase.ReservationService
	renderer    TicketRenderer
	pricePlaces int32
	log         *zap.Logger
}

func NewTicketHandler(service usecase.ReservationService, renderer TicketRenderer, pricePlaces int32, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service:     service,
		renderer:    renderer,
		pricePlaces: pricePlaces,
		log:         log.With(zap.String("handler", "ticket")),
	}
}

// Reserve handles POST /api/sessions/{id}/reservations (protected)
func (h *TicketHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	sessionID, ok := pathID(w, r, "id", "Session")
	if !ok {
		return
	}

	var req request.ReserveSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Reserve validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	seatIDs, err := parseUUIDs(req.SeatIDs)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid seat ID", nil)
		return
	}

	tickets, err := h.service.Reserve(r.Context(), usecase.ReservationRequest{
		SessionID:       sessionID,
		SeatIDs:         seatIDs,
		UserID:          userID,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "reserve seats")
		return
	}

	utils.ResponseCreated(w, "success", response.ReservationToResponse(tickets))
}

// GetUserTickets handles GET /api/user/tickets (protected)
func (h *TicketHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	views, total, err := h.service.UserTickets(r.Context(), userID, req.Limit(), req.Offset())
	if err != nil {
		handleServiceError(w, h.log, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.TicketViewsToResponse(views), req.Page, req.Limit(), total))
}

func (h *TicketHandler) loadTicket(w http.ResponseWriter, r *http.Request) (*entity.TicketView, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	ticketID, ok := pathID(w, r, "id", "Ticket")
	if !ok {
		return nil, false
	}

	view, err := h.service.GetTicket(r.Context(), ticketID, userID, utils.IsAdminContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return nil, false
	}
	return view, true
}

// GetTicket handles GET /api/tickets/{id} (holder or admin)
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	view, ok := h.loadTicket(w, r)
	if !ok {
		return
	}

	utils.ResponseSuccess(w, "success", response.TicketViewToResponse(view))
}

// GetTicketPDF handles GET /api/tickets/{id}/pdf (holder or admin)
func (h *TicketHandler) GetTicketPDF(w http.ResponseWriter, r *http.Request) {
	view, ok := h.loadTicket(w, r)
	if !ok {
		return
	}

	body, err := h.renderer.Render(pdf.TicketData{
		TicketID:     view.ID.String(),
		MovieTitle:   view.MovieTitle,
		HallNumber:   view.HallNumber,
		HallName:     view.HallName,
		HallCategory: view.HallCategory,
		StartTime:    view.StartTime,
		RowNumber:    view.RowNumber,
		SeatNumber:   view.SeatNumber,
		Price:        view.FinalPrice.StringFixed(h.pricePlaces),
		HolderName:   view.HolderName,
	})
	if err != nil {
		h.log.Error("Failed to render ticket",
			zap.Error(err),
			zap.String("ticket_id", view.ID.String()))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseFile(w, "application/pdf", "ticket-"+view.ID.String()+".pdf", body)
}

// CancelTicket handles DELETE /api/tickets/{id} (protected).
// Callers whose stored role is admin bypass the ownership and time window checks.
func (h *TicketHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, utils.IsAdminContext(r.Context()))
}

// ==================== ADMIN METHODS ====================

// AdminCancelTicket handles DELETE /api/admin/tickets/{id} (admin only)
func (h *TicketHandler) AdminCancelTicket(w http.ResponseWriter, r *http.Request) {
	h.cancel(w, r, true)
}

func (h *TicketHandler) cancel(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	ticketID, ok := pathID(w, r, "id", "Ticket")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), ticketID, userID, isAdmin); err != nil {
		handleServiceError(w, h.log, err, "cancel ticket")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetSessionTickets handles GET /api/admin/sessions/{id}/tickets (admin only)
func (h *TicketHandler) GetSessionTickets(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id", "Session")
	if !ok {
		return
	}

	views, err := h.service.SessionTickets(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, h.log, err, "get session tickets")
		return
	}

	utils.ResponseSuccess(w, "success", response.TicketViewsToResponse(views))
}
