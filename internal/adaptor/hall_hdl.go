package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.InventoryService
	log     *zap.Logger
}

func NewHallHandler(service usecase.InventoryService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/halls (public)
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.ListHalls(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list halls")
		return
	}

	utils.ResponseSuccess(w, "success", response.HallsToResponse(halls))
}

// GetHallSeats handles GET /api/halls/{id}/seats (public)
func (h *HallHandler) GetHallSeats(w http.ResponseWriter, r *http.Request) {
	hallID, ok := pathID(w, r, "id", "Hall")
	if !ok {
		return
	}

	hall, err := h.service.GetHall(r.Context(), hallID)
	if err != nil {
		handleServiceError(w, h.log, err, "get hall")
		return
	}
	seats, err := h.service.SeatsOf(r.Context(), hallID)
	if err != nil {
		handleServiceError(w, h.log, err, "get hall seats")
		return
	}

	utils.ResponseSuccess(w, "success", response.HallSeatsResponse{
		Hall:  response.HallToResponse(hall),
		Seats: response.SeatsToResponse(seats),
	})
}
