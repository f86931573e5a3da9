package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type ActivityHandler struct {
	service usecase.ActivityService
	log     *zap.Logger
}

func NewActivityHandler(service usecase.ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log.With(zap.String("handler", "activity")),
	}
}

// GetActivity handles GET /api/admin/activity (admin only), newest first
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	entries, total, err := h.service.Recent(r.Context(), req.Limit(), req.Offset())
	if err != nil {
		handleServiceError(w, h.log, err, "get activity")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.ActivitiesToResponse(entries), req.Page, req.Limit(), total))
}
