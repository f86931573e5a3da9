package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	scheduler    usecase.SchedulerService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewSessionHandler(scheduler usecase.SchedulerService, availability usecase.AvailabilityService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		scheduler:    scheduler,
		availability: availability,
		log:          log.With(zap.String("handler", "session")),
	}
}

// GetSession handles GET /api/sessions/{id} (public)
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id", "Session")
	if !ok {
		return
	}

	info, err := h.scheduler.SessionInfo(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, h.log, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "success", response.SessionInfoToResponse(info))
}

// GetSessionSeats handles GET /api/sessions/{id}/seats (public).
// ?all=true returns the whole hall with taken flags and prices.
func (h *SessionHandler) GetSessionSeats(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id", "Session")
	if !ok {
		return
	}

	if utils.ParseBool(r.URL.Query().Get("all")) {
		statuses, err := h.availability.SeatMap(r.Context(), sessionID)
		if err != nil {
			handleServiceError(w, h.log, err, "get seat map")
			return
		}
		utils.ResponseSuccess(w, "success", response.SeatMapToResponse(statuses))
		return
	}

	seats, err := h.availability.AvailableSeats(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, h.log, err, "get available seats")
		return
	}

	utils.ResponseSuccess(w, "success", response.SeatsToResponse(seats))
}

// GetHallSessions handles GET /api/halls/{id}/sessions (public)
func (h *SessionHandler) GetHallSessions(w http.ResponseWriter, r *http.Request) {
	hallID, ok := pathID(w, r, "id", "Hall")
	if !ok {
		return
	}

	sessions, err := h.scheduler.ListByHall(r.Context(), hallID)
	if err != nil {
		handleServiceError(w, h.log, err, "list hall sessions")
		return
	}

	utils.ResponseSuccess(w, "success", response.SessionsToResponse(sessions))
}

// GetMovieSessions handles GET /api/movies/{id}/sessions (public)
func (h *SessionHandler) GetMovieSessions(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id", "Movie")
	if !ok {
		return
	}

	sessions, err := h.scheduler.ListByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "list movie sessions")
		return
	}

	utils.ResponseSuccess(w, "success", response.SessionsToResponse(sessions))
}

// ==================== ADMIN METHODS ====================

// CreateSession handles POST /api/admin/sessions (admin only)
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Create session validation failed", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.scheduler.CreateSession(r.Context(), adminID, usecase.CreateSessionInput{
		MovieID:   uuid.MustParse(req.MovieID),
		HallID:    uuid.MustParse(req.HallID),
		StartTime: req.StartTime,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "create session")
		return
	}

	utils.ResponseCreated(w, "success", response.SessionToResponse(session))
}

// DeleteSession handles DELETE /api/admin/sessions/{id} (admin only)
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	sessionID, ok := pathID(w, r, "id", "Session")
	if !ok {
		return
	}

	if err := h.scheduler.DeleteSession(r.Context(), adminID, sessionID); err != nil {
		handleServiceError(w, h.log, err, "delete session")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
