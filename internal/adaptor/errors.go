package adaptor

import (
	"errors"
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		unavailable *usecase.SeatsUnavailableError
		notInHall   *usecase.SeatNotInHallError
		conflict    *usecase.SessionConflictError
	)

	switch {
	case errors.As(err, &unavailable):
		log.Info(operation+" failed - seats taken",
			zap.Strings("seat_ids", idStrings(unavailable.SeatIDs)))
		utils.ResponseConflict(w, usecase.ErrSeatsUnavailable.Error(),
			map[string][]string{"unavailable_seat_ids": idStrings(unavailable.SeatIDs)})

	case errors.As(err, &notInHall):
		log.Warn(operation+" failed - seat outside hall",
			zap.Strings("seat_ids", idStrings(notInHall.SeatIDs)))
		utils.ResponseBadRequest(w, usecase.ErrSeatNotInHall.Error(),
			map[string][]string{"seat_ids": idStrings(notInHall.SeatIDs)})

	case errors.As(err, &conflict):
		log.Warn(operation+" failed - schedule conflict", zap.Error(err))
		var details map[string]string
		if conflict.ConflictingSessionID != uuid.Nil {
			details = map[string]string{"conflicting_session_id": conflict.ConflictingSessionID.String()}
		}
		utils.ResponseConflict(w, usecase.ErrSessionConflict.Error(), details)

	case errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrHallNotFound),
		errors.Is(err, usecase.ErrMovieNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrTicketNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidDiscount),
		errors.Is(err, usecase.ErrNoSeats),
		errors.Is(err, usecase.ErrSessionInPast):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSessionStarted):
		log.Info(operation+" failed - session started", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotOwner),
		errors.Is(err, usecase.ErrCancellationWindowClosed):
		log.Warn(operation+" refused", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		// PersistenceError and anything unexpected
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathID reads a uuid route parameter, answering 400 itself when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		utils.ResponseBadRequest(w, label+" ID is required", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
