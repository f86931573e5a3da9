package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type SessionResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	HallID    string    `json:"hall_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type SessionInfoResponse struct {
	ID            string          `json:"id"`
	MovieID       string          `json:"movie_id"`
	MovieTitle    string          `json:"movie_title"`
	HallID        string          `json:"hall_id"`
	HallNumber    int             `json:"hall_number"`
	HallName      string          `json:"hall_name"`
	HallCategory  string          `json:"hall_category"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	BasePrice     decimal.Decimal `json:"base_price"`
	HallSurcharge decimal.Decimal `json:"hall_surcharge"`
}

func SessionToResponse(s *entity.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID.String(),
		MovieID:   s.MovieID.String(),
		HallID:    s.HallID.String(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func SessionsToResponse(sessions []*entity.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionToResponse(s))
	}
	return out
}

func SessionInfoToResponse(info *entity.SessionInfo) SessionInfoResponse {
	return SessionInfoResponse{
		ID:            info.SessionID.String(),
		MovieID:       info.MovieID.String(),
		MovieTitle:    info.MovieTitle,
		HallID:        info.HallID.String(),
		HallNumber:    info.HallNumber,
		HallName:      info.HallName,
		HallCategory:  info.HallCategory,
		StartTime:     info.StartTime,
		EndTime:       info.EndTime,
		BasePrice:     info.BasePrice,
		HallSurcharge: info.HallSurcharge,
	}
}
