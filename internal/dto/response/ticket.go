package response

import (
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TicketResponse struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"session_id"`
	SeatID          string          `json:"seat_id"`
	UserID          string          `json:"user_id"`
	DiscountPercent int             `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	CreatedAt       time.Time       `json:"created_at"`
}

type TicketDetailResponse struct {
	TicketResponse
	HolderName   string    `json:"holder_name"`
	MovieTitle   string    `json:"movie_title"`
	HallNumber   int       `json:"hall_number"`
	HallName     string    `json:"hall_name"`
	HallCategory string    `json:"hall_category"`
	StartTime    time.Time `json:"start_time"`
	Seat         string    `json:"seat"`
}

type ReservationResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:              t.ID.String(),
		SessionID:       t.SessionID.String(),
		SeatID:          t.SeatID.String(),
		UserID:          t.HolderID.String(),
		DiscountPercent: t.DiscountPercent,
		FinalPrice:      t.FinalPrice,
		CreatedAt:       t.CreatedAt,
	}
}

func ReservationToResponse(tickets []*entity.Ticket) ReservationResponse {
	resp := ReservationResponse{
		Tickets:    make([]TicketResponse, 0, len(tickets)),
		TotalPrice: decimal.Zero,
	}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, TicketToResponse(t))
		resp.TotalPrice = resp.TotalPrice.Add(t.FinalPrice)
	}
	return resp
}

func TicketViewToResponse(v *entity.TicketView) TicketDetailResponse {
	return TicketDetailResponse{
		TicketResponse: TicketToResponse(&v.Ticket),
		HolderName:     v.HolderName,
		MovieTitle:     v.MovieTitle,
		HallNumber:     v.HallNumber,
		HallName:       v.HallName,
		HallCategory:   v.HallCategory,
		StartTime:      v.StartTime,
		Seat:           fmt.Sprintf("R%d-S%d", v.RowNumber, v.SeatNumber),
	}
}

func TicketViewsToResponse(views []*entity.TicketView) []TicketDetailResponse {
	out := make([]TicketDetailResponse, 0, len(views))
	for _, v := range views {
		out = append(out, TicketViewToResponse(v))
	}
	return out
}
