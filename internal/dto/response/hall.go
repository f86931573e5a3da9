package response

import (
	"cinema-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type HallResponse struct {
	ID         string          `json:"id"`
	HallNumber int             `json:"hall_number"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Surcharge  decimal.Decimal `json:"surcharge"`
}

type SeatResponse struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	RowNumber  int             `json:"row_number"`
	SeatNumber int             `json:"seat_number"`
	Surcharge  decimal.Decimal `json:"surcharge"`
}

// SeatStatusResponse is one cell of a session seat map.
type SeatStatusResponse struct {
	SeatResponse
	Taken bool            `json:"taken"`
	Price decimal.Decimal `json:"price"`
}

type HallSeatsResponse struct {
	Hall  HallResponse   `json:"hall"`
	Seats []SeatResponse `json:"seats"`
}

// Helper converters
func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:         hall.ID.String(),
		HallNumber: hall.HallNumber,
		Name:       hall.Name,
		Category:   hall.Category,
		Surcharge:  hall.Surcharge,
	}
}

func HallsToResponse(halls []*entity.Hall) []HallResponse {
	out := make([]HallResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, HallToResponse(h))
	}
	return out
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID.String(),
		Label:      seat.Label(),
		RowNumber:  seat.RowNumber,
		SeatNumber: seat.SeatNumber,
		Surcharge:  seat.Surcharge,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatToResponse(s))
	}
	return out
}

func SeatMapToResponse(statuses []entity.SeatStatus) []SeatStatusResponse {
	out := make([]SeatStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, SeatStatusResponse{
			SeatResponse: SeatToResponse(st.Seat),
			Taken:        st.Taken,
			Price:        st.Price,
		})
	}
	return out
}
