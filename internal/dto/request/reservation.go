package request

type ReserveSeatsRequest struct {
	SeatIDs         []string `json:"seat_ids" validate:"required,min=1,max=50,dive,uuid4"`
	DiscountPercent int      `json:"discount_percent" validate:"min=0,max=100"`
}
