package request

import "time"

type CreateSessionRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	HallID    string    `json:"hall_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
}
