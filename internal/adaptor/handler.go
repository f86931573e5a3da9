package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Hall     *HallHandler
	Session  *SessionHandler
	Ticket   *TicketHandler
	Activity *ActivityHandler
}

func NewHandler(service *usecase.Service, renderer TicketRenderer, pricePlaces int32, log *zap.Logger) *Handler {
	return &Handler{
		Hall:     NewHallHandler(service.Inventory, log),
		Session:  NewSessionHandler(service.Scheduler, service.Availability, log),
		Ticket:   NewTicketHandler(service.Reservation, renderer, pricePlaces, log),
		Activity: NewActivityHandler(service.Activity, log),
	}
}
