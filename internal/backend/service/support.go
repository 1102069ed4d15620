package service

import (
	"context"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

type SupportService struct {
	Store store.Store
	Clock Clock
}

// Submit records a ticket. Every field is optional.
func (s *SupportService) Submit(ctx context.Context, phone, email, description string) (domain.Ticket, error) {
	return s.Store.Tickets().CreateTicket(ctx, domain.Ticket{
		Phone:       phone,
		Email:       email,
		Description: description,
		Status:      domain.TicketStatusReceived,
		CreatedAt:   s.Clock.now(),
	})
}

// List returns every ticket in submission order.
func (s *SupportService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.Store.Tickets().ListTickets(ctx)
}
