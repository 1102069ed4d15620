package memory

import (
	"context"

	"github.com/smetchik/backend/internal/backend/domain"
)

type ticketsRepo struct {
	st *state
	g  guard
}

func (r *ticketsRepo) CreateTicket(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	defer r.g.lock()()

	r.st.nextTicketID++
	t.ID = r.st.nextTicketID
	r.st.tickets = append(r.st.tickets, t)
	return t, nil
}

func (r *ticketsRepo) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	defer r.g.lock()()

	out := make([]domain.Ticket, len(r.st.tickets))
	copy(out, r.st.tickets)
	return out, nil
}
