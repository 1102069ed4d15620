package sqlite

import (
	"context"

	"github.com/smetchik/backend/internal/backend/domain"
)

type ticketsRepo struct {
	db dbtx
}

func (r *ticketsRepo) CreateTicket(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tickets (phone, email, description, status, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		t.Phone, t.Email, t.Description, t.Status, toMillis(t.CreatedAt),
	).Scan(&t.ID)
	if err != nil {
		return domain.Ticket{}, err
	}
	t.CreatedAt = fromMillis(toMillis(t.CreatedAt))
	return t, nil
}

func (r *ticketsRepo) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, phone, email, description, status, created_at FROM tickets ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		var (
			t         domain.Ticket
			createdAt int64
		)
		if err := rows.Scan(&t.ID, &t.Phone, &t.Email, &t.Description, &t.Status, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt = fromMillis(createdAt)
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
