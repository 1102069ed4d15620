package backendsdk

import (
	"context"
	"net/http"
)

func (c *Client) SubmitTicket(ctx context.Context, req TicketRequest) (*TicketCreatedResponse, error) {
	var resp TicketCreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/support/tickets", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	var resp TicketsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/support/tickets", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}
