package http

import (
	"net/http"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"
)

// ticketTimeLayout is RFC 3339 with millisecond precision.
const ticketTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type SupportHandler struct {
	SupportService *service.SupportService
	MaxBodyBytes   int64
}

// HandleCreate godoc
//
//	@Summary		Submit a support ticket
//	@Description	Appends a ticket to the log. All fields are optional.
//	@Tags			Support
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.TicketRequest	true	"Ticket"
//	@Success		200		{object}	backendsdk.TicketCreatedResponse
//	@Failure		429		{object}	backendsdk.ErrorResponse	"Rate limited"
//	@Router			/support/tickets [post].
func (h *SupportHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.TicketRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	t, err := h.SupportService.Submit(ctx, req.Phone, req.Email, req.Description)
	if err != nil {
		slogx.FromContext(ctx).Error("submit ticket failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slogx.FromContext(ctx).Info("ticket received", "ticket_id", t.ID)
	httpx.WriteJSON(w, http.StatusOK, backendsdk.TicketCreatedResponse{ID: t.ID, Status: t.Status})
}

// HandleList godoc
//
//	@Summary		List support tickets
//	@Description	Returns the whole ticket log in submission order.
//	@Tags			Support
//	@Produce		json
//	@Success		200	{object}	backendsdk.TicketsResponse
//	@Router			/support/tickets [get].
func (h *SupportHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tickets, err := h.SupportService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("list tickets failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := backendsdk.TicketsResponse{Tickets: make([]backendsdk.Ticket, 0, len(tickets))}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, ticketToResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func ticketToResponse(t domain.Ticket) backendsdk.Ticket {
	return backendsdk.Ticket{
		ID:          t.ID,
		Phone:       t.Phone,
		Email:       t.Email,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.UTC().Format(ticketTimeLayout),
	}
}

