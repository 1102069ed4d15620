package domain

import "time"

const TicketStatusReceived = "received"

type Ticket struct {
	ID          int64
	Phone       string
	Email       string
	Description string
	Status      string
	CreatedAt   time.Time
}
