// internal/model/message.go
package model

import "time"

// Message statuses, in lifecycle order: composed -> sent -> {delivered, read, failed}.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
	StatusFailed    = "failed"
)

// Message is the durable record for one outbound WhatsApp message, keyed by
// the provider-issued message id (wamid).
type Message struct {
	ID              string     `db:"id" json:"id"`
	ClientID        string     `db:"client_id" json:"client_id"`
	TemplateID      string     `db:"template_id" json:"template_id"`
	Status          string     `db:"status" json:"status"`
	StatusTimestamp time.Time  `db:"status_timestamp" json:"status_timestamp"`
	SentAt          time.Time  `db:"sent_at" json:"sent_at"`
	DeliveredAt     *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt          *time.Time `db:"read_at" json:"read_at,omitempty"`
}

// ApplyStatus folds one provider status event into the record, last-timestamp-wins.
// Events older than the current status timestamp are dropped, which makes
// out-of-order and duplicate webhook deliveries idempotent. Returns true when
// the record changed.
func (m *Message) ApplyStatus(status string, ts time.Time) bool {
	if ts.Before(m.StatusTimestamp) {
		return false
	}
	m.Status = status
	m.StatusTimestamp = ts
	switch status {
	case StatusDelivered:
		if m.DeliveredAt == nil {
			t := ts
			m.DeliveredAt = &t
		}
	case StatusRead:
		if m.ReadAt == nil {
			t := ts
			m.ReadAt = &t
		}
	}
	return true
}

// InboundMessage is a user message received through the provider webhook,
// destined for the CRM inbox.
type InboundMessage struct {
	ID         int       `db:"id" json:"id"`
	ProviderID string    `db:"provider_id" json:"provider_id"`
	From       string    `db:"from_phone" json:"from"`
	Body       string    `db:"body" json:"body"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
}
