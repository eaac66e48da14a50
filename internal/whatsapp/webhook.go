// internal/whatsapp/webhook.go
package whatsapp

import (
	"strconv"
	"time"
)

// WebhookEvent is the Cloud API event envelope: entries -> changes -> values.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string          `json:"messaging_product"`
	Metadata         Metadata        `json:"metadata"`
	Statuses         []StatusEvent   `json:"statuses"`
	Messages         []MessageEvent  `json:"messages"`
	Contacts         []ContactRecord `json:"contacts"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// StatusEvent reports a delivery transition for one outbound message.
// Timestamp is unix seconds as a string, per the Cloud API.
type StatusEvent struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// Time parses the event timestamp; zero time when it is missing or malformed.
func (s *StatusEvent) Time() time.Time {
	secs, err := strconv.ParseInt(s.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}

// MessageEvent is an inbound user message.
type MessageEvent struct {
	From      string       `json:"from"`
	ID        string       `json:"id"`
	Timestamp string       `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *TextContent `json:"text,omitempty"`
}

func (m *MessageEvent) Time() time.Time {
	secs, err := strconv.ParseInt(m.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}

// Body returns the text body for text messages, empty otherwise.
func (m *MessageEvent) Body() string {
	if m.Text != nil {
		return m.Text.Body
	}
	return ""
}

type TextContent struct {
	Body string `json:"body"`
}

type ContactRecord struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}
