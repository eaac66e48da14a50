package repository

import (
	"database/sql"
	"time"

	"github.com/agentbook/whatsapp-relay/internal/model"
)

// MessageRepositoryInterface defines methods used by the send and webhook services
type MessageRepositoryInterface interface {
	Create(msg *model.Message) error
	GetByID(id string) (*model.Message, error)
	UpsertStatus(messageID, status string, ts time.Time) error
	SaveInbound(msg *model.InboundMessage) error
}

// MessageRepository persists outbound message delivery state keyed by the
// provider message id, plus the inbound CRM inbox rows.
type MessageRepository struct {
	DB *sql.DB
}

// Create inserts the record written when a send succeeds. A webhook status
// event can land before this runs and seed the row; in that case the send
// path only backfills client, template and sent_at, and leaves the status
// fields to the webhook's later word.
func (r *MessageRepository) Create(msg *model.Message) error {
	query := `
        INSERT INTO messages (id, client_id, template_id, status, status_timestamp, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE
        SET client_id = EXCLUDED.client_id,
            template_id = EXCLUDED.template_id,
            sent_at = EXCLUDED.sent_at
    `
	_, err := r.DB.Exec(query, msg.ID, msg.ClientID, msg.TemplateID, msg.Status, msg.StatusTimestamp, msg.SentAt)
	return err
}

// GetByID fetches delivery state for a provider message id
func (r *MessageRepository) GetByID(id string) (*model.Message, error) {
	query := `
        SELECT id, client_id, template_id, status, status_timestamp, sent_at, delivered_at, read_at
        FROM messages
        WHERE id = $1
    `
	var msg model.Message
	err := r.DB.QueryRow(query, id).Scan(
		&msg.ID, &msg.ClientID, &msg.TemplateID, &msg.Status,
		&msg.StatusTimestamp, &msg.SentAt, &msg.DeliveredAt, &msg.ReadAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// UpsertStatus folds a webhook status event into the store. The row is
// created when the webhook beats the send path to the database; every event
// then passes through the same row-locked update so concurrent deliveries
// cannot lose updates. Stale events (older than the stored status timestamp)
// are dropped.
func (r *MessageRepository) UpsertStatus(messageID, status string, ts time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Seed the row first so the SELECT ... FOR UPDATE below always has a row
	// to lock. Concurrent first contacts for the same id race on the unique
	// index; the loser's DO NOTHING falls through to the locked update path
	// instead of dropping its event.
	seed := `
        INSERT INTO messages (id, client_id, template_id, status, status_timestamp, sent_at)
        VALUES ($1, '', '', $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `
	if _, err := tx.Exec(seed, messageID, status, ts, ts); err != nil {
		return err
	}

	query := `
        SELECT id, client_id, template_id, status, status_timestamp, sent_at, delivered_at, read_at
        FROM messages
        WHERE id = $1
        FOR UPDATE
    `
	var msg model.Message
	err = tx.QueryRow(query, messageID).Scan(
		&msg.ID, &msg.ClientID, &msg.TemplateID, &msg.Status,
		&msg.StatusTimestamp, &msg.SentAt, &msg.DeliveredAt, &msg.ReadAt,
	)
	if err != nil {
		return err
	}

	if !msg.ApplyStatus(status, ts) {
		return tx.Commit() // stale event, nothing to write
	}

	update := `
        UPDATE messages
        SET status=$1, status_timestamp=$2, delivered_at=$3, read_at=$4
        WHERE id=$5
    `
	if _, err := tx.Exec(update, msg.Status, msg.StatusTimestamp, msg.DeliveredAt, msg.ReadAt, msg.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveInbound records a user message for the CRM inbox
func (r *MessageRepository) SaveInbound(msg *model.InboundMessage) error {
	query := `
        INSERT INTO inbound_messages (provider_id, from_phone, body, received_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (provider_id) DO NOTHING
        RETURNING id
    `
	err := r.DB.QueryRow(query, msg.ProviderID, msg.From, msg.Body, msg.ReceivedAt).Scan(&msg.ID)
	if err == sql.ErrNoRows {
		return nil // duplicate webhook delivery, already stored
	}
	return err
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)
