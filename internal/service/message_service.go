// internal/service/message_service.go
package service

import (
	"context"
	"log"
	"time"

	appErrors "github.com/agentbook/whatsapp-relay/internal/errors"
	"github.com/agentbook/whatsapp-relay/internal/model"
	"github.com/agentbook/whatsapp-relay/internal/repository"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

type MessageService struct {
	ClientRepo   repository.ClientRepositoryInterface
	TemplateRepo repository.TemplateRepositoryInterface
	MessageRepo  repository.MessageRepositoryInterface
	Sender       whatsapp.Sender
}

// Result struct for SendMessage
type SendResult struct {
	MessageID string    `json:"messageId"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"sentAt"`
}

// StatusResult is the last known delivery state for a message
type StatusResult struct {
	Status      string     `json:"status"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	ReadAt      *time.Time `json:"readAt"`
}

// SendMessage resolves the client and template, binds variables, and submits
// the composed payload to the provider. Single-shot: a provider failure is
// terminal for this call, no retry.
func (s *MessageService) SendMessage(ctx context.Context, clientID, templateID string, variables map[string]string) (*SendResult, error) {
	client, err := s.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, appErrors.NewClientNotFound(clientID)
	}

	template, err := s.TemplateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil || template.Status != model.TemplateStatusApproved {
		return nil, appErrors.NewTemplateNotFound(templateID)
	}

	params, err := BindVariables(template, variables)
	if err != nil {
		return nil, err
	}

	providerID, err := s.Sender.SendTemplate(ctx, client.Phone, template.ID, template.Language, params)
	if err != nil {
		return nil, err
	}

	sentAt := time.Now().UTC()
	record := &model.Message{
		ID:              providerID,
		ClientID:        client.ID,
		TemplateID:      template.ID,
		Status:          model.StatusSent,
		StatusTimestamp: sentAt,
		SentAt:          sentAt,
	}
	if err := s.MessageRepo.Create(record); err != nil {
		// Provider accepted the message; the send succeeded even if the
		// local record could not be written.
		log.Println("⚠️ failed to persist message record:", providerID, err)
	}

	return &SendResult{
		MessageID: providerID,
		Status:    model.StatusSent,
		SentAt:    sentAt,
	}, nil
}

// GetMessageStatus returns last known delivery state for a provider message id
func (s *MessageService) GetMessageStatus(messageID string) (*StatusResult, error) {
	msg, err := s.MessageRepo.GetByID(messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, appErrors.NewMessageNotFound(messageID)
	}
	return &StatusResult{
		Status:      msg.Status,
		DeliveredAt: msg.DeliveredAt,
		ReadAt:      msg.ReadAt,
	}, nil
}

// ListTemplates returns the approved template set
func (s *MessageService) ListTemplates() ([]model.Template, error) {
	return s.TemplateRepo.ListApproved()
}
