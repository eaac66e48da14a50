// internal/service/webhook_service.go
package service

import (
	"log"

	"github.com/agentbook/whatsapp-relay/internal/model"
	"github.com/agentbook/whatsapp-relay/internal/queue"
	"github.com/agentbook/whatsapp-relay/internal/repository"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

type WebhookService struct {
	MessageRepo repository.MessageRepositoryInterface
	Queue       queue.Queue
}

// ProcessEvent walks the provider event envelope and folds every status
// event into the message store, then hands inbound user messages to the CRM
// inbox queue. It never returns an error: the webhook endpoint must answer
// 200 no matter what happens here, or the provider retries the delivery.
func (s *WebhookService) ProcessEvent(event *whatsapp.WebhookEvent) {
	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			s.processStatuses(change.Value.Statuses)
			s.processMessages(change.Value.Messages)
		}
	}
}

func (s *WebhookService) processStatuses(statuses []whatsapp.StatusEvent) {
	for _, st := range statuses {
		switch st.Status {
		case model.StatusSent, model.StatusDelivered, model.StatusRead, model.StatusFailed:
		default:
			log.Println("⚠️ Unknown status in webhook event:", st.Status, st.ID)
			continue
		}

		ts := st.Time()
		if ts.IsZero() {
			log.Println("⚠️ Status event without usable timestamp:", st.ID, st.Status)
			continue
		}

		if err := s.MessageRepo.UpsertStatus(st.ID, st.Status, ts); err != nil {
			log.Println("⚠️ Failed to upsert status:", st.ID, err)
		}
	}
}

func (s *WebhookService) processMessages(messages []whatsapp.MessageEvent) {
	for _, m := range messages {
		inbound := model.InboundMessage{
			ProviderID: m.ID,
			From:       m.From,
			Body:       m.Body(),
			ReceivedAt: m.Time(),
		}

		if err := s.MessageRepo.SaveInbound(&inbound); err != nil {
			log.Println("⚠️ Failed to save inbound message:", m.ID, err)
			continue
		}

		if err := s.Queue.Publish(queue.TopicInboundMessages, inbound); err != nil {
			log.Println("⚠️ Failed to enqueue inbound message:", m.ID, err)
		}
	}
}
