// internal/service/inbox_subscriber.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/agentbook/whatsapp-relay/internal/model"
	"github.com/agentbook/whatsapp-relay/internal/queue"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

// AutoReplyText is the canned acknowledgement sent back for inbound messages.
const AutoReplyText = "Thanks for your message! Your agent will get back to you shortly."

// StartInboxSubscriber drains inbound messages from the in-process queue when
// no broker is configured. Deployments with RabbitMQ run cmd/worker instead.
func StartInboxSubscriber(q queue.Queue, sender whatsapp.Sender) {
	go func() {
		err := q.Subscribe(queue.TopicInboundMessages, func(payload any) error {
			inbound, ok := payload.(model.InboundMessage)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected model.InboundMessage")
				return nil // no retry
			}

			log.Printf("📥 CRM inbox: message from %s: %q\n", inbound.From, inbound.Body)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if _, err := sender.SendText(ctx, inbound.From, AutoReplyText); err != nil {
				log.Println("⚠️ Failed to send auto-reply:", err)
				return err // triggers retry in queue
			}
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start inbox subscriber:", err)
		}
	}()
}
