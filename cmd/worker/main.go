package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/agentbook/whatsapp-relay/internal/config"
	"github.com/agentbook/whatsapp-relay/internal/model"
	"github.com/agentbook/whatsapp-relay/internal/queue"
	"github.com/agentbook/whatsapp-relay/internal/service"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Bad configuration: ", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("❌ AMQP_URL is required for the inbox worker")
	}

	sender := whatsapp.NewClient(
		cfg.WhatsAppAPIURL,
		cfg.WhatsAppPhoneNumberID,
		cfg.WhatsAppAccessToken,
		cfg.WhatsAppSendTimeout,
	)

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicInboundMessages,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var inbound model.InboundMessage
			if err := json.Unmarshal(d.Body, &inbound); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			if err := processInbound(inbound, sender, cfg.WhatsAppSendTimeout); err != nil {
				log.Println("Failed to process inbound message:", err)
				// Retry logic: republish with an incremented attempt header.
				// A plain Nack(requeue) redelivers with the original headers,
				// so the counter would never move and a dead provider would
				// spin the same message forever.
				retryCount := retryCountFrom(d.Headers)
				if retryCount < maxInboundRetries {
					if err := requeueInbound(ch, d.Body, retryCount+1); err != nil {
						log.Println("Failed to requeue inbound message:", err)
						d.Nack(false, true) // broker redelivery as a last resort
						continue
					}
				} else {
					log.Printf("Dropping inbound message %s after %d attempts\n", inbound.ProviderID, retryCount+1)
				}
			}

			d.Ack(false)
		}
	}()

	log.Println("Inbox worker running, waiting for messages...")
	<-forever
}

const maxInboundRetries = 3

// retryCountFrom reads the x-retry-count header. The broker may hand the
// value back as any integer width, so an unchecked assertion would panic.
func retryCountFrom(headers amqp.Table) int {
	switch v := headers["x-retry-count"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}

func requeueInbound(ch *amqp.Channel, body []byte, retryCount int) error {
	return ch.Publish(
		"",
		queue.TopicInboundMessages,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Headers:     amqp.Table{"x-retry-count": int32(retryCount)},
		},
	)
}

func processInbound(inbound model.InboundMessage, sender whatsapp.Sender, timeout time.Duration) error {
	log.Printf("📥 CRM inbox: message from %s: %q\n", inbound.From, inbound.Body)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := sender.SendText(ctx, inbound.From, service.AutoReplyText)
	return err
}
