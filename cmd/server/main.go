// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/agentbook/whatsapp-relay/internal/auth"
	"github.com/agentbook/whatsapp-relay/internal/config"
	"github.com/agentbook/whatsapp-relay/internal/controller"
	"github.com/agentbook/whatsapp-relay/internal/db"
	"github.com/agentbook/whatsapp-relay/internal/handler"
	"github.com/agentbook/whatsapp-relay/internal/queue"
	"github.com/agentbook/whatsapp-relay/internal/repository"
	"github.com/agentbook/whatsapp-relay/internal/service"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Bad configuration: ", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	clientRepo := &repository.ClientRepository{DB: conn}
	templateRepo := &repository.TemplateRepository{DB: conn}
	messageRepo := &repository.MessageRepository{DB: conn}

	sender := whatsapp.NewClient(
		cfg.WhatsAppAPIURL,
		cfg.WhatsAppPhoneNumberID,
		cfg.WhatsAppAccessToken,
		cfg.WhatsAppSendTimeout,
	)

	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Println("✅ Inbound messages go to RabbitMQ; run cmd/worker to drain them")
	} else {
		inMem := queue.NewInMemoryQueue()
		service.StartInboxSubscriber(inMem, sender)
		q = inMem
		log.Println("⚠️ No AMQP_URL set, handling inbound messages in-process")
	}

	messageService := &service.MessageService{
		ClientRepo:   clientRepo,
		TemplateRepo: templateRepo,
		MessageRepo:  messageRepo,
		Sender:       sender,
	}

	webhookService := &service.WebhookService{
		MessageRepo: messageRepo,
		Queue:       q,
	}

	messageController := &controller.MessageController{
		MessageService: messageService,
	}

	webhookHandler := &handler.WebhookHandler{
		WebhookService: webhookService,
		VerifyToken:    cfg.WebhookVerifyToken,
	}

	r := chi.NewRouter()

	// Public routes
	r.Get("/health", handler.Health)
	r.Get("/whatsapp/webhook", webhookHandler.Verify)
	r.Post("/whatsapp/webhook", webhookHandler.Receive)

	// Business routes require a bearer token
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.JWTSecret))
		r.Post("/whatsapp/send", messageController.SendMessage)
		r.Get("/whatsapp/status/{messageId}", messageController.GetMessageStatus)
		r.Get("/whatsapp/templates", messageController.ListTemplates)
	})

	log.Println("🚀 Relay running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
