// internal/handler/webhook_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/agentbook/whatsapp-relay/internal/service"
	"github.com/agentbook/whatsapp-relay/internal/whatsapp"
)

// WebhookHandler receives the provider's subscription handshake and event
// deliveries.
type WebhookHandler struct {
	WebhookService *service.WebhookService
	VerifyToken    string
}

// Verify handles the one-time subscription handshake (GET). The provider
// sends hub.mode, hub.verify_token and hub.challenge; on a token match the
// challenge is echoed back verbatim. A mismatch must not echo anything.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.VerifyToken {
		log.Println("✅ Webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	log.Println("⚠️ Webhook verification failed")
	w.WriteHeader(http.StatusForbidden)
}

// Receive handles event deliveries (POST). The provider treats any non-200
// as a failed delivery and retries, so this endpoint answers 200 regardless
// of what happens during processing.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var event whatsapp.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("⚠️ Failed to decode webhook payload:", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.WebhookService.ProcessEvent(&event)
	w.WriteHeader(http.StatusOK)
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
