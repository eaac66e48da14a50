// internal/controller/message_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/agentbook/whatsapp-relay/internal/errors"
	"github.com/agentbook/whatsapp-relay/internal/service"
)

type MessageController struct {
	MessageService *service.MessageService
}

// SendMessage handles POST /whatsapp/send
func (c *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientID   string            `json:"clientId"`
		TemplateID string            `json:"templateId"`
		Variables  map[string]string `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", err.Error())
		return
	}
	if body.ClientID == "" || body.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "invalid body", "clientId and templateId are required")
		return
	}

	result, err := c.MessageService.SendMessage(r.Context(), body.ClientID, body.TemplateID, body.Variables)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetMessageStatus handles GET /whatsapp/status/{messageId}
func (c *MessageController) GetMessageStatus(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "messageId")

	status, err := c.MessageService.GetMessageStatus(messageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// ListTemplates handles GET /whatsapp/templates
func (c *MessageController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := c.MessageService.ListTemplates()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": templates,
	})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Provider
// rejections propagate the upstream status and body verbatim; transport
// failures stay a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var clientNotFound *appErrors.ErrClientNotFound
	var templateNotFound *appErrors.ErrTemplateNotFound
	var messageNotFound *appErrors.ErrMessageNotFound
	var validation *appErrors.ErrValidation
	var provider *appErrors.ErrProvider
	var transport *appErrors.ErrTransport

	switch {
	case errors.As(err, &clientNotFound), errors.As(err, &templateNotFound), errors.As(err, &messageNotFound):
		writeError(w, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.As(err, &provider):
		writeError(w, provider.StatusCode, "provider error", provider.Body)
	case errors.As(err, &transport):
		log.Println("⚠️ Provider transport failure:", err)
		writeError(w, http.StatusInternalServerError, "internal error", "provider unreachable")
	default:
		log.Println("❌ Unexpected error:", err)
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, errMsg, details string) {
	body := map[string]string{"error": errMsg}
	if details != "" {
		body["message"] = details
	}
	writeJSON(w, status, body)
}
