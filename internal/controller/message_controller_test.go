package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentbook/whatsapp-relay/internal/controller"
	appErrors "github.com/agentbook/whatsapp-relay/internal/errors"
	"github.com/agentbook/whatsapp-relay/internal/model"
	"github.com/agentbook/whatsapp-relay/internal/service"
)

// --- Mock collaborators ---

type MockClientRepo struct{}

func (m *MockClientRepo) GetByID(id string) (*model.Client, error) {
	if id == "c1" {
		return &model.Client{ID: "c1", Phone: "+1234567890", FirstName: "Ana"}, nil
	}
	return nil, nil
}

func (m *MockClientRepo) ListAll() ([]model.Client, error) {
	return []model.Client{}, nil
}

type MockTemplateRepo struct{}

func (m *MockTemplateRepo) GetByID(id string) (*model.Template, error) {
	if id == "welcome" {
		return &model.Template{
			ID:       "welcome",
			Language: "en",
			Status:   model.TemplateStatusApproved,
			Body:     "Hi {{firstName}}, welcome aboard!",
		}, nil
	}
	return nil, nil
}

func (m *MockTemplateRepo) ListApproved() ([]model.Template, error) {
	return []model.Template{
		{ID: "welcome", Status: model.TemplateStatusApproved, Body: "Hi {{firstName}}, welcome aboard!"},
	}, nil
}

type MockMessageRepo struct {
	stored map[string]*model.Message
}

func (m *MockMessageRepo) Create(msg *model.Message) error { return nil }

func (m *MockMessageRepo) GetByID(id string) (*model.Message, error) {
	if m.stored == nil {
		return nil, nil
	}
	return m.stored[id], nil
}

func (m *MockMessageRepo) UpsertStatus(messageID, status string, ts time.Time) error { return nil }

func (m *MockMessageRepo) SaveInbound(msg *model.InboundMessage) error { return nil }

type MockSender struct {
	calls     int
	lastName  string
	lastParam string
	err       error
}

func (m *MockSender) SendTemplate(ctx context.Context, to string, template, language string, params []string) (string, error) {
	m.calls++
	m.lastName = template
	if len(params) > 0 {
		m.lastParam = params[0]
	}
	if m.err != nil {
		return "", m.err
	}
	return "wamid.PROVIDER", nil
}

func (m *MockSender) SendText(ctx context.Context, to, body string) (string, error) {
	return "wamid.TXT", nil
}

func newRouter(sender *MockSender, messageRepo *MockMessageRepo) chi.Router {
	svc := &service.MessageService{
		ClientRepo:   &MockClientRepo{},
		TemplateRepo: &MockTemplateRepo{},
		MessageRepo:  messageRepo,
		Sender:       sender,
	}
	ctrl := &controller.MessageController{MessageService: svc}

	r := chi.NewRouter()
	r.Post("/whatsapp/send", ctrl.SendMessage)
	r.Get("/whatsapp/status/{messageId}", ctrl.GetMessageStatus)
	r.Get("/whatsapp/templates", ctrl.ListTemplates)
	return r
}

// --- Tests ---

func TestSendEndpointScenario(t *testing.T) {
	sender := &MockSender{}
	r := newRouter(sender, &MockMessageRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"clientId":   "c1",
		"templateId": "welcome",
		"variables":  map[string]string{"firstName": "Ana"},
	})
	req := httptest.NewRequest("POST", "/whatsapp/send", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if sender.lastName != "welcome" || sender.lastParam != "Ana" {
		t.Errorf("provider called with %q/%q, expected welcome/Ana", sender.lastName, sender.lastParam)
	}

	var res struct {
		MessageID string    `json:"messageId"`
		Status    string    `json:"status"`
		SentAt    time.Time `json:"sentAt"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.MessageID != "wamid.PROVIDER" {
		t.Errorf("expected provider message id, got %q", res.MessageID)
	}
	if res.Status != "sent" {
		t.Errorf("expected status sent, got %q", res.Status)
	}
	if res.SentAt.IsZero() {
		t.Error("expected a sentAt timestamp")
	}
}

func TestSendEndpointUnknownTemplateIs404(t *testing.T) {
	sender := &MockSender{}
	r := newRouter(sender, &MockMessageRepo{})

	body := []byte(`{"clientId":"c1","templateId":"nope","variables":{}}`)
	req := httptest.NewRequest("POST", "/whatsapp/send", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if sender.calls != 0 {
		t.Errorf("provider must not be called, got %d calls", sender.calls)
	}
}

func TestSendEndpointProviderErrorPropagatesVerbatim(t *testing.T) {
	upstream := `{"error":{"message":"(#131047) re-engagement message"}}`
	sender := &MockSender{err: appErrors.NewProvider(http.StatusUnprocessableEntity, upstream)}
	r := newRouter(sender, &MockMessageRepo{})

	body := []byte(`{"clientId":"c1","templateId":"welcome","variables":{"firstName":"Ana"}}`)
	req := httptest.NewRequest("POST", "/whatsapp/send", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected upstream status 422, got %d", w.Code)
	}

	var res map[string]string
	json.NewDecoder(w.Body).Decode(&res)
	if res["message"] != upstream {
		t.Errorf("expected upstream body verbatim, got %q", res["message"])
	}
}

func TestSendEndpointTransportErrorIs500(t *testing.T) {
	sender := &MockSender{err: appErrors.NewTransport(context.DeadlineExceeded, true)}
	r := newRouter(sender, &MockMessageRepo{})

	body := []byte(`{"clientId":"c1","templateId":"welcome","variables":{"firstName":"Ana"}}`)
	req := httptest.NewRequest("POST", "/whatsapp/send", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for transport failure, got %d", w.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	deliveredAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	repo := &MockMessageRepo{stored: map[string]*model.Message{
		"wamid.5": {ID: "wamid.5", Status: model.StatusDelivered, DeliveredAt: &deliveredAt},
	}}
	r := newRouter(&MockSender{}, repo)

	req := httptest.NewRequest("GET", "/whatsapp/status/wamid.5", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res struct {
		Status      string     `json:"status"`
		DeliveredAt *time.Time `json:"deliveredAt"`
	}
	json.NewDecoder(w.Body).Decode(&res)
	if res.Status != "delivered" {
		t.Errorf("expected delivered, got %q", res.Status)
	}
	if res.DeliveredAt == nil {
		t.Error("expected deliveredAt")
	}

	req = httptest.NewRequest("GET", "/whatsapp/status/wamid.unknown", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown message, got %d", w.Code)
	}
}

func TestTemplatesEndpoint(t *testing.T) {
	r := newRouter(&MockSender{}, &MockMessageRepo{})

	req := httptest.NewRequest("GET", "/whatsapp/templates", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res struct {
		Data []model.Template `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(res.Data) != 1 || res.Data[0].ID != "welcome" {
		t.Errorf("expected the approved template set, got %+v", res.Data)
	}
}
