// internal/whatsapp/client.go
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	appErrors "github.com/agentbook/whatsapp-relay/internal/errors"
)

// Sender is the outbound provider port. The relay and the inbox worker both
// talk to the Cloud API through this interface so tests can count calls.
type Sender interface {
	SendTemplate(ctx context.Context, to string, template, language string, params []string) (string, error)
	SendText(ctx context.Context, to, body string) (string, error)
}

// Client calls the WhatsApp Cloud API messages endpoint for one business
// phone number.
type Client struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	HTTPClient    *http.Client
}

// NewClient builds a provider client with the given send timeout applied to
// every outbound call.
func NewClient(baseURL, phoneNumberID, accessToken string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:       baseURL,
		PhoneNumberID: phoneNumberID,
		AccessToken:   accessToken,
		HTTPClient:    &http.Client{Timeout: timeout},
	}
}

type templatePayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         templateBody `json:"template"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components,omitempty"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendTemplate submits a template message and returns the provider message id.
// params are already bound to the template's placeholders, in placeholder order.
func (c *Client) SendTemplate(ctx context.Context, to string, template, language string, params []string) (string, error) {
	payload := templatePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: templateBody{
			Name:     template,
			Language: templateLanguage{Code: language},
		},
	}
	if len(params) > 0 {
		component := templateComponent{Type: "body"}
		for _, p := range params {
			component.Parameters = append(component.Parameters, templateParameter{Type: "text", Text: p})
		}
		payload.Template.Components = []templateComponent{component}
	}
	return c.send(ctx, payload)
}

// SendText submits a free-form text message (session messages, auto-replies).
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	}
	return c.send(ctx, payload)
}

func (c *Client) send(ctx context.Context, payload interface{}) (string, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", appErrors.NewTransport(err, isTimeout(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.NewTransport(err, false)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", appErrors.NewProvider(resp.StatusCode, string(body))
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", appErrors.NewProvider(resp.StatusCode, string(body))
	}
	if len(parsed.Messages) == 0 {
		return "", appErrors.NewProvider(resp.StatusCode, string(body))
	}
	return parsed.Messages[0].ID, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
