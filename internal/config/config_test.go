package config_test

import (
	"testing"

	"github.com/agentbook/whatsapp-relay/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "phone-123")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "token-abc")
	t.Setenv("WEBHOOK_VERIFY_TOKEN", "verify-secret")
}

func TestLoadFailsFastWithoutSigningSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected Load to fail without JWT_SECRET")
	}
}

func TestLoadFailsFastWithoutProviderCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected Load to fail without WHATSAPP_ACCESS_TOKEN")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.WhatsAppSendTimeout.Seconds() != 10 {
		t.Errorf("expected default send timeout 10s, got %v", cfg.WhatsAppSendTimeout)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_SEND_TIMEOUT", "soon")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected Load to reject a non-numeric timeout")
	}
}
