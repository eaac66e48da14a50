package model_test

import (
	"testing"
	"time"

	"github.com/agentbook/whatsapp-relay/internal/model"
)

func TestApplyStatusLastTimestampWins(t *testing.T) {
	msg := &model.Message{ID: "wamid.1", Status: model.StatusSent, StatusTimestamp: time.Unix(100, 0)}

	if !msg.ApplyStatus(model.StatusDelivered, time.Unix(200, 0)) {
		t.Fatal("newer event should apply")
	}
	if msg.Status != model.StatusDelivered {
		t.Errorf("expected delivered, got %q", msg.Status)
	}

	if msg.ApplyStatus(model.StatusSent, time.Unix(150, 0)) {
		t.Error("stale event must be dropped")
	}
	if msg.Status != model.StatusDelivered {
		t.Errorf("stale event changed status to %q", msg.Status)
	}
}

func TestApplyStatusStampsDeliveredAndRead(t *testing.T) {
	msg := &model.Message{ID: "wamid.1", Status: model.StatusSent, StatusTimestamp: time.Unix(100, 0)}

	msg.ApplyStatus(model.StatusDelivered, time.Unix(200, 0))
	if msg.DeliveredAt == nil || !msg.DeliveredAt.Equal(time.Unix(200, 0)) {
		t.Errorf("expected deliveredAt at t=200, got %v", msg.DeliveredAt)
	}

	msg.ApplyStatus(model.StatusRead, time.Unix(300, 0))
	if msg.ReadAt == nil || !msg.ReadAt.Equal(time.Unix(300, 0)) {
		t.Errorf("expected readAt at t=300, got %v", msg.ReadAt)
	}
	if !msg.DeliveredAt.Equal(time.Unix(200, 0)) {
		t.Errorf("deliveredAt must not move, got %v", msg.DeliveredAt)
	}
}

func TestTemplatePlaceholdersOrdered(t *testing.T) {
	tmpl := &model.Template{
		Body: "Hi {{firstName}}, your {{policyName}} policy renews on {{renewalDate}}. Bye {{firstName}}!",
	}

	got := tmpl.Placeholders()
	want := []string{"firstName", "policyName", "renewalDate"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placeholder %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTemplateNoPlaceholders(t *testing.T) {
	tmpl := &model.Template{Body: "Happy holidays!"}
	if got := tmpl.Placeholders(); len(got) != 0 {
		t.Errorf("expected no placeholders, got %v", got)
	}
}
