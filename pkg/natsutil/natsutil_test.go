package natsutil

import (
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
)

type testEvent struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
}

func TestNatsHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{}
	carrier := (*natsHeaderCarrier)(msg)

	carrier.Set("traceparent", "00-abc-def-01")
	if got := carrier.Get("traceparent"); got != "00-abc-def-01" {
		t.Fatalf("expected traceparent, got %q", got)
	}

	if keys := carrier.Keys(); len(keys) != 1 {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestNatsHeaderCarrierNilHeader(t *testing.T) {
	msg := &nats.Msg{}
	carrier := (*natsHeaderCarrier)(msg)

	if got := carrier.Get("missing"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if keys := carrier.Keys(); keys != nil {
		t.Fatalf("expected nil keys, got %v", keys)
	}
}

func TestEventRoundTrips(t *testing.T) {
	ev := testEvent{VideoID: "dQw4w9WgXcQ", Status: "ranking"}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}

	var decoded testEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != ev {
		t.Fatalf("unexpected: %+v", decoded)
	}
}
