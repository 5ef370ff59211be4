package sse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

const unexpectedOutput = "unexpected output:\n--- got ---\n%q\n--- want ---\n%q"

func newTestEmitter() (*Emitter, *bytes.Buffer) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	return NewBufioEmitter(bw, "test"), &buf
}

func TestSendEventWithAllFields(t *testing.T) {
	em, buf := newTestEmitter()

	ev := Event{
		ID:    "789",
		Type:  "log",
		Retry: 1500 * time.Millisecond,
		Data:  []byte(`{"ok":true}`),
	}
	if err := em.Send(ev); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	got := buf.String()
	want := "" +
		"id: 789\n" +
		"event: log\n" +
		"retry: 1500\n" +
		"data: {\"ok\":true}\n\n"

	if got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestSendEventMinimal(t *testing.T) {
	em, buf := newTestEmitter()

	if err := em.Send(Event{Data: []byte(`{"msg":"hi"}`)}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	got := buf.String()
	want := "data: {\"msg\":\"hi\"}\n\n"
	if got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestSendJSON(t *testing.T) {
	em, buf := newTestEmitter()

	type payload struct {
		Step int `json:"step"`
	}
	if flowErr := em.SendJSON("42", "progress", payload{Step: 7}); flowErr.Err != nil {
		t.Fatalf("SendJSON returned error: %v", flowErr.Err)
	}

	wantJSON, _ := json.Marshal(payload{Step: 7})
	want := "" +
		"id: 42\n" +
		"event: progress\n" +
		"data: " + string(wantJSON) + "\n\n"

	if got := buf.String(); got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestHeartbeat(t *testing.T) {
	em, buf := newTestEmitter()

	if err := em.Heartbeat(); err != nil {
		t.Fatalf("Heartbeat returned error: %v", err)
	}

	got := buf.String()
	want := ": ping\n\n"
	if got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestMultipleEvents(t *testing.T) {
	em, buf := newTestEmitter()

	if err := em.Send(Event{ID: "1", Type: "tick", Data: []byte(`"a"`)}); err != nil {
		t.Fatalf("Send #1 error: %v", err)
	}
	if err := em.Send(Event{ID: "2", Type: "tick", Data: []byte(`"b"`)}); err != nil {
		t.Fatalf("Send #2 error: %v", err)
	}
	if err := em.Heartbeat(); err != nil {
		t.Fatalf("Heartbeat error: %v", err)
	}

	got := buf.String()
	want := "" +
		"id: 1\nevent: tick\ndata: \"a\"\n\n" +
		"id: 2\nevent: tick\ndata: \"b\"\n\n" +
		": ping\n\n"

	if got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}
