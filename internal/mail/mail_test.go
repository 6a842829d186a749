package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConsoleMailer(t *testing.T) {
	var buf bytes.Buffer
	m := ConsoleMailer{Log: zerolog.New(&buf), From: "no-reply@example.com"}

	err := m.Send(context.Background(), Message{To: "ana@example.com", Subject: "Reset", Body: "link"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ana@example.com", "Reset", "link", "no-reply@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestSMTPMailer(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "user", "pass", "no-reply@example.com")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), Message{To: "ana@example.com", Subject: "Hello", Body: "line1\nline2"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotAuth == nil {
		t.Errorf("auth = nil with username set")
	}
	if gotFrom != "no-reply@example.com" || len(gotTo) != 1 || gotTo[0] != "ana@example.com" {
		t.Errorf("envelope from=%q to=%v", gotFrom, gotTo)
	}
	body := string(gotMsg)
	if !strings.Contains(body, "Subject: Hello\r\n") || !strings.Contains(body, "line1\r\nline2") {
		t.Errorf("message = %q", body)
	}
}

func TestSMTPMailerErrors(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 25, "", "", "no-reply@example.com")
	sendErr := errors.New("connection refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return sendErr }

	if err := m.Send(context.Background(), Message{To: "ana@example.com"}); !errors.Is(err, sendErr) {
		t.Errorf("Send() error = %v, want wrapped %v", err, sendErr)
	}
	if err := m.Send(context.Background(), Message{To: ""}); err == nil {
		t.Errorf("Send() empty recipient error = nil")
	}
	if err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "x\r\nBcc: evil@example.com"}); err == nil {
		t.Errorf("Send() header injection error = nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, Message{To: "ana@example.com"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Send() canceled ctx error = %v", err)
	}
}
