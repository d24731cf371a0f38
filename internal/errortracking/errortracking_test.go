package errortracking

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/MediaProc/internal/config"
)

const testDSN = "https://public@example.com/1"

func TestNew_NoDSN(t *testing.T) {
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r != nil {
		t.Fatal("expected nil reporter without a DSN")
	}
	r.Capture(errors.New("ignored"), nil)
	if !r.Flush() {
		t.Error("nil reporter Flush should report success")
	}
}

func TestNew_InvalidDSN(t *testing.T) {
	if _, err := New(Options{DSN: "not a dsn"}); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}

func TestReporter_Capture(t *testing.T) {
	transport := &sentry.MockTransport{}
	r, err := New(Options{DSN: testDSN, Environment: "test", Transport: transport})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Capture(errors.New("ffmpeg failed with exit code 1"), map[string]string{"route": "/extract-audio"})
	r.Capture(nil, nil)
	r.Flush()

	events := transport.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Environment != "test" {
		t.Errorf("Environment = %q, want test", ev.Environment)
	}
	if ev.Tags["route"] != "/extract-audio" {
		t.Errorf("route tag = %q", ev.Tags["route"])
	}
	if len(ev.Exception) == 0 || ev.Exception[len(ev.Exception)-1].Value != "ffmpeg failed with exit code 1" {
		t.Errorf("unexpected exception payload: %+v", ev.Exception)
	}
}

func TestReporter_TagsDoNotLeakBetweenCaptures(t *testing.T) {
	transport := &sentry.MockTransport{}
	r, err := New(Options{DSN: testDSN, Transport: transport})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Capture(errors.New("first"), map[string]string{"route": "/burn-subtitles"})
	r.Capture(errors.New("second"), nil)

	events := transport.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[1].Tags["route"]; ok {
		t.Error("scope tags leaked into a later capture")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{}
	if r := FromConfig(cfg); r != nil {
		t.Error("expected nil reporter for empty DSN")
	}
	cfg.Sentry.DSN = "::bad::"
	if r := FromConfig(cfg); r != nil {
		t.Error("expected nil reporter for invalid DSN")
	}
}
