package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"pm-studio-be/internal/pkg/logger"
	"pm-studio-be/pkg/events"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }
func (quietLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (h *Hub) clientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestHubDeliversToRegisteredClient(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	client := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 4)}
	h.register <- client
	waitFor(t, "registration", func() bool { return h.clientCount("s1") == 1 })

	h.Send("s1", events.NewPhaseAdvanced("s1", "ASSIGNMENT", "RESEARCH"))

	select {
	case raw := <-client.Send:
		var msg map[string]interface{}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal delivered frame: %v", err)
		}
		if msg["type"] != events.TypePhaseAdvanced {
			t.Errorf("frame type = %v, want %v", msg["type"], events.TypePhaseAdvanced)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestHubSurvivesSlowClient(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	// No reader on Send, so every delivery hits the drop branch.
	slow := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte)}
	h.register <- slow
	waitFor(t, "registration", func() bool { return h.clientCount("s1") == 1 })

	h.Send("s1", events.NewPhaseAdvanced("s1", "ASSIGNMENT", "RESEARCH"))
	waitFor(t, "slow client eviction", func() bool { return h.clientCount("s1") == 0 })

	// The hub closed Send exactly once; a panic would have killed Run and
	// left the client registered forever.
	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected Send to be closed, got a frame")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send never closed after eviction")
	}

	// The hub loop is still alive and serves the next client.
	healthy := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 1)}
	h.register <- healthy
	waitFor(t, "new registration", func() bool { return h.clientCount("s1") == 1 })

	h.Send("s1", events.NewPhaseAdvanced("s1", "RESEARCH", "PLANNING"))
	select {
	case <-healthy.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after evicting slow client")
	}
}
