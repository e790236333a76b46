package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"vr-quiz-engine/internal/canvas"
	"vr-quiz-engine/internal/domain"
	"vr-quiz-engine/internal/infra/memory"
	"vr-quiz-engine/internal/quiz"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(map[string][]domain.Question{
		"en": {
			{
				ID:           "q1",
				Language:     "en",
				Text:         "Which planet is known as the Red Planet?",
				Options:      []string{"Venus", "Mars", "Jupiter", "Mercury"},
				CorrectIndex: 1,
			},
		},
	}), time.Minute)

	wsHandler := NewWSHandler(EngineConfig{
		Questions:       repo,
		Verifier:        quiz.NewRepositoryVerifier(repo),
		PanelHalf:       0.8,
		Duration:        20,
		UrgencyRatio:    0.25,
		FrameInterval:   10 * time.Millisecond,
		DefaultLanguage: "en",
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	return httptest.NewServer(mux)
}

func TestWebSocketSelectionFlow(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?lang=en"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "next"}); err != nil {
		t.Fatalf("write next: %v", err)
	}
	question := awaitMessage(conn, t, "question")
	var view domain.QuestionView
	if err := json.Unmarshal(question, &view); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	if view.Options[1] != "Mars" {
		t.Fatalf("unexpected question payload: %+v", view)
	}

	// Aim the pointer at the center of option 1's band. The engine's camera
	// sits at (0, 1.6, 0) looking down -Z with the panel two meters ahead.
	layout := canvas.DefaultLayout()
	rect := layout.OptionRect(1)
	pyCenter := float64(rect.Min.Y+rect.Max.Y) / 2
	localY := 0.8 - pyCenter/canvas.Size*1.6
	halfH := math.Tan(30 * math.Pi / 180)
	ndcY := localY / 2 / halfH

	if err := conn.WriteJSON(map[string]any{
		"type":    "pointer",
		"payload": map[string]any{"x": 0.0, "y": ndcY},
	}); err != nil {
		t.Fatalf("write pointer: %v", err)
	}

	reveal := awaitMessage(conn, t, "reveal")
	if err := json.Unmarshal(reveal, &view); err != nil {
		t.Fatalf("decode reveal: %v", err)
	}
	if view.SelectedIndex != 1 || view.CorrectIndex != 1 || !view.Revealed {
		t.Fatalf("expected option 1 selected and revealed correct, got %+v", view)
	}

	if err := conn.WriteJSON(map[string]any{"type": "hide"}); err != nil {
		t.Fatalf("write hide: %v", err)
	}
	awaitMessage(conn, t, "hidden")
}

func TestWebSocketRejectsUnknownType(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"type": "bogus"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	awaitMessage(conn, t, "error")
}

// awaitMessage reads frames until one of the wanted type arrives, skipping
// ticks and texture frames.
func awaitMessage(conn *websocket.Conn, t *testing.T, want string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if msg.Type == want {
			return msg.Payload
		}
	}
	t.Fatalf("timed out waiting for %q", want)
	return nil
}
