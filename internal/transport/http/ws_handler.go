// Package http bridges the interaction engine to a websocket host: the
// browser/VR runtime streams pointer and controller events in, and receives
// session transitions plus re-uploads of the panel texture.
package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"vr-quiz-engine/internal/canvas"
	"vr-quiz-engine/internal/clock"
	"vr-quiz-engine/internal/domain"
	"vr-quiz-engine/internal/input"
	"vr-quiz-engine/internal/quiz"
	"vr-quiz-engine/internal/scene"
	"vr-quiz-engine/internal/session"
)

// EngineConfig is everything needed to build one per-connection engine.
type EngineConfig struct {
	Questions quiz.QuestionRepository
	Verifier  quiz.AnswerVerifier

	PanelHalf    float64
	Duration     float64
	UrgencyRatio float64

	// FrameInterval paces the engine's Advance loop.
	FrameInterval time.Duration
	// FrameMinGap throttles full texture frames to the host.
	FrameMinGap time.Duration

	DefaultLanguage string
}

// WSHandler upgrades HTTP requests to websockets and runs one engine per
// connection. The engine goroutine is the sole owner of the session state;
// reader and ticker both feed it through channels, preserving the
// single-threaded frame model.
type WSHandler struct {
	cfg      EngineConfig
	upgrader websocket.Upgrader
}

func NewWSHandler(cfg EngineConfig) *WSHandler {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 50 * time.Millisecond
	}
	if cfg.FrameMinGap <= 0 {
		cfg.FrameMinGap = 200 * time.Millisecond
	}
	return &WSHandler{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type pointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type vec3Payload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type triggerPayload struct {
	Position vec3Payload `json:"position"`
	Forward  vec3Payload `json:"forward"`
}

type nextPayload struct {
	Language string `json:"language"`
}

type tickPayload struct {
	Remaining float64 `json:"remaining"`
	Max       float64 `json:"max"`
}

type framePayload struct {
	PNG string `json:"png"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs the host bridge for one connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("lang")
	if language == "" {
		language = h.cfg.DefaultLanguage
	}
	if language == "" {
		http.Error(w, "missing lang", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 32)
	events := make(chan inboundMessage, 32)
	engineDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// Keep draining so the engine never blocks on send.
				for range send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(engineDone)
		h.runEngine(r.Context(), language, events, send)
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		select {
		case events <- inbound:
		case <-engineDone:
		}
	}

	close(events)
	<-engineDone
	close(send)
	<-writerDone
}

// runEngine owns the engine for one connection: it is the only goroutine
// touching the controller, surface, and clock. Input events and frame ticks
// serialize here.
func (h *WSHandler) runEngine(ctx context.Context, language string, events <-chan inboundMessage, send chan<- outboundMessage[any]) {
	surface := canvas.NewSurface(canvas.DefaultLayout())
	dispatcher := input.NewDispatcher()
	root := scene.NewGroup("scene-root")

	// Desktop viewer rig: camera at head height, panel two meters ahead.
	camera := scene.Camera{
		Position: scene.Vec3{X: 0, Y: 1.6, Z: 0},
		Forward:  scene.Vec3{X: 0, Y: 0, Z: -1},
		Up:       scene.Vec3{X: 0, Y: 1, Z: 0},
		FOVY:     60 * math.Pi / 180,
		Aspect:   1,
	}

	ctrl := session.NewController(session.Config{
		Surface:      surface,
		Countdown:    clock.New(),
		Dispatcher:   dispatcher,
		Verifier:     h.cfg.Verifier,
		Root:         root,
		PanelPose:    scene.Translation(0, 1.6, -2),
		PanelHalf:    h.cfg.PanelHalf,
		Duration:     h.cfg.Duration,
		UrgencyRatio: h.cfg.UrgencyRatio,
		Hooks: session.Hooks{
			OnQuestion: func(view domain.QuestionView) {
				send <- outboundMessage[any]{Type: "question", Payload: view}
			},
			OnTick: func(remaining, max float64) {
				send <- outboundMessage[any]{Type: "tick", Payload: tickPayload{Remaining: remaining, Max: max}}
			},
			OnUrgency: func(remaining float64) {
				send <- outboundMessage[any]{Type: "urgency", Payload: tickPayload{Remaining: remaining, Max: h.cfg.Duration}}
			},
			OnReveal: func(view domain.QuestionView) {
				send <- outboundMessage[any]{Type: "reveal", Payload: view}
			},
			OnExpired: func(view domain.QuestionView) {
				send <- outboundMessage[any]{Type: "expired", Payload: view}
			},
			OnHidden: func() {
				send <- outboundMessage[any]{Type: "hidden", Payload: struct{}{}}
			},
		},
	})
	defer ctrl.Hide()

	ticker := time.NewTicker(h.cfg.FrameInterval)
	defer ticker.Stop()
	dt := h.cfg.FrameInterval.Seconds()
	var lastFrame time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ctrl.Advance(dt)
		case inbound, ok := <-events:
			if !ok {
				return
			}
			h.handleEvent(ctx, inbound, language, camera, ctrl, dispatcher, send)
		}

		if surface.Dirty() && time.Since(lastFrame) >= h.cfg.FrameMinGap {
			surface.ClearDirty()
			if encoded, err := encodeFrame(surface); err == nil {
				send <- outboundMessage[any]{Type: "frame", Payload: framePayload{PNG: encoded}}
				lastFrame = time.Now()
			}
		}
	}
}

func (h *WSHandler) handleEvent(ctx context.Context, inbound inboundMessage, language string, camera scene.Camera, ctrl *session.Controller, dispatcher *input.Dispatcher, send chan<- outboundMessage[any]) {
	switch inbound.Type {
	case "next":
		lang := language
		var payload nextPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err == nil && payload.Language != "" {
				lang = payload.Language
			}
		}
		q, err := h.cfg.Questions.Question(ctx, lang)
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return
		}
		if err := ctrl.Show(ctx, q); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	case "pointer":
		var payload pointerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid pointer payload"}}
			return
		}
		dispatcher.PointerSelect(camera, payload.X, payload.Y)
	case "trigger":
		var payload triggerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid trigger payload"}}
			return
		}
		pose := scene.LookPose(
			scene.Vec3{X: payload.Position.X, Y: payload.Position.Y, Z: payload.Position.Z},
			scene.Vec3{X: payload.Forward.X, Y: payload.Forward.Y, Z: payload.Forward.Z},
		)
		dispatcher.ControllerSelect(pose)
	case "hide":
		ctrl.Hide()
	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
	}
}

func encodeFrame(surface *canvas.Surface) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, surface.Image()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
