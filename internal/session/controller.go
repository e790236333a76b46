// Package session orchestrates one on-screen quiz question: it wires input
// selections through hit-testing, drives the countdown, and tells the render
// surface what to draw as the session moves Idle → Showing → Answered.
package session

import (
	"context"
	"log"

	"vr-quiz-engine/internal/canvas"
	"vr-quiz-engine/internal/clock"
	"vr-quiz-engine/internal/domain"
	"vr-quiz-engine/internal/input"
	"vr-quiz-engine/internal/quiz"
	"vr-quiz-engine/internal/scene"
)

// Hooks are the outward side effects of session transitions. All optional.
type Hooks struct {
	OnQuestion func(view domain.QuestionView)
	OnTick     func(remaining, max float64)
	// OnUrgency fires once per question when remaining/max first drops to
	// or below the configured ratio. Intended for the audio cue.
	OnUrgency func(remaining float64)
	OnReveal  func(view domain.QuestionView)
	OnExpired func(view domain.QuestionView)
	OnHidden  func()
}

// Config wires a Controller. Surface, Countdown, and Dispatcher are
// required; Verifier covers questions that arrive without a correct index;
// Root, when set, receives the panel object while a question is showing.
type Config struct {
	Surface    *canvas.Surface
	Countdown  *clock.Countdown
	Dispatcher *input.Dispatcher
	Verifier   quiz.AnswerVerifier
	Root       *scene.Group

	PanelPose scene.Mat4
	// PanelHalf is the panel's physical half-extent in world units. The
	// same value feeds the scene quad and hit-test mapping.
	PanelHalf float64

	// Duration is the per-question countdown in seconds.
	Duration float64
	// UrgencyRatio is the remaining/max fraction at which OnUrgency fires.
	UrgencyRatio float64

	Hooks Hooks
}

// Controller owns the session state machine. Single-threaded: input events
// and frame advances must arrive on the same goroutine; the Showing/Answered
// guard, not locking, resolves the selection-vs-expiry race.
type Controller struct {
	cfg   Config
	state State

	panel        *scene.Panel
	question     domain.Question
	view         domain.QuestionView
	urgencyFired bool

	// ctx is the host context of the current question, used for the
	// verification call triggered from an input event.
	ctx context.Context
}

func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg, state: Idle, ctx: context.Background()}
	cfg.Countdown.OnTick(c.handleTick)
	cfg.Countdown.OnExpire(c.handleExpiry)
	cfg.Dispatcher.OnSelection(c.handleSelection)
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// View returns the question view as currently drawn.
func (c *Controller) View() domain.QuestionView { return c.view }

// Show presents a question: fresh surface paint, countdown start, panel
// registered as the interactive target. A session still in Showing or
// Answered passes through Hide semantics first so nothing bleeds into the
// new question.
func (c *Controller) Show(ctx context.Context, q domain.Question) error {
	view, err := domain.NewQuestionView(q)
	if err != nil {
		return err
	}
	// Reject a bad duration before tearing down the previous question.
	if c.cfg.Duration <= 0 {
		return domain.ErrInvalidDuration
	}
	if c.state != Idle {
		c.Hide()
	}
	if err := c.cfg.Countdown.Start(c.cfg.Duration); err != nil {
		return err
	}

	c.ctx = ctx
	c.question = q
	c.view = view
	c.urgencyFired = false
	c.panel = scene.NewPanel("quiz-panel", c.cfg.PanelPose, c.cfg.PanelHalf)
	if c.cfg.Root != nil {
		c.cfg.Root.Add(c.panel)
	}

	c.cfg.Surface.PaintStatic()
	c.cfg.Surface.PaintTimer(c.cfg.Duration, c.cfg.Duration)
	c.cfg.Surface.PaintDynamic(view)
	c.cfg.Dispatcher.SetInteractive(c.panel)
	c.state = Showing

	if c.cfg.Hooks.OnQuestion != nil {
		c.cfg.Hooks.OnQuestion(view)
	}
	return nil
}

// Advance drives the countdown; the host calls it once per rendered frame.
func (c *Controller) Advance(dt float64) { c.cfg.Countdown.Advance(dt) }

// Hide removes the panel and returns to Idle. Also the cleanup path between
// consecutive questions: clock stopped, interactive set cleared so a
// disposed panel is never dispatched to, surface state dropped.
func (c *Controller) Hide() {
	if c.state == Idle {
		return
	}
	c.cfg.Countdown.Stop()
	c.cfg.Dispatcher.SetInteractive()
	if c.cfg.Root != nil && c.panel != nil {
		c.cfg.Root.Remove(c.panel)
	}
	c.panel = nil
	c.cfg.Surface.Reset()
	c.view = domain.QuestionView{SelectedIndex: domain.NoIndex, CorrectIndex: domain.NoIndex}
	c.state = Idle

	if c.cfg.Hooks.OnHidden != nil {
		c.cfg.Hooks.OnHidden()
	}
}

// handleSelection resolves a normalized selection event against the option
// bands. A miss keeps the session in Showing; a hit wins the race against
// expiry by stopping the clock before it can fire.
func (c *Controller) handleSelection(obj scene.Object, point scene.Vec3) {
	if c.state != Showing || c.panel == nil || obj != scene.Object(c.panel) {
		return
	}
	localX, localY := c.panel.ToLocal(point)
	layout := c.cfg.Surface.Layout()
	index, ok := layout.ResolveOption(localX, localY, c.panel.Half(), domain.OptionCount)
	if !ok {
		return
	}

	c.cfg.Countdown.Stop()
	c.state = Answered
	c.view.SelectedIndex = index
	c.cfg.Surface.PaintDynamic(c.view)

	c.resolveReveal(index)
	c.cfg.Surface.PaintDynamic(c.view)
	if c.cfg.Hooks.OnReveal != nil {
		c.cfg.Hooks.OnReveal(c.view)
	}
}

// resolveReveal fills in reveal data: from the question itself when it
// carries the correct index, otherwise from the external verifier. A failed
// verification leaves the session revealed without correctness data.
func (c *Controller) resolveReveal(selected int) {
	if c.question.CorrectIndex != domain.NoIndex {
		c.view.CorrectIndex = c.question.CorrectIndex
		c.view.Revealed = true
		return
	}
	if c.cfg.Verifier == nil {
		return
	}
	result, err := c.cfg.Verifier.CheckAnswer(c.ctx, c.question.ID, c.question.Options[selected], c.question.Language)
	if err != nil {
		log.Printf("answer verification failed for question %s: %v", c.question.ID, err)
		return
	}
	c.view.Revealed = true
	if result.IsCorrect {
		c.view.CorrectIndex = selected
	}
}

// handleExpiry forces the no-answer resolution. A selection already moved
// the session to Answered (and stopped the clock) makes this a no-op.
func (c *Controller) handleExpiry() {
	if c.state != Showing {
		return
	}
	c.state = Answered
	c.view.Revealed = true
	if c.question.CorrectIndex != domain.NoIndex {
		c.view.CorrectIndex = c.question.CorrectIndex
	}
	c.cfg.Surface.PaintDynamic(c.view)
	if c.cfg.Hooks.OnExpired != nil {
		c.cfg.Hooks.OnExpired(c.view)
	}
}

func (c *Controller) handleTick(remaining float64) {
	max := c.cfg.Countdown.Max()
	c.cfg.Surface.PaintTimer(remaining, max)
	if c.cfg.Hooks.OnTick != nil {
		c.cfg.Hooks.OnTick(remaining, max)
	}
	if c.urgencyFired || c.cfg.UrgencyRatio <= 0 || max <= 0 {
		return
	}
	if remaining/max <= c.cfg.UrgencyRatio {
		c.urgencyFired = true
		if c.cfg.Hooks.OnUrgency != nil {
			c.cfg.Hooks.OnUrgency(remaining)
		}
	}
}
