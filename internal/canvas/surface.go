package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"vr-quiz-engine/internal/domain"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 24, B: 38, A: 255}
	borderColor     = color.RGBA{R: 86, G: 120, B: 188, A: 255}
	textColor       = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	neutralFill     = color.RGBA{R: 44, G: 56, B: 82, A: 255}
	pendingFill     = color.RGBA{R: 196, G: 150, B: 34, A: 255}
	correctFill     = color.RGBA{R: 46, G: 148, B: 82, A: 255}
	incorrectFill   = color.RGBA{R: 172, G: 52, B: 52, A: 255}
	timerTrack      = color.RGBA{R: 30, G: 38, B: 56, A: 255}
	timerFill       = borderColor
)

// Surface owns the panel's backing texture: a fixed Size x Size RGBA image
// repainted in place. It is the only component that touches pixels; everyone
// else supplies data. Not safe for concurrent use; the frame loop owns it.
type Surface struct {
	img         *image.RGBA
	layout      Layout
	face        font.Face
	staticReady bool
	dirty       bool

	data          *domain.QuestionView
	lastRemaining float64
	lastMax       float64
}

func NewSurface(layout Layout) *Surface {
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, Size, Size)),
		layout: layout,
		face:   basicfont.Face7x13,
	}
}

// PaintStatic draws the background, border, and fixed decoration, then
// replays any dynamic content painted before it ran. Calling it again forces
// a full redraw.
func (s *Surface) PaintStatic() {
	fillRect(s.img, s.img.Bounds(), backgroundColor)
	b := s.layout.Border
	frame := s.img.Bounds()
	fillRect(s.img, image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, b), borderColor)
	fillRect(s.img, image.Rect(frame.Min.X, frame.Max.Y-b, frame.Max.X, frame.Max.Y), borderColor)
	fillRect(s.img, image.Rect(frame.Min.X, b, b, frame.Max.Y-b), borderColor)
	fillRect(s.img, image.Rect(frame.Max.X-b, b, frame.Max.X, frame.Max.Y-b), borderColor)

	s.staticReady = true
	s.dirty = true

	if s.data != nil {
		s.paintDynamic(*s.data)
	}
}

// PaintDynamic repaints only the dynamic sub-region (question text, timer
// strip, option pills) for the given view. Deferred until PaintStatic has
// run at least once; the view is kept and flushed by the next PaintStatic.
func (s *Surface) PaintDynamic(view domain.QuestionView) {
	data := view
	s.data = &data
	if !s.staticReady {
		return
	}
	s.paintDynamic(view)
}

func (s *Surface) paintDynamic(view domain.QuestionView) {
	fillRect(s.img, s.layout.DynamicRect(), backgroundColor)

	y := s.layout.QuestionTop
	for _, line := range wrapText(view.Text, s.face, s.layout.QuestionWidth) {
		// Excess lines are dropped rather than drawn into the timer strip.
		if y >= s.layout.TimerTop {
			break
		}
		s.drawText(line, s.layout.QuestionLeft, y, textColor)
		y += s.layout.LineHeight
	}

	s.paintTimerBar(s.lastRemaining, s.lastMax)

	for i := 0; i < domain.OptionCount; i++ {
		rect := s.layout.OptionRect(i)
		fillRoundedRect(s.img, rect, s.layout.OptionHeight/4, optionFill(view, i))
		baseline := rect.Min.Y + rect.Dy()/2 + s.face.Metrics().Ascent.Ceil()/2
		s.drawText(view.Options[i], rect.Min.X+32, baseline, textColor)
	}

	s.dirty = true
}

// PaintTimer repaints the timer strip only; the rest of the dynamic region
// is untouched. No-op before PaintStatic.
func (s *Surface) PaintTimer(remaining, max float64) {
	s.lastRemaining, s.lastMax = remaining, max
	if !s.staticReady {
		return
	}
	s.paintTimerBar(remaining, max)
	s.dirty = true
}

func (s *Surface) paintTimerBar(remaining, max float64) {
	rect := s.layout.TimerRect()
	fillRect(s.img, rect, timerTrack)
	if max <= 0 {
		return
	}
	ratio := remaining / max
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	width := int(float64(rect.Dx()) * ratio)
	fillRect(s.img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), timerFill)
}

// Layout exposes the geometry constants so hit-testing uses the exact
// numbers painting uses.
func (s *Surface) Layout() Layout { return s.layout }

// CurrentData returns the last view handed to PaintDynamic, if any.
func (s *Surface) CurrentData() (domain.QuestionView, bool) {
	if s.data == nil {
		return domain.QuestionView{}, false
	}
	return *s.data, true
}

// Dirty reports whether the texture needs re-uploading by the renderer.
func (s *Surface) Dirty() bool { return s.dirty }

// ClearDirty is called by the renderer after uploading the texture.
func (s *Surface) ClearDirty() { s.dirty = false }

// Image exposes the backing texture for upload/encoding. Callers must not
// retain it across paints.
func (s *Surface) Image() *image.RGBA { return s.img }

// Reset releases the surface's session state when the panel is hidden. The
// next show must run PaintStatic again.
func (s *Surface) Reset() {
	s.data = nil
	s.staticReady = false
	s.dirty = false
	s.lastRemaining, s.lastMax = 0, 0
}

// optionFill picks the single visual state for option i. The correct-index
// highlight wins over selected styling when both land on the same option.
func optionFill(view domain.QuestionView, i int) color.RGBA {
	switch {
	case view.Revealed && view.CorrectIndex != domain.NoIndex && i == view.CorrectIndex:
		return correctFill
	case view.Revealed && i == view.SelectedIndex:
		return incorrectFill
	case !view.Revealed && i == view.SelectedIndex:
		return pendingFill
	default:
		return neutralFill
	}
}

func (s *Surface) drawText(text string, x, y int, c color.RGBA) {
	drawer := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// wrapText breaks text at word boundaries so every line measures at most
// maxWidth pixels. A single word wider than maxWidth gets its own line.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// fillRoundedRect draws a pill: a rectangle whose corners are rounded with
// the given radius.
func fillRoundedRect(img *image.RGBA, rect image.Rectangle, radius int, c color.RGBA) {
	if radius*2 > rect.Dx() {
		radius = rect.Dx() / 2
	}
	if radius*2 > rect.Dy() {
		radius = rect.Dy() / 2
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !insideRounded(x, y, rect, radius) {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func insideRounded(x, y int, rect image.Rectangle, radius int) bool {
	cx, cy := x, y
	switch {
	case x < rect.Min.X+radius && y < rect.Min.Y+radius:
		cx, cy = rect.Min.X+radius, rect.Min.Y+radius
	case x >= rect.Max.X-radius && y < rect.Min.Y+radius:
		cx, cy = rect.Max.X-radius-1, rect.Min.Y+radius
	case x < rect.Min.X+radius && y >= rect.Max.Y-radius:
		cx, cy = rect.Min.X+radius, rect.Max.Y-radius-1
	case x >= rect.Max.X-radius && y >= rect.Max.Y-radius:
		cx, cy = rect.Max.X-radius-1, rect.Max.Y-radius-1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}
