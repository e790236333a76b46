// Package canvas owns the quiz panel's 2D drawing surface and the option
// hit-testing that must share its layout constants. Paint and hit-test read
// the same Layout; a geometry change in one place changes both.
package canvas

import (
	"image"

	"vr-quiz-engine/internal/domain"
)

// Size is the logical canvas resolution; the surface is Size x Size pixels
// regardless of the panel's physical size in world units.
const Size = 1024

// Layout fixes where everything sits on the canvas. Derived once from Size.
type Layout struct {
	Border int

	QuestionTop   int
	QuestionLeft  int
	QuestionWidth int
	LineHeight    int

	TimerTop    int
	TimerHeight int

	OptionStart   int // top of the first option band
	OptionHeight  int
	OptionSpacing int
	OptionMarginX int // shared horizontal band on both sides
}

// DefaultLayout is the canonical quiz panel layout.
func DefaultLayout() Layout {
	return Layout{
		Border:        16,
		QuestionTop:   96,
		QuestionLeft:  96,
		QuestionWidth: Size - 2*96,
		LineHeight:    40,
		TimerTop:      312,
		TimerHeight:   36,
		OptionStart:   400,
		OptionHeight:  120,
		OptionSpacing: 32,
		OptionMarginX: 96,
	}
}

// DynamicRect is the sub-region PaintDynamic clears and repaints: question
// text, timer strip, and option bands. The border and background outside it
// are only touched by PaintStatic.
func (l Layout) DynamicRect() image.Rectangle {
	bottom := l.OptionStart + domain.OptionCount*l.OptionHeight +
		(domain.OptionCount-1)*l.OptionSpacing
	return image.Rect(l.Border*2, l.QuestionTop-l.LineHeight, Size-l.Border*2, bottom+16)
}

// TimerRect is the strip repainted on every clock tick.
func (l Layout) TimerRect() image.Rectangle {
	return image.Rect(l.OptionMarginX, l.TimerTop, Size-l.OptionMarginX, l.TimerTop+l.TimerHeight)
}

// OptionRect is option i's band in canvas pixels.
func (l Layout) OptionRect(i int) image.Rectangle {
	top := l.OptionStart + i*(l.OptionHeight+l.OptionSpacing)
	return image.Rect(l.OptionMarginX, top, Size-l.OptionMarginX, top+l.OptionHeight)
}

// ResolveOption maps a panel-local point to the option index under it.
// localX/localY are in [-half, +half] with +Y up (scene convention); the
// canvas maps X left-to-right and Y top-down, so Y inverts. Points outside
// the shared horizontal band, above the first option, between bands, or
// below the last return ok=false.
func (l Layout) ResolveOption(localX, localY, half float64, optionCount int) (int, bool) {
	if half <= 0 {
		return 0, false
	}
	px := (localX + half) / (2 * half) * Size
	py := (half - localY) / (2 * half) * Size

	if px < float64(l.OptionMarginX) || px > float64(Size-l.OptionMarginX) {
		return 0, false
	}
	for i := 0; i < optionCount; i++ {
		top := float64(l.OptionStart + i*(l.OptionHeight+l.OptionSpacing))
		if py >= top && py <= top+float64(l.OptionHeight) {
			return i, true
		}
	}
	return 0, false
}
