package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// TextFunc draws s with its top-left corner at (x, y).
type TextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

const (
	buttonSize   = 30
	buttonMargin = 10
)

// Actions are the viewer callbacks behind the chrome buttons.
type Actions struct {
	ZoomIn  func()
	ZoomOut func()
	Reset   func()
}

type UISystem struct {
	buttons       []*Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      TextFunc
	Debug         *DebugPanel
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), actions Actions, drawText TextFunc) *UISystem {
	ui := &UISystem{
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		Debug:         &DebugPanel{},
	}
	ui.buttons = []*Button{
		{Label: "+", W: buttonSize, H: buttonSize, OnClick: actions.ZoomIn},
		{Label: "-", W: buttonSize, H: buttonSize, OnClick: actions.ZoomOut},
		{Label: "0", W: buttonSize, H: buttonSize, OnClick: actions.Reset},
	}
	ui.updateButtonPositions()
	return ui
}

// Buttons are laid out right to left along the top edge.
func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float32(w)
	for _, b := range ui.buttons {
		x -= b.W + buttonMargin
		b.X = x
		b.Y = buttonMargin
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return ui.Debug.IsMouseOver(mx, my, ui.getScreenSize)
}

// Click fires the button under (mx, my), if any.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		b.Draw(screen, ui.getFontFace, ui.drawText)
	}
	ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
}
