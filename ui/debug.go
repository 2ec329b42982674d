package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelW     = 360
	panelLineH = 16
	panelPad   = 8
	panelLines = 4
)

// DebugPanel shows the last viewer error in the bottom-right corner.
type DebugPanel struct {
	Error string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

func (d *DebugPanel) lines() []string {
	lines := strings.Split(d.Error, "\n")
	if len(lines) > panelLines {
		lines = lines[:panelLines]
	}
	return lines
}

func (d *DebugPanel) rect(getScreenSize func() (int, int)) (x, y, w, h int) {
	sw, sh := getScreenSize()
	w = panelW
	h = len(d.lines())*panelLineH + 2*panelPad
	return sw - w - 10, sh - h - 10, w, h
}

func (d *DebugPanel) IsMouseOver(mx, my int, getScreenSize func() (int, int)) bool {
	if d == nil || d.Error == "" {
		return false
	}
	x, y, w, h := d.rect(getScreenSize)
	return mx >= x && mx <= x+w && my >= y && my <= y+h
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText TextFunc) {
	if d == nil || d.Error == "" {
		return
	}
	x, y, w, h := d.rect(getScreenSize)
	bg := color.RGBA{40, 40, 40, 220}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bg, false)
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	for i, line := range d.lines() {
		drawText(screen, face, line, x+panelPad, y+panelPad+i*panelLineH, color.RGBA{255, 200, 50, 255})
	}
}
