package main

import (
	"image/color"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadUIFont parses the bundled Go Regular face. If it fails, returns
// basicfont.Face7x13.
func LoadUIFont(size float64) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Warn("font parse failed, using basic font", "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		slog.Warn("font face failed, using basic font", "err", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// y is the top of the first line; text.Draw wants the baseline.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}
