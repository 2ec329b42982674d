package main

import "image/color"

const (
	// --- HUD ---
	HUDMarginX  = 10
	HUDMarginY  = 10
	HUDFontSize = 14.0

	// --- Drawing ---
	StrokeWidth        = 1.5
	DanglingMarkerSize = 6.0

	// FitMargin is the share of the drawing size left around it by F.
	FitMargin = 0.1

	ScreenshotFile    = "screenshot.png"
	DefaultConfigFile = "kerf-view.yaml"
)

var (
	// --- Colors ---
	ColorBackground  = color.RGBA{30, 30, 35, 255}
	ColorGridMinor   = color.RGBA{255, 255, 255, 14}
	ColorGridMajor   = color.RGBA{255, 255, 255, 36}
	ColorOriginCross = color.RGBA{255, 100, 100, 150}
	ColorHUD         = color.RGBA{220, 220, 220, 255}
	ColorClosed      = color.RGBA{100, 200, 255, 255}
	ColorOpen        = color.RGBA{255, 200, 50, 255}
	ColorDangling    = color.RGBA{220, 50, 50, 255}
	ColorOffset      = color.RGBA{120, 230, 120, 255}
)
