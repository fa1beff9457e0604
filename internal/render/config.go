package render

import "image/color"

// Global render configuration for the preview canvas.
var (
	Background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	Foreground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}

	// Logical canvas size; scaled to the framebuffer on every write.
	CanvasWidth  = 480
	CanvasHeight = 270

	// Share of the canvas height given to the color swatch.
	SwatchShare = 0.7
	PaddingPx   = 12
	LabelSizePt = 18.0
)
