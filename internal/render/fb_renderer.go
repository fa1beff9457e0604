package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/rook-computer/moodlight/internal/palette"
	"github.com/rook-computer/moodlight/internal/render/layout"
)

const DefaultDevice = "/dev/fb0"

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FBRenderer paints the LED color onto the Linux framebuffer. Every Set
// redraws the logical canvas and scales it onto the device synchronously.
type FBRenderer struct {
	Device string
	Logger Logger

	dev    *fb.Device
	fbDev  draw.Image
	canvas *image.RGBA
	ttFont *truetype.Font
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{Device: DefaultDevice} }

func (r *FBRenderer) Start() error {
	if r.Device == "" {
		r.Device = DefaultDevice
	}
	dev, err := fb.Open(r.Device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.Device, err)
	}
	r.dev = dev
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return r.prepare()
}

// prepare allocates the canvas and parses the label font.
func (r *FBRenderer) prepare() error {
	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// The swatch is still useful without a label.
		if r.Logger != nil {
			r.Logger.Errorf("fb", "font parse failed, drawing without labels: %v", err)
		}
		return nil
	}
	r.ttFont = tt
	return nil
}

func (r *FBRenderer) Stop() error {
	if r.fbDev != nil {
		r.Set(palette.Black)
	}
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
	r.fbDev = nil
	return nil
}

func (r *FBRenderer) Set(c palette.Color) {
	if r.canvas == nil || r.fbDev == nil {
		return
	}
	r.paint(c)
	blitToFB(r.fbDev, r.canvas)
}

// paint draws the swatch, one bar per channel, and the hex label.
func (r *FBRenderer) paint(c palette.Color) {
	fill(r.canvas, r.canvas.Bounds(), Background)

	area := layout.Inset(r.canvas.Bounds(), PaddingPx)
	swatch, footer := layout.SplitHorizontal(area, int(float64(area.Dy())*SwatchShare))
	fill(r.canvas, swatch, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})

	label, bars := layout.SplitVertical(layout.Inset(footer, PaddingPx/2), area.Dx()/2)
	channelColors := []color.RGBA{
		{R: 0xFF, A: 0xFF},
		{G: 0xFF, A: 0xFF},
		{B: 0xFF, A: 0xFF},
	}
	levels := []uint8{c.R, c.G, c.B}
	for i, col := range layout.Columns(bars, 3, PaddingPx/2) {
		fill(r.canvas, layout.FillFromBottom(col, levels[i]), channelColors[i])
	}

	r.drawLabel(fmt.Sprintf("%s  %d %d %d", c.Hex(), c.R, c.G, c.B), label)
}

func (r *FBRenderer) drawLabel(text string, rect image.Rectangle) {
	if r.ttFont == nil {
		return
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.ttFont)
	ctx.SetFontSize(LabelSizePt)
	ctx.SetClip(rect)
	ctx.SetDst(r.canvas)
	ctx.SetSrc(image.NewUniform(Foreground))
	baseline := rect.Min.Y + (rect.Dy()+int(LabelSizePt))/2
	if _, err := ctx.DrawString(text, freetype.Pt(rect.Min.X, baseline)); err != nil && r.Logger != nil {
		r.Logger.Errorf("fb", "label draw failed: %v", err)
	}
}

func fill(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// blitToFB scales the canvas onto the framebuffer with nearest-neighbor sampling.
func blitToFB(dev draw.Image, canvas *image.RGBA) {
	xdraw.NearestNeighbor.Scale(dev, dev.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
}
