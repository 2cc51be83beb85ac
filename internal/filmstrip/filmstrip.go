// Package filmstrip renders recorded sheet positions as a strip of frames,
// one column per frame, for inspecting gesture and settle behavior.
package filmstrip

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/bottomsheet/pkg/sheet"
)

// Frame is one captured sheet state.
type Frame struct {
	Index       int
	Translation float64
	Dragging    bool
}

// Options controls the rendered layout. Zero values use defaults.
type Options struct {
	// Scale maps sheet pixels to image pixels.
	Scale float64
	// ColumnWidth is the width of one frame in image pixels.
	ColumnWidth int
	// Gap separates adjacent columns.
	Gap int
}

const (
	defaultScale       = 0.25
	defaultColumnWidth = 40
	defaultGap         = 2
	labelHeight        = 16
)

var (
	backgroundColor = color.RGBA{0x20, 0x20, 0x24, 0xff}
	containerColor  = color.RGBA{0x38, 0x38, 0x40, 0xff}
	sheetColor      = color.RGBA{0xe8, 0xe8, 0xee, 0xff}
	dragColor       = color.RGBA{0x6c, 0xa8, 0xf0, 0xff}
	detentColor     = color.RGBA{0xf0, 0x90, 0x40, 0xff}
	labelColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func (o Options) withDefaults() Options {
	if !(o.Scale > 0) {
		o.Scale = defaultScale
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = defaultColumnWidth
	}
	if o.Gap < 0 {
		o.Gap = 0
	} else if o.Gap == 0 {
		o.Gap = defaultGap
	}
	return o
}

// Render draws frames against geometry g. Each column shows the container,
// the visible sheet, the resolved detents as tick lines, and the frame's
// detent index underneath.
func Render(frames []Frame, g sheet.Geometry, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	container := math.Max(g.ContainerExtent, g.Tallest)
	height := int(math.Ceil(container*opts.Scale)) + labelHeight
	width := len(frames)*(opts.ColumnWidth+opts.Gap) + opts.Gap
	if width < 1 {
		width = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	bottom := height - labelHeight
	for i, f := range frames {
		x0 := opts.Gap + i*(opts.ColumnWidth+opts.Gap)
		x1 := x0 + opts.ColumnWidth
		fill(img, image.Rect(x0, 0, x1, bottom), containerColor)

		extent := math.Max(0, g.Tallest-f.Translation)
		top := bottom - int(math.Round(extent*opts.Scale))
		c := sheetColor
		if f.Dragging {
			c = dragColor
		}
		fill(img, image.Rect(x0, top, x1, bottom), c)

		for _, d := range g.Resolved {
			y := bottom - int(math.Round(d*opts.Scale))
			if y >= bottom {
				y = bottom - 1
			}
			fill(img, image.Rect(x0, y, x0+opts.ColumnWidth/4, y+1), detentColor)
		}

		drawLabel(img, fmt.Sprintf("%d", f.Index), x0, x1, height)
	}
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawLabel(img *image.RGBA, text string, x0, x1, height int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(text).Ceil()
	x := x0 + (x1-x0-w)/2
	d.Dot = fixed.P(x, height-3)
	d.DrawString(text)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteFile renders frames and writes the PNG to path.
func WriteFile(path string, frames []Frame, g sheet.Geometry, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create filmstrip: %w", err)
	}
	if err := Encode(f, Render(frames, g, opts)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode filmstrip: %w", err)
	}
	return f.Close()
}
