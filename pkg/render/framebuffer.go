package render

import (
	"image"
	"image/color"
	"iter"

	"github.com/chewxy/math32"
	"github.com/taigrr/wirecube/pkg/math3d"
)

// Framebuffer is a 2D array of pixels with a top-left origin.
// For terminal output the height is 2x the row count because each cell
// shows two pixels with a half-block character (▀).
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegment draws a pixel-space segment. The segment is first cut to the
// framebuffer bounds so far-off endpoints don't cost a walk across
// off-screen pixels; segments with non-finite coordinates are skipped.
// It reports whether anything was drawn.
func (fb *Framebuffer) DrawSegment(s Segment, c color.RGBA) bool {
	a, b, ok := clipToRect(s.A, s.B, 0, 0, float32(fb.Width-1), float32(fb.Height-1))
	if !ok {
		return false
	}
	fb.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), c)
	return true
}

// DrawSegments draws every segment in seq and returns how many were drawn.
func (fb *Framebuffer) DrawSegments(seq iter.Seq[Segment], c color.RGBA) int {
	n := 0
	for s := range seq {
		if fb.DrawSegment(s, c) {
			n++
		}
	}
	return n
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c color.RGBA) {
	// Top and bottom
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	// Left and right
	for py := y; py < y+h; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// clipToRect cuts segment a-b to [minX,maxX]x[minY,maxY] (Liang-Barsky).
func clipToRect(a, b math3d.Vec2, minX, minY, maxX, maxY float32) (math3d.Vec2, math3d.Vec2, bool) {
	if !finite(a.X) || !finite(a.Y) || !finite(b.X) || !finite(b.Y) {
		return a, b, false
	}
	if maxX < minX || maxY < minY {
		return a, b, false
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math32.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math32.Min(t1, r)
		}
	}

	return math3d.V2(a.X+t0*dx, a.Y+t0*dy), math3d.V2(a.X+t1*dx, a.Y+t1*dy), true
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func round(f float32) int {
	return int(math32.Floor(f + 0.5))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
