package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Format selects the snapshot encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatWebP
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	default:
		return 0, fmt.Errorf("unsupported snapshot format %q (use .png or .webp)", ext)
	}
}

// Downsample scales img to width x height with CatmullRom filtering. It is
// used to resolve a supersampled framebuffer into the output size.
func Downsample(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %d", format)
	}
	return nil
}

// SaveImage encodes img to path, choosing the format from the extension.
// The file is removed if encoding fails.
func SaveImage(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return err
	}

	Logger().Info("snapshot saved", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
