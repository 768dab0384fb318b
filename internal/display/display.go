// Package display converts the CHIP-8 framebuffer into images and text.
package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"golang.org/x/image/draw"
)

// Palette defines the colors of switched off and switched on pixels.
type Palette struct {
	Background color.Color
	Foreground color.Color
}

// DefaultPalette draws white pixels on black.
var DefaultPalette = Palette{
	Background: color.Black,
	Foreground: color.White,
}

// Image returns the framebuffer as 64x32 pixel image.
func Image(fb machine.Framebuffer, palette Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, machine.Width, machine.Height))
	for y, row := range fb {
		for x, set := range row {
			c := palette.Background
			if set {
				c = palette.Foreground
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// Scale enlarges the image by an integer factor without smoothing.
func Scale(src image.Image, factor int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled framebuffer as PNG.
func WritePNG(w io.Writer, fb machine.Framebuffer, palette Palette, factor int) error {
	img := Scale(Image(fb, palette), factor)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the scaled framebuffer to a PNG file.
func SavePNG(path string, fb machine.Framebuffer, palette Palette, factor int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", path, err)
	}

	if err := WritePNG(file, fb, palette, factor); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", path, err)
	}
	return nil
}

// Text renders the framebuffer as lines of '#' and '.' characters.
func Text(fb machine.Framebuffer) string {
	var buf strings.Builder
	buf.Grow((machine.Width + 1) * machine.Height)
	for _, row := range fb {
		for _, set := range row {
			if set {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// HalfBlocks returns the rune that displays two vertically stacked pixels
// in a single terminal cell.
func HalfBlocks(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
