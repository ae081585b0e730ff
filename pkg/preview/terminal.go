package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalfBlock draws two vertical pixels per cell: foreground on top,
// background below.
const upperHalfBlock = "▀"

// RenderBlocks draws img as colored half-block characters, at most cols
// cells wide and rows cells tall.
func RenderBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	small := Thumbnail(img, cols, rows*2)
	b := small.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(small.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(small.At(x, y+1)))
			}
			sb.WriteString(style.Render(upperHalfBlock))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// WriterSurface prints previews to a terminal stream.
type WriterSurface struct {
	W io.Writer
	// Cols and Rows bound the rendered image in character cells.
	Cols int
	Rows int
}

// ShowImage implements Surface.
func (s *WriterSurface) ShowImage(img image.Image) {
	b := img.Bounds()
	fmt.Fprintf(s.W, "%dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintln(s.W, RenderBlocks(img, s.Cols, s.Rows))
}

// ShowText implements Surface.
func (s *WriterSurface) ShowText(text string) {
	fmt.Fprint(s.W, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(s.W)
	}
}

// ShowNotice implements Surface.
func (s *WriterSurface) ShowNotice(msg string) {
	fmt.Fprintln(s.W, msg)
}
