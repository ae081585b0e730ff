package tui

import (
	"fmt"
	"image"

	"github.com/charmbracelet/lipgloss"

	"github.com/justin0804nitsuj/memo/pkg/preview"
)

// paneSurface renders a preview into a string sized for the preview pane.
type paneSurface struct {
	cols    int
	rows    int
	content string
}

func (s *paneSurface) ShowImage(img image.Image) {
	b := img.Bounds()
	s.content = fmt.Sprintf("%dx%d\n%s", b.Dx(), b.Dy(), preview.RenderBlocks(img, s.cols, s.rows-1))
}

func (s *paneSurface) ShowText(text string) {
	if s.cols > 0 {
		text = lipgloss.NewStyle().Width(s.cols).Render(text)
	}
	s.content = text
}

func (s *paneSurface) ShowNotice(msg string) {
	s.content = noticeStyle.Render(msg)
}
