package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

type recordingSurface struct {
	images  []image.Image
	texts   []string
	notices []string
}

func (s *recordingSurface) ShowImage(img image.Image) { s.images = append(s.images, img) }
func (s *recordingSurface) ShowText(text string)      { s.texts = append(s.texts, text) }
func (s *recordingSurface) ShowNotice(msg string)     { s.notices = append(s.notices, msg) }

type fakeLauncher struct {
	opened []string
	err    error
}

func (l *fakeLauncher) Open(path string) error {
	l.opened = append(l.opened, path)
	return l.err
}

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, "pic.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestPreview_Image(t *testing.T) {
	dir := t.TempDir()
	launcher := &fakeLauncher{}
	d := NewDispatcher(WithLauncher(launcher))

	t.Run("large image is downscaled", func(t *testing.T) {
		s := &recordingSurface{}
		path := writePNG(t, dir, 800, 200)

		require.NoError(t, d.Preview(path, models.FileTypeImage, s))
		require.Len(t, s.images, 1)
		assert.Equal(t, 400, s.images[0].Bounds().Dx())
		assert.Equal(t, 100, s.images[0].Bounds().Dy())
	})

	t.Run("small image is kept", func(t *testing.T) {
		s := &recordingSurface{}
		path := writePNG(t, dir, 50, 30)

		require.NoError(t, d.Preview(path, models.FileTypeImage, s))
		require.Len(t, s.images, 1)
		assert.Equal(t, image.Rect(0, 0, 50, 30), s.images[0].Bounds())
	})

	t.Run("undecodable image", func(t *testing.T) {
		s := &recordingSurface{}
		path := writeFile(t, dir, "fake.png", []byte("not an image"))

		err := d.Preview(path, models.FileTypeImage, s)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsIO(err))
		assert.Empty(t, s.images)
	})

	t.Run("missing image", func(t *testing.T) {
		err := d.Preview(filepath.Join(dir, "gone.png"), models.FileTypeImage, &recordingSurface{})
		assert.True(t, pkgerrors.IsIO(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	assert.Empty(t, launcher.opened)
}

func TestPreview_Text(t *testing.T) {
	dir := t.TempDir()
	d := NewDispatcher(WithLauncher(&fakeLauncher{}))

	t.Run("utf8 content", func(t *testing.T) {
		s := &recordingSurface{}
		path := writeFile(t, dir, "notes.txt", []byte("Q1 notes\n第二行\n"))

		require.NoError(t, d.Preview(path, models.FileTypeText, s))
		assert.Equal(t, []string{"Q1 notes\n第二行\n"}, s.texts)
	})

	t.Run("invalid bytes are replaced", func(t *testing.T) {
		s := &recordingSurface{}
		path := writeFile(t, dir, "bad.txt", []byte("ok\xffok"))

		require.NoError(t, d.Preview(path, models.FileTypeText, s))
		require.Len(t, s.texts, 1)
		assert.Equal(t, "ok\uFFFDok", s.texts[0])
	})

	t.Run("missing file", func(t *testing.T) {
		s := &recordingSurface{}
		err := d.Preview(filepath.Join(dir, "nope.txt"), models.FileTypeText, s)
		assert.True(t, pkgerrors.IsIO(err))
		assert.Empty(t, s.texts)
	})
}

func TestPreview_External(t *testing.T) {
	dir := t.TempDir()
	video := writeFile(t, dir, "clip.mp4", []byte{0, 0, 0, 1})
	other := writeFile(t, dir, "doc.pdf", []byte("%PDF"))

	t.Run("video opens externally", func(t *testing.T) {
		launcher := &fakeLauncher{}
		s := &recordingSurface{}
		d := NewDispatcher(WithLauncher(launcher))

		require.NoError(t, d.Preview(video, models.FileTypeVideo, s))
		assert.Equal(t, []string{video}, launcher.opened)
		assert.Equal(t, []string{NoticeVideo}, s.notices)
	})

	t.Run("others opens externally", func(t *testing.T) {
		launcher := &fakeLauncher{}
		s := &recordingSurface{}
		d := NewDispatcher(WithLauncher(launcher))

		require.NoError(t, d.Preview(other, models.FileTypeOthers, s))
		assert.Equal(t, []string{other}, launcher.opened)
		assert.Equal(t, []string{NoticeUnsupported}, s.notices)
	})

	t.Run("missing video surfaces an error", func(t *testing.T) {
		launcher := &fakeLauncher{}
		s := &recordingSurface{}
		d := NewDispatcher(WithLauncher(launcher))

		err := d.Preview(filepath.Join(dir, "missing.mp4"), models.FileTypeVideo, s)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsIO(err) || pkgerrors.IsLaunch(err))
		assert.Empty(t, launcher.opened)
		assert.Empty(t, s.notices)
	})

	t.Run("launcher failure", func(t *testing.T) {
		launcher := &fakeLauncher{err: errors.New("no handler")}
		s := &recordingSurface{}
		d := NewDispatcher(WithLauncher(launcher))

		err := d.Preview(video, models.FileTypeVideo, s)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsLaunch(err))
		assert.Empty(t, s.notices)
	})
}

func TestWithMaxSize(t *testing.T) {
	path := writePNG(t, t.TempDir(), 300, 300)
	s := &recordingSurface{}
	d := NewDispatcher(WithMaxSize(100, 50))

	require.NoError(t, d.Preview(path, models.FileTypeImage, s))
	assert.Equal(t, image.Rect(0, 0, 50, 50), s.images[0].Bounds())
}

func TestWriterSurface(t *testing.T) {
	var buf bytes.Buffer
	s := &WriterSurface{W: &buf, Cols: 10, Rows: 5}

	s.ShowText("hello")
	s.ShowNotice(NoticeVideo)
	s.ShowImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "hello\n"+NoticeVideo+"\n4x4\n"))
	assert.Contains(t, out, upperHalfBlock)
}
