// Package preview shows a cataloged file: images and text are rendered on a
// caller-supplied Surface, everything else is handed to the platform's
// default viewer.
package preview

import (
	"image"
	"os"

	"github.com/rs/zerolog"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// Default bounding box for inline images.
const (
	DefaultMaxWidth  = 400
	DefaultMaxHeight = 400
)

// Notices shown after an external hand-off.
const (
	NoticeVideo       = "Video file, opened with the external player"
	NoticeUnsupported = "Unsupported type, opened with the external program"
)

// Surface is the display area a preview is rendered onto. The caller owns it.
type Surface interface {
	ShowImage(img image.Image)
	ShowText(text string)
	ShowNotice(msg string)
}

// Dispatcher decides how a file is previewed and performs it.
type Dispatcher struct {
	launcher  Launcher
	maxWidth  int
	maxHeight int
	textLimit int64
	log       zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLauncher replaces the external viewer launcher.
func WithLauncher(l Launcher) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.launcher = l
		}
	}
}

// WithMaxSize sets the bounding box images are downscaled into.
func WithMaxSize(width, height int) Option {
	return func(d *Dispatcher) {
		if width > 0 && height > 0 {
			d.maxWidth, d.maxHeight = width, height
		}
	}
}

// WithTextLimit caps how many bytes of a text file are read. Zero reads the
// whole file.
func WithTextLimit(n int64) Option {
	return func(d *Dispatcher) {
		if n >= 0 {
			d.textLimit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = logger
	}
}

// NewDispatcher returns a Dispatcher using the system launcher and a
// 400x400 image box unless overridden.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		launcher:  SystemLauncher,
		maxWidth:  DefaultMaxWidth,
		maxHeight: DefaultMaxHeight,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With().Str("component", "preview").Logger()
	return d
}

// Preview renders path according to fileType. Failures are returned as
// *errors.IOError or *errors.LaunchError; the surface is left untouched
// when an error is returned.
func (d *Dispatcher) Preview(path string, fileType models.FileType, s Surface) error {
	log := d.log.With().Str("path", path).Str("file_type", string(fileType)).Logger()

	switch fileType {
	case models.FileTypeImage:
		img, err := LoadThumbnail(path, d.maxWidth, d.maxHeight)
		if err != nil {
			log.Warn().Err(err).Msg("image preview failed")
			return err
		}
		s.ShowImage(img)

	case models.FileTypeText:
		text, err := ReadText(path, d.textLimit)
		if err != nil {
			log.Warn().Err(err).Msg("text preview failed")
			return err
		}
		s.ShowText(text)

	case models.FileTypeVideo:
		if err := d.openExternally(path); err != nil {
			log.Warn().Err(err).Msg("external open failed")
			return err
		}
		s.ShowNotice(NoticeVideo)

	default:
		if err := d.openExternally(path); err != nil {
			log.Warn().Err(err).Msg("external open failed")
			return err
		}
		s.ShowNotice(NoticeUnsupported)
	}

	log.Debug().Msg("previewed")
	return nil
}

// openExternally hands path to the launcher. A missing file is reported
// before launching since the launcher returns without waiting.
func (d *Dispatcher) openExternally(path string) error {
	if _, err := os.Stat(path); err != nil {
		return pkgerrors.NewIOError("stat", path, err)
	}
	if err := d.launcher.Open(path); err != nil {
		return pkgerrors.NewLaunchError(path, err)
	}
	return nil
}
