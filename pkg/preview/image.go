package preview

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// LoadThumbnail decodes the image at path and shrinks it to fit within
// maxWidth x maxHeight, keeping the aspect ratio. Smaller images are
// returned as decoded.
func LoadThumbnail(path string, maxWidth, maxHeight int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewIOError("open", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, pkgerrors.NewIOError("decode", path, err)
	}
	return Thumbnail(img, maxWidth, maxHeight), nil
}

// Thumbnail scales img down into the bounding box. It never enlarges.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if w == bounds.Dx() && h == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// fitWithin returns the largest size with the aspect ratio of w x h that
// fits in maxW x maxH, or w x h itself when it already fits.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}

	if w*maxH >= h*maxW {
		nh := h * maxW / w
		return maxW, max(nh, 1)
	}
	nw := w * maxH / h
	return max(nw, 1), maxH
}
