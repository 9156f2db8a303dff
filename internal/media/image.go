package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxWidth     = 1280
	PreviewWidth = 320
	jpegQuality  = 85
)

var ErrUnsupportedImage = errors.New("unsupported image")

type Encoded struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Normalize decodes a png, jpeg or webp upload and re-encodes it as a JPEG
// no wider than MaxWidth, which is what Telegram accepts for photos.
func Normalize(r io.Reader) (*Encoded, image.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img := fit(src, MaxWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, nil, err
	}

	b := img.Bounds()
	return &Encoded{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, img, nil
}

// Preview renders a small lossy webp thumbnail for the admin audit trail.
func Preview(img image.Image) (*Encoded, error) {
	small := fit(img, PreviewWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, small, &webp.Options{Quality: 70}); err != nil {
		return nil, err
	}

	b := small.Bounds()
	return &Encoded{
		Data:        buf.Bytes(),
		ContentType: "image/webp",
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func fit(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
