package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestNormalizeShrinksWideImages(t *testing.T) {
	out, _, err := Normalize(pngOf(t, 2560, 1000))
	if err != nil {
		t.Fatal(err)
	}
	if out.ContentType != "image/jpeg" || out.Width != MaxWidth || out.Height != 500 {
		t.Fatalf("unexpected result %s %dx%d", out.ContentType, out.Width, out.Height)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != MaxWidth || cfg.Height != 500 {
		t.Fatalf("encoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, _, err := Normalize(pngOf(t, 640, 480))
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 640 || out.Height != 480 {
		t.Fatalf("unexpected size %dx%d", out.Width, out.Height)
	}
}

func TestNormalizeAcceptsWebp(t *testing.T) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 50)), &webp.Options{Lossless: true}); err != nil {
		t.Fatal(err)
	}

	out, _, err := Normalize(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 100 || out.Height != 50 {
		t.Fatalf("unexpected size %dx%d", out.Width, out.Height)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, _, err := Normalize(strings.NewReader("not an image"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	_, img, err := Normalize(pngOf(t, 1000, 500))
	if err != nil {
		t.Fatal(err)
	}

	prev, err := Preview(img)
	if err != nil {
		t.Fatal(err)
	}
	if prev.ContentType != "image/webp" || prev.Width != PreviewWidth || prev.Height != 160 {
		t.Fatalf("unexpected preview %s %dx%d", prev.ContentType, prev.Width, prev.Height)
	}
	if _, err := webp.Decode(bytes.NewReader(prev.Data)); err != nil {
		t.Fatalf("preview is not webp: %v", err)
	}
}
