package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return &buf
}

func TestProcessSmallImagePassesThrough(t *testing.T) {
	photo, err := Process(encodePNG(t, 100, 50))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected JPEG output, got %s", photo.MIME)
	}

	img, err := jpeg.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("small image was resized: %v", img.Bounds())
	}
}

func TestProcessDownscalesLargeImage(t *testing.T) {
	photo, err := Process(encodePNG(t, 1600, 800))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != MaxDimension || img.Bounds().Dy() != MaxDimension/2 {
		t.Errorf("unexpected dimensions after downscale: %v", img.Bounds())
	}
}

func TestThumbnail(t *testing.T) {
	photo, err := Thumbnail(encodePNG(t, 1000, 400))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != ThumbnailSize {
		t.Errorf("expected width %d, got %v", ThumbnailSize, img.Bounds())
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	if _, err := Process(strings.NewReader("definitely not an image")); err == nil {
		t.Error("expected error for non-image input")
	}
}
