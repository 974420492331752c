// Package imaging normalizes uploaded item photos: format sniffing, a size
// cap, and a small thumbnail for checklist rows.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// Photos are kept small: they identify an item on a phone screen, they are
// not an archive.
const (
	MaxDimension  = 800
	ThumbnailSize = 96
	JPEGQuality   = 80
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a processed image ready for storage.
type Photo struct {
	Data []byte
	MIME string
}

// Process validates an uploaded image by sniffing its bytes, scales it down
// to fit MaxDimension, and re-encodes it as JPEG.
func Process(r io.Reader) (*Photo, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return encode(fit(img, MaxDimension))
}

// Thumbnail produces a small square-ish preview for list rows.
func Thumbnail(r io.Reader) (*Photo, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return encode(fit(img, ThumbnailSize))
}

func decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	// Client headers lie; sniff the actual bytes.
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s, only JPEG and PNG accepted", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func encode(img image.Image) (*Photo, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// fit scales img down so neither dimension exceeds max, preserving aspect
// ratio. Images already within bounds pass through untouched.
func fit(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	newW, newH := max, max
	if w > h {
		newH = h * max / w
	} else {
		newW = w * max / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
