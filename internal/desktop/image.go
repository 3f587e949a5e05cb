// ABOUTME: Screenshot encoding: decode, downscale with CatmullRom, re-encode as a PNG data URI
// ABOUTME: Keeps vision payloads within the model's useful resolution

package desktop

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	goimage "image"
	"image/png"

	// Register decoders for capture tools that emit other formats.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// DefaultMaxImageDim bounds the longer screenshot edge.
const DefaultMaxImageDim = 1568

const pngDataURIPrefix = "data:image/png;base64,"

// EncodePNG decodes raw image bytes, scales them to fit within maxDim
// (aspect preserved; zero selects DefaultMaxImageDim), and returns a PNG data URI.
func EncodePNG(raw []byte, maxDim int) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("empty image data")
	}
	if maxDim <= 0 {
		maxDim = DefaultMaxImageDim
	}

	img, _, err := goimage.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if w, h := fitDimensions(b.Dx(), b.Dy(), maxDim); w != b.Dx() || h != b.Dy() {
		img = resizeImage(img, w, h)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI returns the bytes of a base64 PNG data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	if len(uri) < len(pngDataURIPrefix) || uri[:len(pngDataURIPrefix)] != pngDataURIPrefix {
		return nil, errors.New("not a PNG data URI")
	}
	return base64.StdEncoding.DecodeString(uri[len(pngDataURIPrefix):])
}

// fitDimensions calculates new dimensions that fit within maxDim while preserving aspect ratio.
func fitDimensions(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}

// resizeImage scales an image to the target dimensions using CatmullRom interpolation.
func resizeImage(src goimage.Image, w, h int) goimage.Image {
	dst := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
