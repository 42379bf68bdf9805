// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"crypto/sha512"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"
)

const (
	faceSide = 64
	faceGrid = 8
)

// PNG encodes a w x h image filled with a pattern derived from seed.
func PNG(t testing.TB, w, h int, seed byte) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: byte(x) + seed,
				G: byte(y) ^ seed,
				B: seed,
				A: 255,
			})
		}
	}
	return encode(t, img)
}

// FaceImage is the first sample of person, large enough for the mock
// provider to detect one face.
func FaceImage(t testing.TB, person byte) []byte {
	t.Helper()
	return FaceSample(t, person, 0)
}

// FaceSample renders a grayscale face of person. Every person owns an 8x8
// grid of cell intensities; variant shifts each cell slightly and adds
// pixel noise, so two samples of one person differ in bytes but look
// alike, while different people look nothing alike.
func FaceSample(t testing.TB, person, variant byte) []byte {
	t.Helper()

	levels := sha512.Sum512([]byte{'p', person})
	rng := rand.New(rand.NewPCG(uint64(person), uint64(variant)))

	var offsets [faceGrid * faceGrid]int
	for i := range offsets {
		offsets[i] = rng.IntN(13) - 6
	}

	cell := faceSide / faceGrid
	img := image.NewGray(image.Rect(0, 0, faceSide, faceSide))
	for y := 0; y < faceSide; y++ {
		for x := 0; x < faceSide; x++ {
			c := (y/cell)*faceGrid + x/cell
			v := int(levels[c]) + offsets[c] + rng.IntN(25) - 12
			img.SetGray(x, y, color.Gray{Y: clamp(v)})
		}
	}
	return encode(t, img)
}

// BlankImage is a PNG too small to contain a face.
func BlankImage(t testing.TB) []byte {
	t.Helper()
	return PNG(t, 4, 4, 0)
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func encode(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
