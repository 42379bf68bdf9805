// Package dlib provides a FaceProvider backed by dlib's ResNet face
// recognition model through github.com/Kagami/go-face.
//
// The implementation needs cgo and the dlib libraries, so it is only
// compiled with the "dlib" build tag. Without it NewProvider returns
// ErrNotBuilt.
package dlib

import "errors"

// DefaultTolerance is the distance under which two dlib descriptors are
// considered the same person.
const DefaultTolerance = 0.6

// ErrNotBuilt is returned by NewProvider in binaries built without the dlib tag
var ErrNotBuilt = errors.New("dlib provider not available: rebuild with -tags dlib")

// Config configures the dlib recognizer
type Config struct {
	// ModelsDir must contain shape_predictor_5_face_landmarks.dat,
	// dlib_face_recognition_resnet_model_v1.dat and mmod_human_face_detector.dat
	ModelsDir string
	// JPEGQuality is used when other formats are transcoded for dlib
	JPEGQuality int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ModelsDir:   "models",
		JPEGQuality: 95,
	}
}
