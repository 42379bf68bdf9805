package deepface

// defaultTolerances are DeepFace's own euclidean verification thresholds.
// Embeddings are compared raw, so each model has its own distance scale.
var defaultTolerances = map[string]float64{
	"VGG-Face":     1.17,
	"Facenet":      10,
	"Facenet512":   23.56,
	"OpenFace":     0.55,
	"DeepFace":     64,
	"DeepID":       45,
	"ArcFace":      4.15,
	"Dlib":         0.6,
	"SFace":        10.734,
	"GhostFaceNet": 35.71,
}

// DefaultTolerance returns the euclidean match threshold for model.
// It reports false for a model without a known threshold.
func DefaultTolerance(model string) (float64, bool) {
	tolerance, ok := defaultTolerances[model]
	return tolerance, ok
}
