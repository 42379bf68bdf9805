package domain

// UnknownName is reported for a face that matches no enrolled identity.
const UnknownName = "Unknown"

// Origin tells where an in-memory identity came from. It is never persisted.
type Origin string

const (
	OriginSeed       Origin = "seed"
	OriginRepository Origin = "repository"
	OriginEnrollment Origin = "enrollment"
)

// Identity is a named face embedding
type Identity struct {
	Name      string    `json:"name"`
	Embedding []float64 `json:"-"`
	Origin    Origin    `json:"origin"`
}

// BoundingBox represents the face area in the image
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Recognition is the match decision for a single detected face
type Recognition struct {
	Name        string      `json:"name"`
	Matched     bool        `json:"matched"`
	Distance    float64     `json:"distance"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// EnrollStatusSuccess is the only status an enrollment reports; failures are errors.
const EnrollStatusSuccess = "success"

// EnrollOutcome describes a completed enrollment.
// Persisted is false when the name was already in durable storage; the
// enrollment still succeeds because the in-memory index accepted it.
type EnrollOutcome struct {
	Status         string `json:"status"`
	Name           string `json:"name"`
	SamplesUsed    int    `json:"samples_used"`
	SamplesDropped int    `json:"samples_dropped"`
	Persisted      bool   `json:"persisted"`
}
