package deepface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTolerance(t *testing.T) {
	tolerance, ok := DefaultTolerance("Facenet512")
	assert.True(t, ok)
	assert.Equal(t, 23.56, tolerance)

	tolerance, ok = DefaultTolerance(DefaultConfig().Model)
	assert.True(t, ok)
	assert.Greater(t, tolerance, 1.0, "default model distances are not on the unit scale")

	_, ok = DefaultTolerance("MyCustomNet")
	assert.False(t, ok)
}
