//go:build !dlib

package dlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProvider_WithoutDlibTag(t *testing.T) {
	p, err := NewProvider(DefaultConfig())

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotBuilt)
}
