package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const float64Size = 8

// EncodeEmbedding serializes an embedding as little-endian float64 values
// with no header, dim*8 bytes in total.
func EncodeEmbedding(embedding []float64) []byte {
	buf := make([]byte, len(embedding)*float64Size)
	for i, v := range embedding {
		binary.LittleEndian.PutUint64(buf[i*float64Size:], math.Float64bits(v))
	}
	return buf
}

// DecodeEmbedding is the inverse of EncodeEmbedding
func DecodeEmbedding(data []byte) ([]float64, error) {
	if len(data)%float64Size != 0 {
		return nil, fmt.Errorf("decode embedding: length %d is not a multiple of %d", len(data), float64Size)
	}

	embedding := make([]float64, len(data)/float64Size)
	for i := range embedding {
		embedding[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*float64Size:]))
	}
	return embedding, nil
}

// MeanEmbedding returns the element-wise arithmetic mean of the samples.
// All samples must share the same non-zero dimension.
func MeanEmbedding(samples [][]float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, errors.New("mean embedding: no samples")
	}

	dim := len(samples[0])
	if dim == 0 {
		return nil, errors.New("mean embedding: empty sample")
	}

	mean := make([]float64, dim)
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("mean embedding: sample %d has dimension %d, want %d", i, len(s), dim)
		}
		for j, v := range s {
			mean[j] += v
		}
	}

	n := float64(len(samples))
	for j := range mean {
		mean[j] /= n
	}

	return mean, nil
}
