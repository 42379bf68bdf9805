// Package memory holds the in-memory identity index used by the matcher.
package memory

import (
	"sync"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// Index is the ordered, concurrency-safe set of known identities.
// Insertion order is significant: the matcher breaks distance ties by lowest position.
type Index struct {
	mu      sync.RWMutex
	names   []string
	vectors [][]float64
	origins []domain.Origin
}

func NewIndex() *Index {
	return &Index{}
}

// Initialize replaces the contents with seed entries followed by stored entries,
// skipping any name already present (seed files win over repository rows).
func (idx *Index) Initialize(seed, stored []domain.Identity) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.names = make([]string, 0, len(seed)+len(stored))
	idx.vectors = make([][]float64, 0, len(seed)+len(stored))
	idx.origins = make([]domain.Origin, 0, len(seed)+len(stored))

	seen := make(map[string]struct{}, len(seed)+len(stored))
	add := func(entries []domain.Identity, origin domain.Origin) {
		for _, e := range entries {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			idx.appendLocked(e.Name, e.Embedding, origin)
		}
	}

	add(seed, domain.OriginSeed)
	add(stored, domain.OriginRepository)
}

// Append adds an entry unconditionally. Duplicate names are allowed here.
func (idx *Index) Append(name string, embedding []float64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.appendLocked(name, embedding, domain.OriginEnrollment)
}

func (idx *Index) appendLocked(name string, embedding []float64, origin domain.Origin) {
	idx.names = append(idx.names, name)
	idx.vectors = append(idx.vectors, append([]float64(nil), embedding...))
	idx.origins = append(idx.origins, origin)
}

// Snapshot returns positionally aligned copies of names and embeddings.
// Embedding slices are shared but never mutated after insertion.
func (idx *Index) Snapshot() ([]string, [][]float64) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	names := make([]string, len(idx.names))
	copy(names, idx.names)

	vectors := make([][]float64, len(idx.vectors))
	copy(vectors, idx.vectors)

	return names, vectors
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.names)
}

// Entries returns a copy of every entry in insertion order
func (idx *Index) Entries() []domain.Identity {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entries := make([]domain.Identity, len(idx.names))
	for i := range idx.names {
		entries[i] = domain.Identity{
			Name:      idx.names[i],
			Embedding: append([]float64(nil), idx.vectors[i]...),
			Origin:    idx.origins[i],
		}
	}

	return entries
}
