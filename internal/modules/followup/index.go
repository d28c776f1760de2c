package followup

import (
	"math"
	"sort"
	"sync"
)

// Entry is one answered query kept for follow-up lookups.
type Entry struct {
	Query  string
	Reply  string
	Vector []float32
}

type Match struct {
	Entry
	Score float64
}

// Index is a bounded in-memory cosine-similarity index. Oldest entries are
// evicted once capacity is reached.
type Index struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

func NewIndex(capacity int) *Index {
	if capacity <= 0 {
		capacity = 1
	}
	return &Index{capacity: capacity}
}

func (i *Index) Add(e Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.entries) == i.capacity {
		i.entries = append(i.entries[:0:0], i.entries[1:]...)
	}
	i.entries = append(i.entries, e)
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Search returns at most k entries scoring at least minScore, best first.
// Ties keep the newer entry first.
func (i *Index) Search(vector []float32, k int, minScore float64) []Match {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var matches []Match
	for j := len(i.entries) - 1; j >= 0; j-- {
		score := cosine(vector, i.entries[j].Vector)
		if score >= minScore {
			matches = append(matches, Match{Entry: i.entries[j], Score: score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Score > matches[b].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// cosine is 0 for vectors of different length or zero magnitude.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for j := range a {
		dot += float64(a[j]) * float64(b[j])
		na += float64(a[j]) * float64(a[j])
		nb += float64(b[j]) * float64(b[j])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
