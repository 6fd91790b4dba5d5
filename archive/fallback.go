package archive

import (
	"math/rand"
	"sync"

	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/pkg/errors"
)

// FallbackPicker chooses a substitute for a word missing from the archive.
// available is never empty.
type FallbackPicker interface {
	Pick(requested string, available []string) string
}

// RandomPicker picks uniformly, from Preferred when any of those words are
// available and from all available words otherwise.
type RandomPicker struct {
	Rand      *rand.Rand
	Preferred []string
}

func (p RandomPicker) Pick(requested string, available []string) string {
	candidates := available
	if len(p.Preferred) > 0 {
		present := make(map[string]bool, len(available))
		for _, w := range available {
			present[w] = true
		}
		var preferred []string
		for _, w := range p.Preferred {
			if present[Key(w)] {
				preferred = append(preferred, Key(w))
			}
		}
		if len(preferred) > 0 {
			candidates = preferred
		}
	}
	if p.Rand != nil {
		return candidates[p.Rand.Intn(len(candidates))]
	}
	return candidates[rand.Intn(len(candidates))]
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewSharedRand returns a generator that is safe to use from several
// goroutines, for pickers shared by HTTP handlers.
func NewSharedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed)})
}

// LoadOrFallback loads word, substituting a word chosen by picker when the
// archive has no entry for it. It returns the word actually loaded.
func (z *Zip) LoadOrFallback(word string, picker FallbackPicker) (string, vertex.Stream, error) {
	key := Key(word)
	s, err := z.Load(key)
	if err == nil {
		return key, s, nil
	}

	var notFound *WordNotFoundError
	if !errors.As(err, &notFound) {
		return key, nil, err
	}

	available := z.Words()
	if len(available) == 0 {
		return key, nil, err
	}

	substitute := picker.Pick(key, available)
	log.Warning.Printf("no picture for %q, using %q", key, substitute)
	s, err = z.Load(substitute)
	if err != nil {
		return substitute, nil, err
	}
	return substitute, s, nil
}
