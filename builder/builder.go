// Package builder turns a raw stroke dataset into a picture archive.
package builder

import (
	"context"
	"sort"
	"sync"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/buildcache"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/model"
	"github.com/lightswitch/lightswitch/normalize"
	"github.com/lightswitch/lightswitch/vertex"
	"golang.org/x/sync/semaphore"
)

const DefaultWorkers = 4

type Options struct {
	Normalize normalize.Options
	// Workers bounds the number of words normalized at once.
	Workers int64
}

// Result reports what happened to every word.
type Result struct {
	Built   []string
	Copied  []string
	Skipped map[string]error
}

type job struct {
	word   string
	stream vertex.Stream
	err    error
}

// Build normalizes words into a new archive. When prev and cache are set,
// words whose strokes hash to the cached value and whose blob is readable
// in prev are copied over instead of normalized again. Degenerate words
// are skipped and reported. cache is updated to describe the new archive.
func Build(ctx context.Context, words model.Words, prev *archive.Zip, cache *buildcache.Cache, opts Options) (*archive.Zip, *Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	out := archive.NewZip()
	res := &Result{Skipped: make(map[string]error)}
	hashes := make(map[string]string, len(words))

	var todo []string
	for _, w := range keys {
		key := archive.Key(w)
		hash := buildcache.HashWord(words[w])
		hashes[key] = hash

		if prev != nil && cache != nil && cache.Unchanged(key, hash) {
			if blob, ok := prev.Raw(key); ok {
				if _, err := prev.Load(key); err == nil {
					out.SaveRaw(key, blob)
					res.Copied = append(res.Copied, key)
					continue
				}
			}
		}
		todo = append(todo, w)
	}

	jobs := make([]job, len(todo))
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(workers)
	for i, w := range todo {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		wg.Add(1)
		go func(i int, w string) {
			defer sem.Release(1)
			defer wg.Done()
			s, err := opts.Normalize.Normalize(words[w])
			jobs[i] = job{word: archive.Key(w), stream: s, err: err}
		}(i, w)
	}
	wg.Wait()

	for _, j := range jobs {
		if j.err != nil {
			log.Warning.Printf("skipping %q: %v", j.word, j.err)
			res.Skipped[j.word] = j.err
			delete(hashes, j.word)
			continue
		}
		log.Trace.Printf("%s: %d vertices", j.word, len(j.stream))
		out.Save(j.word, j.stream)
		res.Built = append(res.Built, j.word)
	}

	if cache != nil {
		cache.Retain(hashes)
		for w, h := range hashes {
			cache.Set(w, h)
		}
	}
	log.Info.Printf("built %d, copied %d, skipped %d", len(res.Built), len(res.Copied), len(res.Skipped))
	return out, res, nil
}

// Verify loads every entry of z back and compares it with the stream
// normalized from words. It returns the words that differ.
func Verify(z *archive.Zip, words model.Words, opts normalize.Options) []string {
	var bad []string
	for _, w := range z.Words() {
		raw, ok := words[w]
		if !ok {
			bad = append(bad, w)
			continue
		}
		want, err := opts.Normalize(raw)
		if err != nil {
			bad = append(bad, w)
			continue
		}
		got, err := z.Load(w)
		if err != nil || !got.Equal(want) {
			bad = append(bad, w)
		}
	}
	return bad
}
