// Package buildcache remembers the raw stroke data hash of every word an
// archive was built from, so that rebuilds only normalize changed words.
package buildcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"os"
	"path"
	"sort"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/model"
)

const cacheVersion = 1

const cacheFileName = "build.cache"

// Cache maps words to the hash of the strokes their picture was built
// from.
type Cache struct {
	CacheVersion int               `json:"cache_version"`
	Archive      string            `json:"archive"`
	Words        map[string]string `json:"words"`

	path string
}

func New(path string) *Cache {
	return &Cache{CacheVersion: cacheVersion, Words: make(map[string]string), path: path}
}

// Path returns the default cache location.
func Path() (string, error) {
	cachedir, err := os.UserCacheDir()
	if err == nil {
		folder := path.Join(cachedir, "lightswitch")
		if err = os.MkdirAll(folder, 0700); err == nil {
			return path.Join(folder, cacheFileName), nil
		}
	}

	// fall back to the home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	folder := path.Join(home, ".lightswitch-cache")
	if err := os.MkdirAll(folder, 0700); err != nil {
		return "", err
	}
	return path.Join(folder, cacheFileName), nil
}

// Load reads the cache at path. A missing, corrupt or outdated cache
// yields an empty one.
func Load(path string) (*Cache, error) {
	c := New(path)
	if _, err := os.Stat(path); err != nil {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, c); err != nil {
		log.Error.Println("build cache corrupt, rebuilding")
		return New(path), nil
	}
	if c.CacheVersion != cacheVersion {
		log.Info.Println("wrong build cache version, rebuilding")
		return New(path), nil
	}
	if c.Words == nil {
		c.Words = make(map[string]string)
	}
	c.path = path
	log.Info.Println("build cache loaded: ", path)
	return c, nil
}

// Save writes the cache back to where it was loaded from.
func (c *Cache) Save() error {
	log.Info.Println("Writing build cache: ", c.path)
	c.CacheVersion = cacheVersion
	b, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0644)
}

// Unchanged reports whether word was built from strokes with hash.
func (c *Cache) Unchanged(word, hash string) bool {
	h, ok := c.Words[word]
	return ok && h == hash
}

func (c *Cache) Set(word, hash string) {
	c.Words[word] = hash
}

// Diff lists the words that differ between the cache and hashes.
type Diff struct {
	New      []string `json:"new"`
	Modified []string `json:"modified"`
	Deleted  []string `json:"deleted"`
}

func (d *Diff) HasChanges() bool {
	return len(d.New)+len(d.Modified)+len(d.Deleted) > 0
}

// Compare computes the changes from the cached words to hashes.
func (c *Cache) Compare(hashes map[string]string) *Diff {
	d := &Diff{}
	for w, h := range hashes {
		prev, ok := c.Words[w]
		switch {
		case !ok:
			d.New = append(d.New, w)
		case prev != h:
			d.Modified = append(d.Modified, w)
		}
	}
	for w := range c.Words {
		if _, ok := hashes[w]; !ok {
			d.Deleted = append(d.Deleted, w)
		}
	}
	sort.Strings(d.New)
	sort.Strings(d.Modified)
	sort.Strings(d.Deleted)
	return d
}

// Retain drops every word not in keep.
func (c *Cache) Retain(keep map[string]string) {
	for w := range c.Words {
		if _, ok := keep[w]; !ok {
			delete(c.Words, w)
		}
	}
}

// HashWord hashes the raw strokes of a word. Stroke boundaries are part of
// the hash, so moving a sample to another stroke changes it.
func HashWord(p model.WordPicture) string {
	hasher := sha256.New()
	var buf [8]byte
	for _, stroke := range p {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(stroke)))
		hasher.Write(buf[:])
		for _, s := range stroke {
			for _, f := range [...]float64{s.X, s.Y, s.Time, s.Pressure} {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
				hasher.Write(buf[:])
			}
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// HashEntries hashes the encoded blobs of an archive in key order.
func HashEntries(z *archive.Zip) (string, error) {
	hasher := sha256.New()
	for _, w := range z.Words() {
		blob, ok := z.Raw(w)
		if !ok {
			continue
		}
		h := sha256.Sum256(blob)
		hasher.Write([]byte(w))
		hasher.Write(h[:])
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
