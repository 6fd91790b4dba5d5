// Package archive stores normalized vertex streams in a zip file, one
// DEFLATE compressed entry per word. Entries are independent: a damaged
// entry only fails the word it belongs to.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lightswitch/lightswitch/encoding/vbuf"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/pkg/errors"
)

// WordNotFoundError is returned by Load for a word that has no entry.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("no picture for word %q", e.Word)
}

// MalformedEntryError is returned by Load for an entry that can't be
// decoded.
type MalformedEntryError struct {
	Word string
	Err  error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.Word, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// Zip is an in-memory word picture archive.
type Zip struct {
	entries map[string][]byte
	broken  map[string]error
}

func NewZip() *Zip {
	return &Zip{
		entries: make(map[string][]byte),
		broken:  make(map[string]error),
	}
}

// Key normalizes a word to its archive key.
func Key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Open reads the archive at path.
func Open(path string) (*Zip, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return nil, err
	}

	z := NewZip()
	if err := z.Read(file, fi.Size()); err != nil {
		return nil, errors.Wrapf(err, "can't read archive %s", path)
	}
	log.Trace.Printf("loaded %d words from %s", z.Len(), path)
	return z, nil
}

// Read loads every entry of a zip file. Entries that fail to decompress
// are remembered and reported when the word is loaded.
func (z *Zip) Read(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		key := Key(f.Name)
		blob, err := readEntry(f)
		if err != nil {
			log.Warning.Printf("archive entry %q is damaged: %v", f.Name, err)
			z.broken[key] = err
			delete(z.entries, key)
			continue
		}
		z.entries[key] = blob
		delete(z.broken, key)
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ioutil.ReadAll(rc)
}

// Write encodes the archive as a zip file with entries in word order.
func (z *Zip) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, word := range z.Words() {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:   word,
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		if _, err := entry.Write(z.entries[word]); err != nil {
			return err
		}
	}
	return zw.Close()
}

// WriteFile writes the archive next to path and renames it into place.
func (z *Zip) WriteFile(path string) error {
	tmp, err := ioutil.TempFile(filepath.Dir(path), ".vbuf-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := z.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Save stores s under word, replacing any previous entry.
func (z *Zip) Save(word string, s vertex.Stream) {
	z.SaveRaw(word, vbuf.Marshal(s))
}

// SaveRaw stores an already encoded blob.
func (z *Zip) SaveRaw(word string, blob []byte) {
	key := Key(word)
	z.entries[key] = blob
	delete(z.broken, key)
}

// Raw returns the encoded blob for word.
func (z *Zip) Raw(word string) ([]byte, bool) {
	b, ok := z.entries[Key(word)]
	return b, ok
}

// Load decodes the stream stored for word.
func (z *Zip) Load(word string) (vertex.Stream, error) {
	key := Key(word)
	if err, ok := z.broken[key]; ok {
		return nil, &MalformedEntryError{Word: key, Err: err}
	}
	blob, ok := z.entries[key]
	if !ok {
		return nil, &WordNotFoundError{Word: key}
	}
	s, err := vbuf.Unmarshal(blob)
	if err != nil {
		return nil, &MalformedEntryError{Word: key, Err: err}
	}
	return s, nil
}

// Has reports whether word has an entry, damaged or not.
func (z *Zip) Has(word string) bool {
	key := Key(word)
	_, ok := z.entries[key]
	_, bad := z.broken[key]
	return ok || bad
}

// Words returns the sorted keys of all readable entries.
func (z *Zip) Words() []string {
	words := make([]string, 0, len(z.entries))
	for w := range z.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func (z *Zip) Len() int {
	return len(z.entries)
}
