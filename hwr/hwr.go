// Package hwr checks word pictures against a handwriting recognition
// service: a picture whose recognized text differs from its word is likely
// mislabeled in the dataset.
package hwr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/model"
	"golang.org/x/sync/semaphore"
)

const (
	envApplicationKey = "LIGHTSWITCH_HWR_APPLICATIONKEY"
	envHmac           = "LIGHTSWITCH_HWR_HMAC"
)

var ErrNoStrokes = errors.New("word has no strokes")

type Config struct {
	Lang      string
	BatchSize int64
}

// Result is the recognition outcome for one word.
type Result struct {
	Word       string `json:"word"`
	Recognized string `json:"recognized"`
	Err        error  `json:"-"`
}

func (r Result) Match() bool {
	return r.Err == nil && strings.EqualFold(strings.TrimSpace(r.Recognized), r.Word)
}

// Keys reads the service credentials from the environment.
func Keys(getenv func(string) string) (applicationKey, hmacKey string, err error) {
	applicationKey = getenv(envApplicationKey)
	if applicationKey == "" {
		return "", "", errors.New(envApplicationKey + " environment variable is required")
	}
	hmacKey = getenv(envHmac)
	if hmacKey == "" {
		return "", "", errors.New(envHmac + " environment variable is required")
	}
	return applicationKey, hmacKey, nil
}

// Verify recognizes every word, at most cfg.BatchSize at a time, and
// returns the results in word order.
func Verify(ctx context.Context, client *Client, words model.Words, cfg Config) ([]Result, error) {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 1
	}

	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	results := make([]Result, len(keys))
	sem := semaphore.NewWeighted(batch)
	var wg sync.WaitGroup
	for i, w := range keys {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, w string) {
			defer sem.Release(1)
			defer wg.Done()
			results[i] = recognize(ctx, client, w, words[w], cfg.Lang)
		}(i, w)
	}
	wg.Wait()
	return results, nil
}

func recognize(ctx context.Context, client *Client, word string, p model.WordPicture, lang string) Result {
	res := Result{Word: word}
	js, err := getJSON(p, lang)
	if err != nil {
		res.Err = err
		return res
	}
	body, err := client.SendRequest(ctx, js)
	if err != nil {
		log.Trace.Printf("%s: %v", word, err)
		res.Err = err
		return res
	}
	res.Recognized = extractLabel(body)
	log.Trace.Printf("%s: recognized %q", word, res.Recognized)
	return res
}

// getJSON converts a raw word picture to a batch request. Time is sent in
// milliseconds from the first sample; samples without time are left out.
func getJSON(p model.WordPicture, lang string) ([]byte, error) {
	batch := BatchInput{
		Configuration: &Configuration{Lang: lang},
		ContentType:   "Text",
		StrokeGroups:  []*StrokeGroup{{}},
	}
	sg := batch.StrokeGroups[0]

	t0 := math.NaN()
	for _, stroke := range p {
		stroke = stroke.Trimmed()
		if len(stroke) == 0 {
			continue
		}
		if math.IsNaN(t0) {
			t0 = stroke[0].Time
		}
		s := &Stroke{PointerType: "PEN"}
		for _, sample := range stroke {
			s.X = append(s.X, float32(sample.X))
			s.Y = append(s.Y, float32(sample.Y))
			s.P = append(s.P, float32(math.Min(1, sample.Pressure/1000)))
			s.T = append(s.T, int64(math.Round((sample.Time-t0)*1000)))
		}
		sg.Strokes = append(sg.Strokes, s)
	}
	if len(sg.Strokes) == 0 {
		return nil, ErrNoStrokes
	}
	return json.Marshal(batch)
}

// extractLabel returns the recognized text of a JIIX response, or the
// trimmed body when it is plain text.
func extractLabel(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return string(data)
	}

	var j jiix
	if err := json.Unmarshal(data, &j); err != nil {
		log.Trace.Printf("extractLabel: failed to unmarshal JSON: %v", err)
		return string(data)
	}
	switch {
	case j.Label != "":
		return j.Label
	case j.Text != "":
		return j.Text
	}
	var parts []string
	for _, w := range j.Words {
		if w.Label != "" {
			parts = append(parts, w.Label)
		}
	}
	return strings.Join(parts, " ")
}
