// Package strokes reads and writes raw handwriting datasets: a map from
// word to its strokes, each sample stored as [time, x, y, pressure] with a
// null time for samples the device did not timestamp.
package strokes

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/lightswitch/lightswitch/model"
	"github.com/pkg/errors"
)

type Format string

const (
	CBOR Format = "cbor"
	JSON Format = "json"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbor":
		return CBOR, nil
	case ".json":
		return JSON, nil
	}
	return "", errors.Errorf("unknown dataset extension %q", filepath.Ext(path))
}

type sample struct {
	_        struct{} `cbor:",toarray"`
	Time     *float64
	X        float64
	Y        float64
	Pressure float64
}

func (s sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Time, s.X, s.Y, s.Pressure})
}

func (s *sample) UnmarshalJSON(b []byte) error {
	var a []*float64
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a) != 4 {
		return errors.Errorf("sample has %d fields, want 4", len(a))
	}
	if a[1] == nil || a[2] == nil || a[3] == nil {
		return errors.New("sample position and pressure must not be null")
	}
	s.Time, s.X, s.Y, s.Pressure = a[0], *a[1], *a[2], *a[3]
	return nil
}

type dataset map[string][][]sample

func fromModel(words model.Words) dataset {
	d := make(dataset, len(words))
	for word, picture := range words {
		strokes := make([][]sample, len(picture))
		for i, stroke := range picture {
			strokes[i] = make([]sample, len(stroke))
			for j, s := range stroke {
				ws := sample{X: s.X, Y: s.Y, Pressure: s.Pressure}
				if s.HasTime() {
					t := s.Time
					ws.Time = &t
				}
				strokes[i][j] = ws
			}
		}
		d[word] = strokes
	}
	return d
}

func (d dataset) toModel() model.Words {
	words := make(model.Words, len(d))
	for word, strokes := range d {
		picture := make(model.WordPicture, len(strokes))
		for i, stroke := range strokes {
			picture[i] = make(model.Stroke, len(stroke))
			for j, ws := range stroke {
				s := model.Sample{X: ws.X, Y: ws.Y, Time: math.NaN(), Pressure: ws.Pressure}
				if ws.Time != nil {
					s.Time = *ws.Time
				}
				picture[i][j] = s
			}
		}
		words[strings.ToLower(word)] = picture
	}
	return words
}

// Decode reads a dataset. Keys are lower-cased.
func Decode(r io.Reader, f Format) (model.Words, error) {
	var d dataset
	switch f {
	case CBOR:
		mode, err := cbor.DecOptions{}.DecMode()
		if err != nil {
			return nil, errors.Wrap(err, "strokes: failed to initialize decoder")
		}
		if err := mode.NewDecoder(r).Decode(&d); err != nil {
			return nil, errors.Wrap(err, "strokes: failed to decode cbor")
		}
	case JSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, errors.Wrap(err, "strokes: failed to decode json")
		}
	default:
		return nil, errors.Errorf("strokes: unknown format %q", f)
	}
	return d.toModel(), nil
}

// Encode writes a dataset.
func Encode(w io.Writer, f Format, words model.Words) error {
	d := fromModel(words)
	switch f {
	case CBOR:
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return errors.Wrap(err, "strokes: failed to initialize encoder")
		}
		return mode.NewEncoder(w).Encode(d)
	case JSON:
		return json.NewEncoder(w).Encode(d)
	}
	return errors.Errorf("strokes: unknown format %q", f)
}

func ReadFile(path string) (model.Words, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, f)
}

func WriteFile(path string, words model.Words) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(file, f, words); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
