package strokes

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightswitch/lightswitch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWords() model.Words {
	return model.Words{
		"cat": {
			{{X: 1, Y: 2, Time: 0, Pressure: 120}, {X: 3, Y: 4, Time: 0.5, Pressure: 300}},
			{},
			{{X: 5, Y: 6, Time: 2, Pressure: 80}, {X: 7, Y: 8, Time: model.Undefined, Pressure: 0}},
		},
	}
}

func assertSameWords(t *testing.T, want, got model.Words) {
	t.Helper()
	require.Len(t, got, len(want))
	for word, picture := range want {
		require.Contains(t, got, word)
		require.Len(t, got[word], len(picture))
		for i, stroke := range picture {
			require.Len(t, got[word][i], len(stroke))
			for j, s := range stroke {
				g := got[word][i][j]
				assert.Equal(t, s.X, g.X)
				assert.Equal(t, s.Y, g.Y)
				assert.Equal(t, s.Pressure, g.Pressure)
				assert.Equal(t, s.HasTime(), g.HasTime())
				if s.HasTime() {
					assert.Equal(t, s.Time, g.Time)
				}
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{CBOR, JSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, testWords()))

			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assertSameWords(t, testWords(), got)
		})
	}
}

func TestDecodeJSONNullTimeAndKeyCase(t *testing.T) {
	in := `{"Dog": [[[0, 1, 1, 100], [1, 2, 2, 200], [null, 3, 3, 0]]]}`
	got, err := Decode(strings.NewReader(in), JSON)
	require.NoError(t, err)
	require.Contains(t, got, "dog")
	stroke := got["dog"][0]
	require.Len(t, stroke, 3)
	assert.True(t, stroke[1].HasTime())
	assert.False(t, stroke[2].HasTime())
	assert.Len(t, stroke.Trimmed(), 2)
}

func TestDecodeJSONRejectsShortSample(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"a": [[[0, 1, 1]]]}`), JSON)
	assert.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.cbor")
	require.NoError(t, WriteFile(path, testWords()))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assertSameWords(t, testWords(), got)

	_, err = FormatFor("words.txt")
	assert.Error(t, err)
}
