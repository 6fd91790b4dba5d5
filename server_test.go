package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/config"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/shell"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var line = vertex.Stream{
	{X: 0.1, Y: 0.5, T: 0, Pressure: 0},
	{X: 0.1, Y: 0.5, T: 0, Pressure: 1},
	{X: 0.9, Y: 0.5, T: 1, Pressure: 1},
	{X: 0.9, Y: 0.5, T: 1, Pressure: 0},
}

func newServer(t *testing.T) *httptest.Server {
	z := archive.NewZip()
	z.Save("aardvark", line)
	z.Save("cat", line)
	z.SaveRaw("broken", []byte{1, 2, 3})

	ctx := &shell.ShellCtxt{
		Config:  config.Default(),
		Archive: z,
		Program: shader.Load(),
		Picker:  archive.RandomPicker{Rand: archive.NewSharedRand(1), Preferred: []string{"aardvark"}},
	}
	srv := httptest.NewServer(NewApiServer(ctx).routes())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestWords(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/words")
	require.NoError(t, err)
	var all struct{ Data []string }
	decode(t, resp, &all)
	assert.Equal(t, []string{"aardvark", "broken", "cat"}, all.Data)

	resp, err = http.Get(srv.URL + "/api/words?filter=^c")
	require.NoError(t, err)
	var filtered struct{ Data []string }
	decode(t, resp, &filtered)
	assert.Equal(t, []string{"cat"}, filtered.Data)

	resp, err = http.Get(srv.URL + "/api/words?filter=(")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInfoFallsBack(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/info?word=Zebra")
	require.NoError(t, err)
	var body struct{ Data shell.WordJSON }
	decode(t, resp, &body)
	assert.Equal(t, "zebra", body.Data.Word)
	assert.Equal(t, "aardvark", body.Data.Shown)
	assert.Equal(t, 4, body.Data.Vertices)
	assert.Equal(t, 1, body.Data.Strokes)
}

func TestVbuf(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/vbuf?word=CAT")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, line.Bytes(), buf.Bytes())

	resp, err = http.Get(srv.URL + "/api/vbuf?word=zebra")
	require.NoError(t, err)
	var e ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, e.Error, "zebra")

	resp, err = http.Get(srv.URL + "/api/vbuf?word=broken")
	require.NoError(t, err)
	var damaged ErrorResponse
	decode(t, resp, &damaged)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, damaged.Error, "broken")
}

func TestFrame(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/frame?word=cat&size=64")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "cat", resp.Header.Get("X-Word-Shown"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestFrameConcurrent(t *testing.T) {
	srv := newServer(t)

	fetch := func(query string) ([]byte, error) {
		resp, err := http.Get(srv.URL + "/api/frame?" + query)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s: status %d", query, resp.StatusCode)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		return buf.Bytes(), err
	}

	queries := []string{
		"word=cat&size=64&t=0.3",
		"word=cat&size=200&t=1",
		"word=cat&size=64&t=1&thick=true",
		"word=zebra&size=120&t=0.6&erase=0.2",
	}
	want := make(map[string][]byte)
	for _, q := range queries {
		b, err := fetch(q)
		require.NoError(t, err)
		want[q] = b
	}

	type result struct {
		query string
		body  []byte
		err   error
	}
	results := make(chan result, 4*len(queries))
	for i := 0; i < 4; i++ {
		for _, q := range queries {
			go func(q string) {
				b, err := fetch(q)
				results <- result{q, b, err}
			}(q)
		}
	}
	for i := 0; i < 4*len(queries); i++ {
		r := <-results
		require.NoError(t, r.err)
		assert.Equal(t, want[r.query], r.body, r.query)
	}
}

func TestFrameRejectsBadParameters(t *testing.T) {
	srv := newServer(t)

	for _, q := range []string{
		"",
		"word=cat&t=soon",
		"word=cat&size=0",
		"word=cat&size=100000",
		"word=cat&thick=maybe",
	} {
		resp, err := http.Get(srv.URL + "/api/frame?" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/api/words", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
