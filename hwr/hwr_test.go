package hwr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lightswitch/lightswitch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func picture() model.WordPicture {
	return model.WordPicture{
		{{X: 1, Y: 2, Time: 10, Pressure: 500}, {X: 2, Y: 3, Time: 10.25, Pressure: 2000}},
		{{X: 5, Y: 5, Time: 11, Pressure: 100}, {X: 6, Y: 6, Time: model.Undefined, Pressure: 100}},
	}
}

func TestGetJSON(t *testing.T) {
	js, err := getJSON(picture(), "en_US")
	require.NoError(t, err)

	var batch BatchInput
	require.NoError(t, json.Unmarshal(js, &batch))
	assert.Equal(t, "Text", batch.ContentType)
	assert.Equal(t, "en_US", batch.Configuration.Lang)
	strokes := batch.StrokeGroups[0].Strokes
	require.Len(t, strokes, 2)
	assert.Equal(t, []int64{0, 250}, strokes[0].T)
	assert.Equal(t, []float32{0.5, 1}, strokes[0].P)
	assert.Equal(t, []int64{1000}, strokes[1].T)

	_, err = getJSON(model.WordPicture{{}}, "en_US")
	assert.Equal(t, ErrNoStrokes, err)
}

func TestExtractLabel(t *testing.T) {
	assert.Equal(t, "cat", extractLabel([]byte(`{"label": "cat"}`)))
	assert.Equal(t, "big cat", extractLabel([]byte(`{"words": [{"label": "big"}, {"label": "cat"}]}`)))
	assert.Equal(t, "cat", extractLabel([]byte(" cat\n")))
}

func TestKeys(t *testing.T) {
	env := map[string]string{}
	_, _, err := Keys(func(k string) string { return env[k] })
	assert.Error(t, err)

	env[envApplicationKey] = "app"
	env[envHmac] = "secret"
	a, h, err := Keys(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "app", a)
	assert.Equal(t, "secret", h)
}

func TestVerify(t *testing.T) {
	client := NewClient("app", "secret")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Header.Get("hmac") != client.Sign(body) || r.Header.Get("applicationKey") != "app" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var batch BatchInput
		if err := json.Unmarshal(body, &batch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// recognizes everything with two strokes as "cat"
		label := "dog"
		if len(batch.StrokeGroups[0].Strokes) == 2 {
			label = "cat"
		}
		json.NewEncoder(w).Encode(map[string]string{"label": label})
	}))
	defer srv.Close()
	client.URL = srv.URL

	words := model.Words{
		"cat":  picture(),
		"bird": picture(),
		"dog":  picture()[:1],
		"none": {},
	}
	results, err := Verify(context.Background(), client, words, Config{Lang: "en_US", BatchSize: 2})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "bird", results[0].Word)
	assert.False(t, results[0].Match())
	assert.True(t, results[1].Match(), "cat")
	assert.True(t, results[2].Match(), "dog")
	assert.Equal(t, ErrNoStrokes, results[3].Err)
}

func TestSendRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("a", "b")
	c.URL = srv.URL
	_, err := c.SendRequest(context.Background(), []byte("{}"))
	assert.Error(t, err)
}
