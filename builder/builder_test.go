package builder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lightswitch/lightswitch/buildcache"
	"github.com/lightswitch/lightswitch/model"
	"github.com/lightswitch/lightswitch/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(x0, y0, x1, y1 float64) model.WordPicture {
	return model.WordPicture{{
		{X: x0, Y: y0, Time: 0, Pressure: 200},
		{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, Time: 0.5, Pressure: 300},
		{X: x1, Y: y1, Time: 1, Pressure: 400},
	}}
}

func testWords() model.Words {
	return model.Words{
		"cat": line(0, 0, 10, 5),
		"dog": line(3, 3, 4, 8),
		"dot": {{{X: 1, Y: 1, Time: 0, Pressure: 100}, {X: 1, Y: 1, Time: 1, Pressure: 100}}},
	}
}

func TestBuild(t *testing.T) {
	words := testWords()
	z, res, err := Build(context.Background(), words, nil, nil, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog"}, res.Built)
	assert.Empty(t, res.Copied)
	require.Contains(t, res.Skipped, "dot")
	var degenerate *normalize.DegenerateInputError
	assert.True(t, errors.As(res.Skipped["dot"], &degenerate))

	assert.Equal(t, []string{"cat", "dog"}, z.Words())
	assert.Empty(t, Verify(z, words, normalize.Options{}))
}

func TestBuildIncremental(t *testing.T) {
	words := testWords()
	cache := buildcache.New(filepath.Join(t.TempDir(), "build.cache"))

	first, _, err := Build(context.Background(), words, nil, cache, Options{})
	require.NoError(t, err)
	assert.Len(t, cache.Words, 2)

	words["dog"] = line(0, 0, 1, 9)
	words["emu"] = line(5, 5, 0, 0)
	second, res, err := Build(context.Background(), words, first, cache, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat"}, res.Copied)
	assert.Equal(t, []string{"dog", "emu"}, res.Built)
	assert.Equal(t, []string{"cat", "dog", "emu"}, second.Words())
	assert.Empty(t, Verify(second, words, normalize.Options{}))

	a, _ := first.Raw("cat")
	b, _ := second.Raw("cat")
	assert.Equal(t, a, b)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Build(ctx, testWords(), nil, nil, Options{Workers: 1})
	assert.Error(t, err)
}

func TestVerifyReportsMismatch(t *testing.T) {
	words := testWords()
	z, _, err := Build(context.Background(), words, nil, nil, Options{})
	require.NoError(t, err)

	words["cat"] = line(0, 0, 1, 1)
	delete(words, "dog")
	assert.Equal(t, []string{"cat", "dog"}, Verify(z, words, normalize.Options{}))
}
