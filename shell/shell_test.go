package shell

import (
	"testing"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/config"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/stretchr/testify/assert"
)

var line = vertex.Stream{
	{X: 0.1, Y: 0.5, T: 0, Pressure: 0},
	{X: 0.1, Y: 0.5, T: 0, Pressure: 1},
	{X: 0.9, Y: 0.5, T: 1, Pressure: 1},
	{X: 0.9, Y: 0.5, T: 1, Pressure: 0},
}

func newCtx() *ShellCtxt {
	z := archive.NewZip()
	for _, w := range []string{"cat", "cattle", "dog"} {
		z.Save(w, line)
	}
	return &ShellCtxt{Config: config.Default(), Archive: z, Picker: archive.RandomPicker{}}
}

func TestWordCompleter(t *testing.T) {
	complete := wordCompleter(newCtx())
	assert.Equal(t, []string{"cat", "cattle"}, complete([]string{"CA"}))
	assert.Len(t, complete(nil), 3)
}

func TestPathCompleter(t *testing.T) {
	ctx := newCtx()
	c := shellPathCompleter{cmdToCompleter{
		"info": wordCompleter(ctx),
		"ls":   nil,
	}}

	line := []rune("in")
	out, n := c.Do(line, len(line))
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("fo ")}, out)

	line = []rune("info ca")
	out, n = c.Do(line, len(line))
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("t "), []rune("ttle ")}, out)

	line = []rune("ls ")
	out, _ = c.Do(line, len(line))
	assert.Empty(t, out)
}

func TestWordToJSON(t *testing.T) {
	info := WordToJSON("cat", "cat", line)
	assert.Equal(t, "", info.Shown)
	assert.Equal(t, 4, info.Vertices)
	assert.Equal(t, 1, info.Strokes)
	assert.Equal(t, 64, info.Bytes)

	info = WordToJSON("zebra", "cat", line)
	assert.Equal(t, "cat", info.Shown)
}

func TestPlayerOptionsFollowConfig(t *testing.T) {
	ctx := newCtx()
	ctx.Config.Shader.ThickLines = true
	ctx.Config.Shader.LineWidth = 6
	o := ctx.PlayerOptions()
	assert.True(t, o.ThickLines)
	assert.Equal(t, float32(6), o.LineWidth)
	assert.Equal(t, 0.005, o.HalfWidth)
}

func TestTicks(t *testing.T) {
	n, err := ticks("0.5")
	assert.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = ticks("60")
	assert.NoError(t, err)
	assert.Equal(t, 3600, n)

	for _, arg := range []string{"1e9", "-1", "NaN", "soon"} {
		_, err := ticks(arg)
		assert.Error(t, err, arg)
	}
}
