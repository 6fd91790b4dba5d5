package export

import (
	"bytes"
	"testing"

	"github.com/lightswitch/lightswitch/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoStrokes = vertex.Stream{
	{X: 0.1, Y: 0.1, T: 0, Pressure: 0},
	{X: 0.1, Y: 0.1, T: 0, Pressure: 0.5},
	{X: 0.3, Y: 0.3, T: 0.2, Pressure: 0.5},
	{X: 0.5, Y: 0.5, T: 0.4, Pressure: 0.5},
	{X: 0.5, Y: 0.5, T: 0.4, Pressure: 0},
	{X: 0.7, Y: 0.2, T: 0.4, Pressure: 0},
	{X: 0.7, Y: 0.2, T: 0.4, Pressure: 0.5},
	{X: 0.9, Y: 0.9, T: 1, Pressure: 0.5},
	{X: 0.9, Y: 0.9, T: 1, Pressure: 0},
}

func TestRunsFullyRevealed(t *testing.T) {
	p := CreatePdfGenerator(DefaultOptions())
	runs := p.runs(twoStrokes)

	// the pen-up jump between the strokes has no ink
	require.Len(t, runs, 2)
	assert.Len(t, runs[0].points, 3)
	assert.Len(t, runs[1].points, 2)
	for _, r := range runs {
		assert.Equal(t, 1.5, r.width)
		// black at half pressure over white
		assert.InDelta(t, 0.5, r.r, 0.01)
		assert.Equal(t, r.r, r.g)
	}
	assert.InDelta(t, margin+0.1*(PageSize-2*margin), runs[0].points[0].X, 1e-4)
}

func TestRunsPartialReveal(t *testing.T) {
	o := DefaultOptions()
	o.Reveal = 0.25
	p := CreatePdfGenerator(o)
	runs := p.runs(twoStrokes)

	// the first stroke is drawn, the connector and the second stroke are not
	require.NotEmpty(t, runs)
	for _, r := range runs {
		for _, pt := range r.points {
			assert.True(t, pt.X <= margin+0.5*(PageSize-2*margin)+1e-4, "x=%v", pt.X)
		}
	}
}

func TestRunsConnectorShowsTip(t *testing.T) {
	o := DefaultOptions()
	o.Reveal = 0.35
	p := CreatePdfGenerator(o)
	runs := p.runs(twoStrokes)

	// the pen-up connector at t=0.4 is half way into the tip fade in, so it
	// is drawn in the tip colour at the minimum width
	require.NotEmpty(t, runs)
	last := runs[len(runs)-1]
	require.Len(t, last.points, 2)
	assert.InDelta(t, margin+0.7*(PageSize-2*margin), last.points[1].X, 1e-4)
	assert.InDelta(t, 0.75, last.r, 0.01)
	assert.InDelta(t, 0.5, last.g, 0.01)
	assert.InDelta(t, 0.5, last.b, 0.01)
	assert.Equal(t, minWidth, last.width)
}

func TestWrite(t *testing.T) {
	p := CreatePdfGenerator(DefaultOptions())
	var buf bytes.Buffer
	assert.Error(t, p.Write(&buf))

	p.AddPicture("cat", twoStrokes)
	p.AddPicture("dog", twoStrokes)
	require.NoError(t, p.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
