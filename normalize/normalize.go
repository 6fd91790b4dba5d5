// Package normalize converts raw pen strokes into a normalized vertex
// stream.
//
// Pen-up time between strokes is removed from the timeline, positions are
// scaled uniformly into the unit square with a margin and centered along the
// shorter axis, and every stroke is bracketed by zero pressure vertices so
// that the whole picture can be drawn as one connected line strip.
package normalize

import (
	"fmt"
	"math"

	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/model"
	"github.com/lightswitch/lightswitch/vertex"
	"github.com/pkg/errors"
)

const (
	DefaultPressureScale = 500
	DefaultMargin        = 0.05
)

var ErrNoStrokes = errors.New("no non-empty stroke")

// DegenerateInputError is returned when the strokes have zero spatial or
// temporal extent.
type DegenerateInputError struct {
	Reason string
	Err    error
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate stroke data: %s", e.Reason)
}

func (e *DegenerateInputError) Unwrap() error {
	return e.Err
}

// Options tunes the normalization. The zero value uses the defaults.
type Options struct {
	// PressureScale is the raw pressure mapped to full ink.
	PressureScale float64
	// Margin is kept free on every side of the unit square.
	Margin float64
}

func (o Options) withDefaults() Options {
	if o.PressureScale == 0 {
		o.PressureScale = DefaultPressureScale
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	return o
}

type point struct {
	x, y, t, p float64
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Normalize converts strokes with the default options.
func Normalize(strokes model.WordPicture) (vertex.Stream, error) {
	return Options{}.Normalize(strokes)
}

// Normalize converts strokes into a vertex stream of one vertex per timed
// sample plus a pen-up vertex before and after every non-empty stroke.
func (o Options) Normalize(strokes model.WordPicture) (vertex.Stream, error) {
	o = o.withDefaults()

	var (
		points   []point
		tAdjust  float64
		lastT    float64
		minX     = math.Inf(1)
		minY     = math.Inf(1)
		maxX     = math.Inf(-1)
		maxY     = math.Inf(-1)
		nStrokes int
	)

	for si, stroke := range strokes {
		stroke = stroke.Trimmed()
		if len(stroke) == 0 {
			continue
		}
		nStrokes++

		first := stroke[0]
		tAdjust += first.Time - lastT
		points = append(points, point{first.X, first.Y, first.Time - tAdjust, 0})

		for i, s := range stroke {
			if !finite(s.X) || !finite(s.Y) || !finite(s.Time) {
				return nil, &DegenerateInputError{
					Reason: fmt.Sprintf("stroke %d sample %d is not a finite timed point", si, i),
				}
			}
			minX = math.Min(minX, s.X)
			maxX = math.Max(maxX, s.X)
			minY = math.Min(minY, s.Y)
			maxY = math.Max(maxY, s.Y)
			p := math.Max(0, math.Min(1, s.Pressure/o.PressureScale))
			points = append(points, point{s.X, s.Y, s.Time - tAdjust, p})
		}

		last := stroke[len(stroke)-1]
		points = append(points, point{last.X, last.Y, last.Time - tAdjust, 0})
		lastT = last.Time
	}

	if nStrokes == 0 {
		return nil, &DegenerateInputError{Reason: "no samples", Err: ErrNoStrokes}
	}

	maxT := points[len(points)-1].t
	switch {
	case maxX == minX:
		return nil, &DegenerateInputError{Reason: "zero width"}
	case maxY == minY:
		return nil, &DegenerateInputError{Reason: "zero height"}
	case maxT == 0:
		return nil, &DegenerateInputError{Reason: "zero duration"}
	}

	log.Trace.Printf("x: %g - %g, y: %g - %g, max_t: %g, t_adjust: %g",
		minX, maxX, minY, maxY, maxT, tAdjust)

	xScale := 1 / (maxX - minX)
	yScale := 1 / (maxY - minY)
	scale := math.Min(xScale, yScale)

	var xOffs, yOffs float64
	if xScale > yScale {
		xOffs = (1 - yScale/xScale) / 2
	} else {
		yOffs = (1 - xScale/yScale) / 2
	}

	span := 1 - 2*o.Margin
	out := make(vertex.Stream, len(points))
	for i, p := range points {
		out[i] = vertex.Vertex{
			X:        float32(o.Margin + span*((p.x-minX)*scale+xOffs)),
			Y:        float32(1 - o.Margin - span*((p.y-minY)*scale+yOffs)),
			T:        float32(p.t / maxT),
			Pressure: float32(p.p),
		}
	}
	return out, nil
}
