package model

import "math"

// Sample is a single pen reading. Pressure is in raw sensor units.
type Sample struct {
	X        float64
	Y        float64
	Time     float64
	Pressure float64
}

// Undefined marks a sample time the capture device never reported.
var Undefined = math.NaN()

// HasTime reports whether the sample carries a valid timestamp.
func (s Sample) HasTime() bool {
	return !math.IsNaN(s.Time)
}

// Stroke is one continuous pen-down interval.
type Stroke []Sample

// Trimmed returns the stroke without trailing samples that have no time.
func (s Stroke) Trimmed() Stroke {
	n := len(s)
	for n > 0 && !s[n-1].HasTime() {
		n--
	}
	return s[:n]
}

// WordPicture is the handwriting capture of one word.
type WordPicture []Stroke

// SampleCount returns the number of timed samples across all strokes.
func (w WordPicture) SampleCount() int {
	n := 0
	for _, s := range w {
		n += len(s.Trimmed())
	}
	return n
}

// Words maps a lowercase word to its capture.
type Words map[string]WordPicture
