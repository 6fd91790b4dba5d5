package vertex

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestVertexSize(t *testing.T) {
	assert.Equal(t, uintptr(Size), unsafe.Sizeof(Vertex{}))
}

func TestBytesAliasesStream(t *testing.T) {
	s := Stream{{X: 1, Y: 2, T: 0.5, Pressure: 0.25}, {X: 3}}
	b := s.Bytes()
	assert.Len(t, b, 2*Size)

	if isLittleEndian() {
		assert.Equal(t, math.Float32bits(2), binary.LittleEndian.Uint32(b[4:8]))
		assert.Equal(t, math.Float32bits(3), binary.LittleEndian.Uint32(b[16:20]))
	}
	assert.Nil(t, Stream(nil).Bytes())
}

func isLittleEndian() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}

func TestEqualIsBitwise(t *testing.T) {
	nan := float32(math.NaN())
	a := Stream{{X: nan, Y: 0}}
	b := Stream{{X: nan, Y: 0}}
	assert.True(t, a.Equal(b))

	negZero := float32(math.Copysign(0, -1))
	assert.False(t, Stream{{Y: 0}}.Equal(Stream{{Y: negZero}}))
	assert.False(t, Stream{{}}.Equal(Stream{}))
}

func TestBoundsAndPenUps(t *testing.T) {
	s := Stream{
		{X: 0.5, Y: 0.5, Pressure: 0},
		{X: 0.1, Y: 0.9, Pressure: 0.3},
		{X: 0.7, Y: 0.2, Pressure: 0},
	}
	r := s.Bounds()
	assert.Equal(t, Rect{MinX: 0.1, MinY: 0.2, MaxX: 0.7, MaxY: 0.9}, r)
	assert.InDelta(t, 0.6, r.Width(), 1e-6)
	assert.Equal(t, 2, s.PenUps())
}
