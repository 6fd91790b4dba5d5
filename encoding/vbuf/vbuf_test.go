package vbuf

import (
	"errors"
	"math"
	"testing"

	"github.com/lightswitch/lightswitch/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalLayout(t *testing.T) {
	s := vertex.Stream{{X: 1, Y: 2, T: 0.5, Pressure: 0.25}}
	b := Marshal(s)
	require.Len(t, b, vertex.Size)

	// 1.0f little endian
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[0:4])
	// 2.0f
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x40}, b[4:8])
	// 0.5f
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x3f}, b[8:12])
	// 0.25f
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3e}, b[12:16])
}

func TestUnmarshalRestoresBits(t *testing.T) {
	s := vertex.Stream{
		{X: 0.05, Y: 0.95, T: 0, Pressure: 0},
		{X: float32(math.Inf(1)), Y: float32(math.Copysign(0, -1)), T: 1e-30, Pressure: 0.6},
		{X: float32(math.NaN()), Y: 0.1, T: 1, Pressure: 1},
	}
	got, err := Unmarshal(Marshal(s))
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestUnmarshalEmpty(t *testing.T) {
	got, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Len(t, got, 0)
	assert.Len(t, Marshal(nil), 0)
}

func TestUnmarshalMalformed(t *testing.T) {
	for _, n := range []int{1, 15, 17, 33} {
		_, err := Unmarshal(make([]byte, n))
		var malformed *MalformedEntryError
		require.True(t, errors.As(err, &malformed), "size %d", n)
		assert.Equal(t, n, malformed.Size)
	}
}
