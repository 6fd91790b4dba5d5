package vbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lightswitch/lightswitch/vertex"
)

// MalformedEntryError is returned for a blob whose length is not a multiple
// of the vertex record size.
type MalformedEntryError struct {
	Size int
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed vertex buffer: %d bytes is not a multiple of %d", e.Size, vertex.Size)
}

// Unmarshal decodes a blob written by Marshal.
func Unmarshal(data []byte) (vertex.Stream, error) {
	if len(data)%vertex.Size != 0 {
		return nil, &MalformedEntryError{Size: len(data)}
	}

	r := reader{data: data}
	s := make(vertex.Stream, len(data)/vertex.Size)
	for i := range s {
		s[i] = r.readVertex()
	}
	return s, nil
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) readFloat32() float32 {
	f := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return f
}

func (r *reader) readVertex() vertex.Vertex {
	var v vertex.Vertex
	v.X = r.readFloat32()
	v.Y = r.readFloat32()
	v.T = r.readFloat32()
	v.Pressure = r.readFloat32()
	return v
}
