// Package vbuf encodes vertex streams as flat little-endian float32
// records of (x, y, t, pressure). There is no header: the vertex count is
// the byte length divided by vertex.Size.
package vbuf

import (
	"bytes"
	"encoding/binary"

	"github.com/lightswitch/lightswitch/vertex"
)

// Marshal encodes s as len(s)*vertex.Size bytes.
func Marshal(s vertex.Stream) []byte {
	w := newWriter(len(s))
	for _, v := range s {
		w.writeVertex(v)
	}
	return w.Bytes()
}

type writer struct {
	b bytes.Buffer
}

func newWriter(n int) *writer {
	w := new(writer)
	w.b.Grow(n * vertex.Size)
	return w
}

func (w *writer) Bytes() []byte {
	return w.b.Bytes()
}

func (w *writer) writeFloat32(f float32) {
	binary.Write(&w.b, binary.LittleEndian, f)
}

func (w *writer) writeVertex(v vertex.Vertex) {
	w.writeFloat32(v.X)
	w.writeFloat32(v.Y)
	w.writeFloat32(v.T)
	w.writeFloat32(v.Pressure)
}
