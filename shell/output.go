package shell

import (
	"encoding/json"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/vertex"
)

// WordJSON describes one archive entry.
type WordJSON struct {
	Word     string      `json:"word"`
	Shown    string      `json:"shown,omitempty"`
	Vertices int         `json:"vertices"`
	Strokes  int         `json:"strokes"`
	Bytes    int         `json:"bytes"`
	Bounds   vertex.Rect `json:"bounds"`
}

func WordToJSON(word, shown string, s vertex.Stream) WordJSON {
	info := WordJSON{
		Word:     word,
		Vertices: len(s),
		Strokes:  s.PenUps() / 2,
		Bytes:    len(s) * vertex.Size,
		Bounds:   s.Bounds(),
	}
	if shown != word {
		info.Shown = shown
	}
	return info
}

func printJSON(c *ishell.Context, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	c.Println(string(output))
	return nil
}
