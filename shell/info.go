package shell

import (
	"errors"

	"github.com/abiosoft/ishell"
)

func infoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "info",
		Help:      "describe a word picture",
		Completer: wordCompleter(ctx),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing word"))
				return
			}

			shown, s, err := ctx.load(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			info := WordToJSON(c.Args[0], shown, s)

			if ctx.JSONOutput {
				if err := printJSON(c, info); err != nil {
					c.Err(err)
				}
				return
			}
			if info.Shown != "" {
				c.Printf("%s (shown as %s)\n", info.Word, info.Shown)
			} else {
				c.Println(info.Word)
			}
			c.Printf("vertices:\t%d\n", info.Vertices)
			c.Printf("strokes:\t%d\n", info.Strokes)
			c.Printf("bytes:\t\t%d\n", info.Bytes)
			b := info.Bounds
			c.Printf("bounds:\t\t%.3f,%.3f - %.3f,%.3f\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
		},
	}
}
