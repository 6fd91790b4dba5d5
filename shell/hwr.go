package shell

import (
	"context"
	"errors"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/hwr"
	"github.com/lightswitch/lightswitch/model"
)

func hwrCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "hwr",
		Help: "check dataset words with handwriting recognition, usage: hwr [word...]",
		LongHelp: `Usage: hwr [word...]

Sends the raw strokes of the given words, or of every dataset word, to the
recognition service and lists the words recognized as something else.
Needs a stroke dataset (-words) and the LIGHTSWITCH_HWR_APPLICATIONKEY and
LIGHTSWITCH_HWR_HMAC environment variables.`,
		Func: func(c *ishell.Context) {
			if len(ctx.Words) == 0 {
				c.Err(errors.New("no stroke dataset loaded"))
				return
			}
			applicationKey, hmacKey, err := hwr.Keys(os.Getenv)
			if err != nil {
				c.Err(err)
				return
			}

			words := ctx.Words
			if len(c.Args) > 0 {
				words = make(model.Words)
				for _, a := range c.Args {
					key := archive.Key(a)
					p, ok := ctx.Words[key]
					if !ok {
						c.Err(&archive.WordNotFoundError{Word: key})
						return
					}
					words[key] = p
				}
			}

			cfg := hwr.Config{Lang: ctx.Config.Hwr.Lang, BatchSize: ctx.Config.Hwr.BatchSize}
			results, err := hwr.Verify(context.Background(), hwr.NewClient(applicationKey, hmacKey), words, cfg)
			if err != nil {
				c.Err(err)
				return
			}

			if ctx.JSONOutput {
				if err := printJSON(c, results); err != nil {
					c.Err(err)
				}
				return
			}
			mismatches := 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					c.Printf("%s: %v\n", r.Word, r.Err)
				case !r.Match():
					mismatches++
					c.Printf("%s: recognized as %q\n", r.Word, r.Recognized)
				}
			}
			c.Printf("%d of %d words mismatched\n", mismatches, len(results))
		},
	}
}
