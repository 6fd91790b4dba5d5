package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/archive"
	flag "github.com/ogier/pflag"
)

func getCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "get",
		Help:      "copy the encoded picture of a word to a local file, usage: get [-o file] <word>",
		Completer: wordCompleter(ctx),
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("get", flag.ContinueOnError)
			var output string
			flagSet.StringVarP(&output, "output", "o", "", "output file")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()
			if len(args) == 0 {
				c.Err(errors.New("missing word"))
				return
			}

			word := archive.Key(args[0])
			blob, ok := ctx.Archive.Raw(word)
			if !ok {
				c.Err(&archive.WordNotFoundError{Word: word})
				return
			}
			if output == "" {
				output = word + ".vbuf"
			}

			if err := os.WriteFile(output, blob, 0644); err != nil {
				c.Err(fmt.Errorf("failed to write %s: %w", output, err))
				return
			}
			c.Println(fmt.Sprintf("%s: %d bytes", output, len(blob)))
		},
	}
}
