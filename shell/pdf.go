package shell

import (
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/export"
	flag "github.com/ogier/pflag"
)

func pdfCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "pdf",
		Help:      "export word pictures as PDF pages, usage: pdf [-t time] [-o file] <word...>",
		Completer: wordCompleter(ctx),
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("pdf", flag.ContinueOnError)
			reveal := flagSet.Float32P("time", "t", 2, "reveal time")
			output := flagSet.StringP("output", "o", "", "output file")
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

			options := export.DefaultOptions()
			options.Reveal = *reveal
			gen := export.CreatePdfGenerator(options)
			for _, w := range args {
				shown, s, err := ctx.load(w)
				if err != nil {
					c.Err(err)
					return
				}
				gen.AddPicture(shown, s)
			}

			name := *output
			if name == "" {
				name = args[0] + ".pdf"
			}
			if err := gen.Generate(name); err != nil {
				c.Err(fmt.Errorf("failed to export: %w", err))
				return
			}
			c.Println(fmt.Sprintf("%s: %d pages", name, len(args)))
		},
	}
}
