package shell

import (
	"regexp"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func lsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "ls",
		Help: "list archive words, usage: ls [-c] [regexp]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("ls", flag.ContinueOnError)
			var compact bool
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact format")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			var matcher *regexp.Regexp
			if args := flagSet.Args(); len(args) > 0 {
				var err error
				if matcher, err = regexp.Compile(args[0]); err != nil {
					c.Err(err)
					return
				}
			}

			var words []string
			for _, w := range ctx.Archive.Words() {
				if matcher == nil || matcher.MatchString(w) {
					words = append(words, w)
				}
			}

			if ctx.JSONOutput {
				if err := printJSON(c, words); err != nil {
					c.Err(err)
				}
				return
			}
			for _, w := range words {
				if compact {
					c.Printf("%s ", w)
				} else {
					c.Println(w)
				}
			}
			if compact {
				c.Println()
			}
		},
	}
}
