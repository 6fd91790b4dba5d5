package shell

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/game"
	flag "github.com/ogier/pflag"
)

func typeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "type",
		Help: "type letters into the game, usage: type <letters>",
		Func: func(c *ishell.Context) {
			g := ctx.Host.Game
			for _, a := range c.Args {
				g.TypeWord(a)
			}
			c.Println(g.Word())
		},
	}
}

func enterCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "enter",
		Help: "submit the typed word, usage: enter [word]",
		Func: func(c *ishell.Context) {
			g := ctx.Host.Game
			if len(c.Args) > 0 {
				g.TypeWord(c.Args[0])
			}
			s, err := g.Enter()
			if err != nil {
				c.Err(err)
				return
			}
			if s == nil {
				return
			}

			verdict := "rejected"
			if s.Accepted {
				verdict = "accepted"
			}
			c.Printf("%s %s (%d in a row)\n", s.Word, verdict, g.Successes())
			if g.Victory() {
				c.Println("victory!")
			}
		},
	}
}

// maxSeconds bounds how far tick and gif advance the clock in one command.
const maxSeconds = 60

// ticks converts a duration argument to a number of game ticks.
func ticks(arg string) (int, error) {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	if !(seconds >= 0 && seconds <= maxSeconds) {
		return 0, fmt.Errorf("duration must be between 0 and %d seconds", maxSeconds)
	}
	return int(seconds * game.TickRate), nil
}

func tickCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "tick",
		Help: "advance the game clock, usage: tick <seconds>",
		Func: func(c *ishell.Context) {
			n := game.TickRate
			if len(c.Args) > 0 {
				var err error
				if n, err = ticks(c.Args[0]); err != nil {
					c.Err(err)
					return
				}
			}
			for i := 0; i < n; i++ {
				ctx.Host.Step()
			}
			c.Printf("t=%.2f\n", ctx.Host.Game.Time())
		},
	}
}

func snapCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "snap",
		Help: "write the current game frame as PNG, usage: snap [file]",
		Func: func(c *ishell.Context) {
			name := "frame.png"
			if len(c.Args) > 0 {
				name = c.Args[0]
			}
			f, err := os.Create(name)
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()
			if err := ctx.Host.Snapshot(f); err != nil {
				c.Err(err)
				return
			}
			c.Println(name)
		},
	}
}

func gifCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "gif",
		Help: "play the game forward and record it, usage: gif [-d seconds] [-o file]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("gif", flag.ContinueOnError)
			seconds := flagSet.Float64P("duration", "d", game.Lifetime, "seconds to record")
			output := flagSet.StringP("output", "o", "game.gif", "output file")
			step := flagSet.Int("step", 3, "ticks per frame")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			if !(*seconds > 0 && *seconds <= maxSeconds) {
				c.Err(fmt.Errorf("duration must be between 0 and %d seconds", maxSeconds))
				return
			}

			f, err := os.Create(*output)
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()
			if err := ctx.Host.Animate(f, *seconds, *step); err != nil {
				c.Err(err)
				return
			}
			c.Println(fmt.Sprintf("%s: %gs", *output, *seconds))
		},
	}
}

func hintCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "hint",
		Help: "show the hint for the current rule",
		Func: func(c *ishell.Context) {
			c.Println(ctx.Host.Game.Hint())
		},
	}
}
