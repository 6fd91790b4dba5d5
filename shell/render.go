package shell

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/render"
	"github.com/lightswitch/lightswitch/shader"
	flag "github.com/ogier/pflag"
)

func renderCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "render",
		Help:      "render a word picture to PNG",
		Completer: wordCompleter(ctx),
		LongHelp: `Usage: render [options] <word>

Options:
  -t, --time=<T>     reveal time (default: 2, fully drawn)
  -e, --erase=<U>    erase time (default: no erase)
  -s, --size=<px>    image size (default: 512)
      --thick        distance field segments instead of wide lines
  -o, --output=<f>   output file (default: <word>.png)`,
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("render", flag.ContinueOnError)
			reveal := flagSet.Float32P("time", "t", 2, "reveal time")
			erase := flagSet.Float32P("erase", "e", shader.EraseDisabled, "erase time")
			size := flagSet.IntP("size", "s", 512, "image size")
			thick := flagSet.Bool("thick", ctx.Config.Shader.ThickLines, "thick lines")
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

			shown, s, err := ctx.load(args[0])
			if err != nil {
				c.Err(err)
				return
			}

			o := render.DefaultFrameOptions(*size)
			o.Reveal = *reveal
			o.Erase = *erase
			o.Player = ctx.PlayerOptions()
			o.Player.ThickLines = *thick
			img := render.Frame(ctx.Program, shown, s, o)

			name := *output
			if name == "" {
				name = shown + ".png"
			}
			f, err := os.Create(name)
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				c.Err(err)
				return
			}
			c.Println(fmt.Sprintf("%s: t=%g", name, *reveal))
		},
	}
}

func sheetCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "sheet",
		Help: "render a contact sheet of archive words, usage: sheet [-c cell] [-n columns] [-o file] [word...]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("sheet", flag.ContinueOnError)
			cell := flagSet.IntP("cell", "c", 96, "thumbnail size")
			columns := flagSet.IntP("columns", "n", 8, "columns")
			output := flagSet.StringP("output", "o", "sheet.png", "output file")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			words := flagSet.Args()
			if len(words) == 0 {
				words = ctx.Archive.Words()
			}
			var pictures []render.Picture
			for _, w := range words {
				s, err := ctx.Archive.Load(w)
				if err != nil {
					c.Println(fmt.Sprintf("skipping %s: %v", w, err))
					continue
				}
				pictures = append(pictures, render.Picture{Word: w, Stream: s})
			}
			if len(pictures) == 0 {
				c.Err(errors.New("no pictures"))
				return
			}

			img := render.Sheet(ctx.Program, pictures, *cell, *columns, 4*(*cell))
			f, err := os.Create(*output)
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				c.Err(err)
				return
			}
			c.Println(fmt.Sprintf("%s: %d pictures", *output, len(pictures)))
		},
	}
}
