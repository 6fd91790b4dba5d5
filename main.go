package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/config"
	"github.com/lightswitch/lightswitch/encoding/strokes"
	"github.com/lightswitch/lightswitch/game"
	"github.com/lightswitch/lightswitch/host"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/model"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/shell"
)

func main() {
	archiveName := flag.String("archive", "", "picture archive (overrides config)")
	wordsName := flag.String("words", "", "raw stroke dataset, needed by hwr")
	server := flag.String("server", "", "run the HTTP API on this address instead of the shell")
	ni := flag.Bool("ni", false, "not interactive, run the command given as arguments and exit")
	jsonOutput := flag.Bool("json", false, "print command output as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] [command [args...]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *ni && flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log.InitLog()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error.Fatalln(err)
	}
	if *archiveName != "" {
		cfg.Archive = *archiveName
	}

	z, err := archive.Open(cfg.Archive)
	if err != nil {
		log.Error.Fatalln(err)
	}

	program, err := shader.Compile()
	if err != nil {
		log.Error.Fatalln(err)
	}
	program.Uniforms().SetParams(shader.Params{
		RenderPreTime:   cfg.Shader.RenderPreTime,
		RenderPostTime:  cfg.Shader.RenderPostTime,
		UnrenderPreTime: cfg.Shader.UnrenderPreTime,
		HalfWidth:       cfg.Shader.HalfWidth,
		Steepness:       cfg.Shader.Steepness,
	})

	var words model.Words
	if *wordsName != "" {
		if words, err = strokes.ReadFile(*wordsName); err != nil {
			log.Error.Fatalln(err)
		}
	}

	seed := time.Now().UnixNano()
	picker := archive.RandomPicker{Rand: archive.NewSharedRand(seed), Preferred: cfg.Fallback}

	ctx := &shell.ShellCtxt{
		Config:     cfg,
		Archive:    z,
		Program:    program,
		Picker:     picker,
		Words:      words,
		JSONOutput: *jsonOutput,
	}

	if *server != "" {
		runServerMode(ctx, *server)
		return
	}

	g := game.New(game.ArchiveLoader{Zip: z, Picker: picker}, rand.New(rand.NewSource(seed)), cfg.Window.Width, cfg.Window.Height)
	ctx.Host = host.New(g, program, ctx.PlayerOptions())

	if err := shell.RunShell(ctx, flag.Args()); err != nil {
		log.Error.Println("Error: ", err)
		os.Exit(1)
	}
}
