// Package shell is the interactive command line of the picture archive
// and the game.
package shell

import (
	"sort"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/config"
	"github.com/lightswitch/lightswitch/host"
	"github.com/lightswitch/lightswitch/model"
	"github.com/lightswitch/lightswitch/player"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
)

type ShellCtxt struct {
	Config  config.Config
	Archive *archive.Zip
	Program *shader.Program
	Picker  archive.FallbackPicker
	Host    *host.Host
	// Words is the raw dataset, when one was given.
	Words      model.Words
	JSONOutput bool
}

// PlayerOptions returns the draw options from the configuration.
func (ctx *ShellCtxt) PlayerOptions() player.Options {
	return player.Options{
		ThickLines: ctx.Config.Shader.ThickLines,
		LineWidth:  ctx.Config.Shader.LineWidth,
		HalfWidth:  ctx.Config.Expand.HalfWidth,
	}
}

// load returns the picture for word, falling back like the game does.
func (ctx *ShellCtxt) load(word string) (string, vertex.Stream, error) {
	return ctx.Archive.LoadOrFallback(word, ctx.Picker)
}

func wordCompleter(ctx *ShellCtxt) func([]string) []string {
	return func(args []string) []string {
		prefix := ""
		if len(args) > 0 {
			prefix = strings.ToLower(args[len(args)-1])
		}
		var out []string
		for _, w := range ctx.Archive.Words() {
			if strings.HasPrefix(w, prefix) {
				out = append(out, w)
			}
		}
		return out
	}
}

func setCustomCompleter(shell *ishell.Shell) {
	cmdCompleter := make(cmdToCompleter)
	for _, cmd := range shell.Cmds() {
		cmdCompleter[cmd.Name] = cmd.Completer
	}
	completer := shellPathCompleter{cmdCompleter}
	shell.CustomCompleter(completer)
}

type cmdToCompleter map[string]func([]string) []string

type shellPathCompleter struct {
	cmdCompleter cmdToCompleter
}

func (s shellPathCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	fields := strings.Fields(string(line[:pos]))
	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(string(line[:pos]), " ")) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		var names []string
		for name := range s.cmdCompleter {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, n := range names {
			newLine = append(newLine, []rune(n[len(prefix):]+" "))
		}
		return newLine, len(prefix)
	}

	completer := s.cmdCompleter[fields[0]]
	if completer == nil {
		return nil, 0
	}
	prefix := ""
	if !strings.HasSuffix(string(line[:pos]), " ") {
		prefix = fields[len(fields)-1]
	}
	for _, c := range completer(fields[1:]) {
		if strings.HasPrefix(c, prefix) {
			newLine = append(newLine, []rune(c[len(prefix):]+" "))
		}
	}
	return newLine, len(prefix)
}

// RunShell runs args as a single command, or starts the interactive shell
// when there are none.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()

	shell.SetPrompt("[lightswitch]> ")

	shell.AddCmd(lsCmd(ctx))
	shell.AddCmd(infoCmd(ctx))
	shell.AddCmd(getCmd(ctx))
	shell.AddCmd(renderCmd(ctx))
	shell.AddCmd(sheetCmd(ctx))
	shell.AddCmd(pdfCmd(ctx))
	shell.AddCmd(typeCmd(ctx))
	shell.AddCmd(enterCmd(ctx))
	shell.AddCmd(tickCmd(ctx))
	shell.AddCmd(snapCmd(ctx))
	shell.AddCmd(gifCmd(ctx))
	shell.AddCmd(hintCmd(ctx))
	shell.AddCmd(hwrCmd(ctx))
	shell.AddCmd(versionCmd(ctx))

	setCustomCompleter(shell)

	if len(args) > 0 {
		return shell.Process(args...)
	}
	shell.Printf("lightswitch: %d words in archive\n", ctx.Archive.Len())
	shell.Run()
	return nil
}
