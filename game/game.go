// Package game implements the word guessing game: the player types words,
// each word is drawn as a handwritten picture in green when it satisfies
// the hidden rule and in red when it does not. Five different accepted
// words in a row win the round.
package game

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/player"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/lightswitch/lightswitch/vertex"
)

const (
	// TickRate is the fixed frame rate of the game clock.
	TickRate = 60

	// Lifetime is how long a submitted picture stays on screen, in seconds.
	Lifetime = 3.5
	// Growth is the relative picture growth per second.
	Growth = 0.1

	acceptedEraseLag = 2.5
	rejectedEraseLag = 1.2
	victoryReveal    = 2

	// SuccessesToWin is the number of distinct accepted words in a row
	// that wins a round.
	SuccessesToWin = 5

	backgroundStep = 0.05
)

var (
	AcceptedColor = shader.RGBA(0.3, 2, 0.3, 1)
	RejectedColor = shader.RGBA(2, 0.3, 0.3, 1)
	TipColor      = shader.RGBA(1, 1, 1, 1)
	VictoryColor  = shader.RGBA(0, 0, 0, 1)
)

// Loader resolves a typed word to a picture. It returns the word actually
// loaded, which differs from the typed word when a fallback is used.
type Loader interface {
	Load(word string) (string, vertex.Stream, error)
}

// ArchiveLoader loads pictures from an archive, substituting a picked word
// for words the archive does not have.
type ArchiveLoader struct {
	Zip    *archive.Zip
	Picker archive.FallbackPicker
}

func (l ArchiveLoader) Load(word string) (string, vertex.Stream, error) {
	return l.Zip.LoadOrFallback(word, l.Picker)
}

// Submission is one entered word.
type Submission struct {
	ID       uuid.UUID
	Word     string
	Shown    string
	Stream   vertex.Stream
	Start    float64
	Accepted bool
	Main     shader.Color
	Tip      shader.Color

	// victory layout, in stage units
	X, Y, Scale float32
}

// DrawCommand is one picture draw of a frame.
type DrawCommand struct {
	Submission *Submission
	Placement  player.Placement
	Main, Tip  shader.Color
	Reveal     float32
	Erase      float32
}

// Game is the game state. It is driven by a single goroutine.
type Game struct {
	Width, Height int

	loader Loader
	rnd    *rand.Rand
	rules  *RuleBag

	time       float64
	background float32

	word      string
	rule      Rule
	words     []string
	successes int
	victory   bool

	pictures []*Submission
	winners  map[string]*Submission
	order    []string
}

func New(loader Loader, rnd *rand.Rand, width, height int) *Game {
	g := &Game{
		Width:  width,
		Height: height,
		loader: loader,
		rnd:    rnd,
		rules:  NewRuleBag(rnd),
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.rule = g.rules.Next()
	log.Info.Println(g.rule.Hint())
	g.words = nil
	g.successes = 0
	g.victory = false
	g.winners = make(map[string]*Submission)
	g.order = nil
}

func (g *Game) Time() float64           { return g.time }
func (g *Game) Word() string            { return g.word }
func (g *Game) Words() []string         { return g.words }
func (g *Game) Hint() string            { return g.rule.Hint() }
func (g *Game) Rule() Rule              { return g.rule }
func (g *Game) Successes() int          { return g.successes }
func (g *Game) Victory() bool           { return g.victory }
func (g *Game) Background() float32     { return g.background }
func (g *Game) Pictures() []*Submission { return g.pictures }

// Type appends a letter to the typed word. Anything but a-z is ignored.
// After a victory any key starts a new round.
func (g *Game) Type(r rune) {
	if g.victory {
		g.reset()
		return
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r >= 'a' && r <= 'z' {
		g.word += string(r)
	}
}

// TypeWord types every letter of word.
func (g *Game) TypeWord(word string) {
	for _, r := range word {
		g.Type(r)
	}
}

func (g *Game) Backspace() {
	if g.victory {
		g.reset()
		return
	}
	if g.word != "" {
		g.word = g.word[:len(g.word)-1]
	}
}

// Enter submits the typed word. It returns nil without error when nothing
// was submitted.
func (g *Game) Enter() (*Submission, error) {
	if g.victory {
		g.reset()
		return nil, nil
	}
	if g.word == "" {
		return nil, nil
	}

	word := g.word
	g.word = ""
	shown, stream, err := g.loader.Load(word)
	if err != nil {
		log.Error.Printf("can't load picture for %q: %v", word, err)
		return nil, err
	}

	s := &Submission{
		ID:     uuid.New(),
		Word:   word,
		Shown:  shown,
		Stream: stream,
		Start:  g.time,
		Tip:    TipColor,
	}
	if g.rule.Accepts(word) {
		s.Accepted = true
		s.Main = AcceptedColor
		if _, ok := g.winners[word]; !ok {
			g.successes++
			g.winners[word] = s
			g.order = append(g.order, word)
		}
	} else {
		s.Main = RejectedColor
		g.successes = 0
	}
	log.Trace.Printf("%s %q (shown %q) accepted=%v successes=%d", s.ID, word, shown, s.Accepted, g.successes)
	g.pictures = append(g.pictures, s)

	if g.successes == SuccessesToWin {
		g.victory = true
		for _, w := range g.order {
			v := g.winners[w]
			v.Scale = 0.3 + 0.2*g.rnd.Float32()
			v.X = -0.8 + 1.6*g.rnd.Float32()
			v.Y = -0.5 + g.rnd.Float32()
		}
		log.Info.Printf("victory with %v", g.order)
	}

	g.words = append(g.words, word)
	return s, nil
}

// Tick advances the clock by dt seconds and fades the background towards
// white on victory and towards black otherwise.
func (g *Game) Tick(dt float64) {
	g.time += dt
	if g.victory {
		g.background = min(g.background+backgroundStep, 1)
	} else {
		g.background = max(g.background-backgroundStep, 0)
	}
}

// stagePlacement places a picture whose lower left corner is at (x, y)
// and whose side is size, in stage units. A stage unit is half the window
// height and the stage origin is a sixth of the height above the center:
// 300px and 100px in an 800x600 window.
func (g *Game) stagePlacement(x, y, size float32) player.Placement {
	w, h := float32(g.Width), float32(g.Height)
	unit := h / 2
	cx := (x + size/2) * unit
	cy := (y+size/2)*unit + h/6
	return player.Placement{
		Scale:   size * unit / min(w, h),
		OffsetX: 2 * cx / w,
		OffsetY: 2 * cy / h,
	}
}

// Frame returns the draw commands for the current time and drops pictures
// that have run out.
func (g *Game) Frame() []DrawCommand {
	var cmds []DrawCommand

	live := g.pictures[:0]
	for _, p := range g.pictures {
		t := g.time - p.Start
		if t >= Lifetime {
			continue
		}
		live = append(live, p)

		s := float32(1 + t*Growth)
		lag := rejectedEraseLag
		if p.Accepted {
			lag = acceptedEraseLag
		}
		cmds = append(cmds, DrawCommand{
			Submission: p,
			Placement:  g.stagePlacement(-s/2, -s/2, s),
			Main:       p.Main,
			Tip:        p.Tip,
			Reveal:     float32(t),
			Erase:      float32(t - lag),
		})
	}
	for i := len(live); i < len(g.pictures); i++ {
		g.pictures[i] = nil
	}
	g.pictures = live

	if g.victory {
		for _, w := range g.order {
			v := g.winners[w]
			cmds = append(cmds, DrawCommand{
				Submission: v,
				Placement:  g.stagePlacement(v.X-0.5, v.Y-0.5, v.Scale),
				Main:       VictoryColor,
				Tip:        VictoryColor,
				Reveal:     victoryReveal,
				Erase:      shader.EraseDisabled,
			})
		}
	}
	return cmds
}
