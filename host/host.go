// Package host drives the game at a fixed tick rate and renders its frames
// with the software device.
package host

import (
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lightswitch/lightswitch/game"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/player"
	"github.com/lightswitch/lightswitch/render"
	"github.com/lightswitch/lightswitch/shader"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Host owns the render device and one player per live submission.
type Host struct {
	Game    *game.Game
	program *shader.Program
	dev     *render.Device
	opts    player.Options
	players map[uuid.UUID]*player.Player
}

func New(g *game.Game, program *shader.Program, opts player.Options) *Host {
	return &Host{
		Game:    g,
		program: program,
		dev:     render.NewDevice(g.Width, g.Height),
		opts:    opts,
		players: make(map[uuid.UUID]*player.Player),
	}
}

// Step advances the game by one tick and draws the frame.
func (h *Host) Step() *image.RGBA {
	h.Game.Tick(1.0 / game.TickRate)
	return h.Draw()
}

// Draw renders the current game state.
func (h *Host) Draw() *image.RGBA {
	g := h.Game
	w, vh := float32(g.Width), float32(g.Height)
	bg := g.Background()
	h.dev.Clear(shader.RGBA(bg, bg, bg, 1))

	cmds := g.Frame()
	seen := make(map[uuid.UUID]bool, len(cmds))
	for _, c := range cmds {
		s := c.Submission
		p, ok := h.players[s.ID]
		if !ok {
			p = player.New(h.program, h.dev, s.Shown, s.Stream, h.opts)
			h.players[s.ID] = p
		}
		seen[s.ID] = true

		p.SetPlacement(c.Placement)
		p.RenderSetup(c.Main, c.Tip, w, vh)
		p.Render(c.Reveal, c.Erase)
	}
	for id := range h.players {
		if !seen[id] {
			delete(h.players, id)
		}
	}

	img := h.dev.Image()
	drawWord(img, strings.ToUpper(g.Word()))
	return img
}

func drawWord(img *image.RGBA, word string) {
	if word == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	b := img.Bounds()
	x := fixed.I(b.Dx()/2) - d.MeasureString(word)/2
	// a third of the height below the center
	y := fixed.I(b.Dy()/2 + b.Dy()/3)
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(word)
}

// Run steps the game in real time until ctx is done, handing every frame
// to sink.
func (h *Host) Run(ctx context.Context, sink func(*image.RGBA) error) error {
	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sink(h.Step()); err != nil {
				return err
			}
		}
	}
}

// Snapshot writes the current frame as PNG.
func (h *Host) Snapshot(w io.Writer) error {
	return png.Encode(w, h.Draw())
}

// Animate advances the game by seconds and writes the frames as a GIF,
// keeping every frameStep-th tick.
func (h *Host) Animate(w io.Writer, seconds float64, frameStep int) error {
	if frameStep <= 0 {
		frameStep = 3
	}
	ticks := int(seconds * game.TickRate)
	delay := 100 * frameStep / game.TickRate

	anim := &gif.GIF{}
	for i := 0; i < ticks; i++ {
		img := h.Step()
		if i%frameStep != 0 {
			continue
		}
		frame := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(frame, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	log.Trace.Printf("animated %d frames over %gs", len(anim.Image), seconds)
	if len(anim.Image) == 0 {
		return errors.New("no frames to animate")
	}
	return gif.EncodeAll(w, anim)
}
