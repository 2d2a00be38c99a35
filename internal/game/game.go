// Package game animates the fractal tree: a Driver owns the animation state
// and regrows the tree each tick, and Game plugs it into the ebiten loop.
package game

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/fractal-tree/internal/config"
	"github.com/iburimskiy/fractal-tree/internal/surface"
)

// ReloadKey re-reads the config file when pressed.
const ReloadKey = ebiten.KeyR

// Options configure the window loop.
type Options struct {
	// TPS is the number of updates per second; each advances time by 1/TPS.
	TPS int

	// Chime plays a short tone after every successful reload.
	Chime bool

	Logger *log.Logger
}

// Game implements ebiten.Game around a Driver.
type Game struct {
	driver *Driver
	dt     float64
	chime  *Chime
	logger *log.Logger

	// input edge detection
	prevKey   map[ebiten.Key]bool
	isPressed func(ebiten.Key) bool

	lastErr error
}

func New(d *Driver, opts Options) *Game {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	g := &Game{
		driver:    d,
		dt:        seconds(opts.TPS),
		logger:    opts.Logger,
		prevKey:   map[ebiten.Key]bool{},
		isPressed: ebiten.IsKeyPressed,
	}
	if opts.Chime {
		g.chime = NewChime()
	}
	return g
}

// justPressed reports a key only on the update where it goes down, so
// holding it fires once.
func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := g.isPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

// Update handles the reload key and advances the animation. A failed reload
// or a failed draw from the previous frame stops the loop.
func (g *Game) Update() error {
	if g.lastErr != nil {
		return g.lastErr
	}

	if g.justPressed(ReloadKey) {
		if err := g.driver.Reload(); err != nil {
			return err
		}
		g.playChime()
	}

	return g.driver.Tick(g.dt)
}

func (g *Game) playChime() {
	if g.chime == nil {
		return
	}
	if err := g.chime.Play(); err != nil {
		g.logger.Warn("Reload chime disabled", "err", err)
		g.chime = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := Present(surface.NewEbiten(screen), g.driver); err != nil && g.lastErr == nil {
		g.lastErr = err
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Run opens the window and blocks until it is closed or the loop fails.
func Run(g *Game, tps int) error {
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
