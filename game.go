package main

import (
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/spikevale/hook"
	"github.com/milk9111/spikevale/level"
	"github.com/milk9111/spikevale/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// particle is a transient visual spawned from simulation events.
type particle struct {
	x, y  float64
	color string
	age   int
}

const particleLifetime = 45 // frames

type Game struct {
	frames int

	settings  Settings
	bus       *hook.Bus
	lvl       *level.Level
	sim       *sim.Simulation
	input     *Input
	watcher   *level.Watcher
	levelPath string

	paused      bool
	pauseUI     *ebitenui.UI
	endUI       *ebitenui.UI
	endTimeText func()

	last      time.Time
	particles []particle
	debug     bool
}

// NewGame wires a loaded level into a fresh simulation. levelPath is the
// on-disk path when the level came from disk, empty for embedded levels.
func NewGame(settings Settings, bus *hook.Bus, lvl *level.Level, levelPath string, debug bool) (*Game, error) {
	simulation, err := sim.New(lvl, bus, time.Now())
	if err != nil {
		return nil, err
	}

	g := &Game{
		settings:  settings,
		bus:       bus,
		lvl:       lvl,
		sim:       simulation,
		input:     NewInput(),
		levelPath: levelPath,
		debug:     debug,
	}
	g.pauseUI = NewPauseUI(g)
	g.endUI = NewEndUI(g)
	return g, nil
}

// SetWatcher attaches a level file watcher for hot reload.
func (g *Game) SetWatcher(w *level.Watcher) {
	g.watcher = w
}

func (g *Game) restart() {
	g.sim.Restart(time.Now())
	g.particles = nil
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.input.Update(g.bus)

	now := time.Now()
	elapsed := sim.TickInterval
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last)
	}
	g.last = now

	if !g.sim.Ended() {
		g.sim.Advance(g.input.State(), elapsed, now)
	} else {
		if g.endTimeText != nil {
			g.endTimeText()
		}
		g.endUI.Update()
	}

	for _, evt := range g.sim.Events.Drain() {
		switch evt.Kind {
		case sim.EventCheckpoint, sim.EventTeleport, sim.EventDeath, sim.EventRespawn:
			g.particles = append(g.particles, particle{x: evt.X, y: evt.Y, color: evt.Color})
		}
	}

	alive := g.particles[:0]
	for _, p := range g.particles {
		p.age++
		if p.age < particleLifetime {
			alive = append(alive, p)
		}
	}
	g.particles = alive

	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reloadLevel(path)
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("level watcher: %v", err)
		}
	default:
	}
}

func (g *Game) reloadLevel(path string) {
	lvl, err := level.Load(path)
	if err != nil {
		log.Printf("reload level %s: %v", path, err)
		return
	}
	simulation, err := sim.New(lvl, g.bus, time.Now())
	if err != nil {
		log.Printf("reload level %s: %v", path, err)
		return
	}
	g.lvl = lvl
	g.sim = simulation
	g.particles = nil
	log.Printf("reloaded level %s", path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawLevel(screen)
	g.drawBody(screen)
	g.drawParticles(screen)
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	} else if g.sim.Ended() {
		g.endUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
