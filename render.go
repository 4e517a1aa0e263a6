package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/spikevale/geom"
	"github.com/milk9111/spikevale/level"
	"github.com/milk9111/spikevale/sim"
)

func fillRect(screen *ebiten.Image, r geom.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func strokeRect(screen *ebiten.Image, r geom.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1.0, c, false)
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	cfg := g.lvl.Config
	for _, o := range g.lvl.Objects {
		switch o.Kind {
		case level.KindGround:
			fillRect(screen, o.Rect, colornames.Steelblue)
		case level.KindHazard:
			g.drawHazard(screen, o, cfg)
		case level.KindCheckpoint:
			c := colornames.Gray
			switch o.Checkpoint {
			case level.CheckpointActive:
				c = parseHexColor(o.Color, colornames.Limegreen)
			case level.CheckpointTouched:
				c = colornames.Darkseagreen
			}
			fillRect(screen, o.Rect, withAlpha(c, 160))
			strokeRect(screen, o.Rect, c)
		case level.KindSpawn:
			strokeRect(screen, o.Rect, colornames.Lightskyblue)
		case level.KindGoal:
			fillRect(screen, o.Rect, withAlpha(colornames.Goldenrod, 200))
		case level.KindPortal:
			c := parseHexColor(o.Color, colornames.Mediumpurple)
			fillRect(screen, o.Rect, withAlpha(c, 180))
			ebitenutil.DebugPrintAt(screen, o.Name, int(o.Rect.X), int(o.Rect.Y)-14)
		case level.KindZone:
			if g.debug {
				strokeRect(screen, o.Rect, colornames.Slategray)
			}
		}
	}
}

func (g *Game) drawHazard(screen *ebiten.Image, o *level.Object, cfg level.Config) {
	mode := o.EffectiveTouchMode(cfg)
	zones := sim.ResolveHazard(o, mode)

	if !zones.Danger.Empty() {
		fillRect(screen, zones.Danger, withAlpha(colornames.Crimson, 200))
	}
	if !zones.Tip.Empty() {
		fillRect(screen, zones.Tip, colornames.Gold)
	}
	if !zones.Flat.Empty() {
		fillRect(screen, zones.Flat, colornames.Darkolivegreen)
	}
	if g.debug {
		strokeRect(screen, o.Rect, colornames.Red)
	}
}

func (g *Game) drawBody(screen *ebiten.Image) {
	b := g.sim.Body
	fillRect(screen, b.GroundRect(), colornames.White)
	if g.debug {
		strokeRect(screen, b.HazardRect(), colornames.Orange)
	}
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	for _, p := range g.particles {
		c := parseHexColor(p.color, colornames.White)
		radius := 4 + float32(p.age)
		alpha := uint8(255 - p.age*255/particleLifetime)
		vector.StrokeCircle(screen, float32(p.x), float32(p.y), radius, 2.0, withAlpha(c, alpha), false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	b := g.sim.Body
	msg := fmt.Sprintf("FPS: %.0f  jumps: %d", ebiten.ActualFPS(), b.JumpsRemaining)
	if g.debug {
		msg += fmt.Sprintf("  pos: (%.1f, %.1f)  vel: (%.2f, %.2f)  grounded: %v", b.X, b.Y, b.VX, b.VY, b.OnGround)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// parseHexColor parses "#rrggbb", returning fallback on any other input.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	var r, g, b uint32
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
