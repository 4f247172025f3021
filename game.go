package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/sim"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// pixels per world unit
	worldScale = 10.0
)

var factionColors = []color.Color{
	colornames.Lightgray,
	colornames.Cornflowerblue,
	colornames.Indianred,
	colornames.Mediumseagreen,
	colornames.Goldenrod,
}

type tracer struct {
	from, to [2]float32
	ttl      int
}

// Game plays a scenario back. It reads only snapshots and drained events,
// and steps the engine at the ebiten tick rate.
type Game struct {
	scenario string
	script   string
	debug    bool
	logger   *slog.Logger

	engine     *sim.Engine
	commanders []*sim.Commander
	paused     bool
	tracers    []tracer
	deaths     map[component.FactionID]int
}

func NewGame(scenario, script string, debug bool, logger *slog.Logger) (*Game, error) {
	g := &Game{scenario: scenario, script: script, debug: debug, logger: logger}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	engine, err := sim.NewEngine(sim.WithLogger(g.logger))
	if err != nil {
		return err
	}
	sc, err := engine.LoadScenario(g.scenario)
	if err != nil {
		return err
	}
	commanders, err := sc.Commanders(g.script, g.logger)
	if err != nil {
		return err
	}

	g.engine = engine
	g.commanders = commanders
	g.tracers = nil
	g.deaths = map[component.FactionID]int{}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if g.paused {
		return nil
	}

	for _, c := range g.commanders {
		if err := c.Run(context.Background(), g.engine); err != nil {
			g.logger.Warn("commander failed", "faction", c.Faction(), "err", err)
		}
	}
	g.engine.Step(1.0 / float64(ebiten.TPS()))
	g.consumeEvents()
	return nil
}

func (g *Game) consumeEvents() {
	live := g.tracers[:0]
	for _, t := range g.tracers {
		if t.ttl--; t.ttl > 0 {
			live = append(live, t)
		}
	}
	g.tracers = live

	for _, ev := range g.engine.DrainEvents() {
		switch data := ev.Data.(type) {
		case component.ProjectileFired:
			x0, y0 := toScreen(data.Start.X, data.Start.Z)
			x1, y1 := toScreen(data.End.X, data.End.Z)
			g.tracers = append(g.tracers, tracer{
				from: [2]float32{x0, y0},
				to:   [2]float32{x1, y1},
				ttl:  int(math.Ceil(data.Duration*float64(ebiten.TPS()))) + 1,
			})
		case component.AgentDied:
			g.deaths[data.Faction]++
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	snap := g.engine.Snapshot()

	for _, t := range g.tracers {
		vector.StrokeLine(screen, t.from[0], t.from[1], t.to[0], t.to[1], 1, color.RGBA{R: 255, G: 240, B: 160, A: 60}, true)
	}

	for _, a := range snap.Agents {
		x, y := toScreen(a.Position.X, a.Position.Z)
		clr := factionColor(a.Faction)
		if a.State == sim.StateDead {
			clr = colornames.Dimgray
		}
		// taller agents draw larger
		r := float32(0.5*worldScale) + float32(a.Position.Y)*0.5
		vector.FillCircle(screen, x, y, r, clr, true)

		hx := x + float32(math.Cos(a.Facing))*r
		hy := y + float32(math.Sin(a.Facing))*r
		vector.StrokeLine(screen, x, y, hx, hy, 1.5, colornames.Black, true)

		if a.MaxHealth > 0 && a.Health < a.MaxHealth {
			frac := float32(a.Health) / float32(a.MaxHealth)
			vector.StrokeLine(screen, x-r, y-r-3, x-r+2*r*frac, y-r-3, 2, colornames.Limegreen, false)
		}
	}

	for _, p := range snap.Projectiles {
		x, y := toScreen(p.Position.X, p.Position.Z)
		r := float32(1.5 + math.Max(p.Position.Y, 0)*0.15)
		vector.FillCircle(screen, x, y, r, colornames.White, true)
	}

	hud := fmt.Sprintf("%s  tick %d  t=%.1fs  FPS %.0f", g.scenario, snap.Tick, snap.Time, ebiten.ActualFPS())
	factions := snap.Factions()
	ids := make([]component.FactionID, 0, len(factions))
	for f := range factions {
		ids = append(ids, f)
	}
	slices.Sort(ids)
	for _, f := range ids {
		hud += fmt.Sprintf("\nfaction %d: %d alive, %d lost", f, factions[f].Alive, g.deaths[f])
	}
	if g.paused {
		hud += "\npaused (space to resume, r to restart)"
	}
	if g.debug {
		hud += fmt.Sprintf("\nprojectiles in flight: %d", len(snap.Projectiles))
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func factionColor(f component.FactionID) color.Color {
	if int(f) >= 0 && int(f) < len(factionColors) {
		return factionColors[f]
	}
	return colornames.Orchid
}

// toScreen maps the ground plane to the screen with the world origin at the
// center.
func toScreen(x, z float64) (float32, float32) {
	return float32(baseWidth/2 + x*worldScale), float32(baseHeight/2 + z*worldScale)
}
