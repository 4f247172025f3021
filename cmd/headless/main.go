package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/google/uuid"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/milk9111/skirmish/sim"
)

type config struct {
	Scenario string
	Ticks    int
	DT       float64
	Script   string
	Tuning   string
	Watch    bool
	Verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.Scenario, "scenario", "skirmish.yaml", "scenario file in prefabs/")
	flag.IntVar(&cfg.Ticks, "ticks", 0, "ticks to run (0 uses the scenario value)")
	flag.Float64Var(&cfg.DT, "dt", 0, "seconds per tick (0 uses the scenario value)")
	flag.StringVar(&cfg.Script, "script", "", "commander script for every faction (overrides the scenario)")
	flag.StringVar(&cfg.Tuning, "tuning", "tuning.yaml", "tuning file")
	flag.BoolVar(&cfg.Watch, "watch", false, "reload tuning when files under prefabs/ change")
	flag.BoolVar(&cfg.Verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

type report struct {
	RunID      string
	Scenario   string
	Ticks      int
	Time       float64
	Fired      int
	Impacts    int
	Misses     int
	Damage     int
	Healed     int
	Deaths     map[component.FactionID]int
	Final      map[component.FactionID]sim.FactionSummary
	Interrupts int
}

func run(ctx context.Context, cfg config, logger *slog.Logger, out io.Writer) error {
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	tuning, err := prefabs.LoadTuning(cfg.Tuning)
	if err != nil {
		return err
	}
	engine, err := sim.NewEngine(sim.WithLogger(logger), sim.WithTuning(tuning))
	if err != nil {
		return err
	}
	sc, err := engine.LoadScenario(cfg.Scenario)
	if err != nil {
		return err
	}

	ticks := cfg.Ticks
	if ticks <= 0 {
		ticks = sc.Spec.Ticks
	}
	dt := cfg.DT
	if dt <= 0 {
		dt = sc.Spec.DT
	}
	if ticks <= 0 || dt <= 0 {
		return fmt.Errorf("headless: scenario %q needs ticks and dt", sc.Spec.Name)
	}

	commanders, err := sc.Commanders(cfg.Script, logger)
	if err != nil {
		return err
	}

	var reload <-chan string
	if cfg.Watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			return fmt.Errorf("headless: watch: %w", err)
		}
		defer watcher.Close()
		reload = watcher.Events
	}

	rep := report{
		RunID:    runID,
		Scenario: sc.Spec.Name,
		Deaths:   map[component.FactionID]int{},
	}
	for tick := 0; tick < ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case path, ok := <-reload:
			if ok && prefabs.IsTuningFile(path) {
				applyTuning(engine, path, logger)
			}
		default:
		}

		for _, c := range commanders {
			if err := c.Run(ctx, engine); err != nil {
				rep.Interrupts++
				logger.Warn("commander failed", "faction", c.Faction(), "err", err)
			}
		}
		engine.Step(dt)
		rep.tally(engine.DrainEvents())
		rep.Ticks++
		if done(engine.Snapshot()) {
			break
		}
	}

	snap := engine.Snapshot()
	rep.Time = snap.Time
	rep.Final = snap.Factions()
	return rep.write(out)
}

func applyTuning(engine *sim.Engine, path string, logger *slog.Logger) {
	t, err := prefabs.LoadTuning(path)
	if err == nil {
		err = engine.ApplyTuning(t)
	}
	if err != nil {
		logger.Warn("tuning reload failed", "path", path, "err", err)
		return
	}
	logger.Info("tuning reloaded", "path", path)
}

// done reports whether at most one faction still has living agents.
func done(snap sim.Snapshot) bool {
	alive := 0
	for _, s := range snap.Factions() {
		if s.Alive > 0 {
			alive++
		}
	}
	return alive <= 1
}

func (r *report) tally(events []ecs.Event) {
	for _, ev := range events {
		switch data := ev.Data.(type) {
		case component.ProjectileFired:
			r.Fired++
		case component.ProjectileImpact:
			if data.Victim == component.NoRef {
				r.Misses++
			} else {
				r.Impacts++
			}
		case component.DamageDealt:
			r.Damage += data.Amount
		case component.Healed:
			r.Healed += data.Amount
		case component.AgentDied:
			r.Deaths[data.Faction]++
		}
	}
}

func (r *report) write(out io.Writer) error {
	factions := make([]component.FactionID, 0, len(r.Final))
	for f := range r.Final {
		factions = append(factions, f)
	}
	for f := range r.Deaths {
		if _, ok := r.Final[f]; !ok {
			factions = append(factions, f)
		}
	}
	slices.Sort(factions)

	if _, err := fmt.Fprintf(out, "run %s scenario %s: %d ticks, %.2fs\n", r.RunID, r.Scenario, r.Ticks, r.Time); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "projectiles fired=%d hit=%d missed=%d damage=%d healed=%d\n", r.Fired, r.Impacts, r.Misses, r.Damage, r.Healed); err != nil {
		return err
	}
	for _, f := range factions {
		s := r.Final[f]
		if _, err := fmt.Fprintf(out, "faction %d: alive=%d deaths=%d health=%d\n", f, s.Alive, r.Deaths[f], s.TotalHealth); err != nil {
			return err
		}
	}
	if r.Interrupts > 0 {
		_, err := fmt.Fprintf(out, "commander errors=%d\n", r.Interrupts)
		return err
	}
	return nil
}
