// Command duelsim plays many duels headlessly with a scripted hero and
// prints how they ended. It is handy for balancing the bestiary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"happy-arena/internal/bestiary"
	"happy-arena/internal/combat"
	"happy-arena/internal/config"
	"happy-arena/internal/game"
	"happy-arena/internal/logging"
	"happy-arena/internal/quest"
)

// maxTicks bounds a single duel in case a matchup can never end.
const maxTicks = 100_000

type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time          { return c.now }
func (c *simClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// choose is the scripted hero: guard when below 30% HP, cast when the
// spell beats a weapon hit through armor, otherwise attack.
func choose(h *game.Hero, m *game.Monster) game.Action {
	if h.HP*10 < h.MaxHP*3 && h.GuardTurns == 0 {
		return game.ActionDefend
	}
	if h.MagicPower > combat.Damage(h.Attack, m.Def.Armor) {
		return game.ActionCast
	}
	return game.ActionAttack
}

// simResult is one finished simulated duel.
type simResult struct {
	Monster string
	Outcome combat.Outcome
	Turns   int
	Ticks   int
}

type simulator struct {
	hero      game.HeroStats
	engineCfg combat.Config
	tick      time.Duration
	notifier  combat.KillNotifier
	logger    *zap.Logger
}

// simulate plays one duel to completion on a simulated clock.
func (s *simulator) simulate(def bestiary.Def, roller combat.Roller) (simResult, error) {
	clock := &simClock{now: time.Unix(0, 0)}
	hero := game.NewHero("sim", s.hero)
	monster := game.NewMonster(def)
	engine, err := combat.New(hero, monster, s.engineCfg, combat.Deps{
		Clock:    clock,
		Roller:   roller,
		Notifier: s.notifier,
		Logger:   s.logger,
	})
	if err != nil {
		return simResult{}, err
	}

	ticks := 0
	for ; !engine.IsOver() && ticks < maxTicks; ticks++ {
		if engine.IsPlayerTurnReady() {
			switch choose(hero, monster) {
			case game.ActionDefend:
				engine.Defend()
			case game.ActionCast:
				engine.Cast()
			default:
				engine.Attack()
			}
		}
		engine.Tick()
		clock.Advance(s.tick)
	}
	if !engine.IsOver() {
		return simResult{}, fmt.Errorf("duel against %s did not finish in %d ticks", def.Name, maxTicks)
	}
	return simResult{Monster: def.Name, Outcome: engine.Outcome(), Turns: engine.Turn(), Ticks: ticks}, nil
}

type tally struct {
	mu       sync.Mutex
	outcomes map[string]map[combat.Outcome]int
	turns    map[string]int
	duels    map[string]int
}

func newTally() *tally {
	return &tally{
		outcomes: make(map[string]map[combat.Outcome]int),
		turns:    make(map[string]int),
		duels:    make(map[string]int),
	}
}

func (t *tally) add(r simResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outcomes[r.Monster] == nil {
		t.outcomes[r.Monster] = make(map[combat.Outcome]int)
	}
	t.outcomes[r.Monster][r.Outcome]++
	t.turns[r.Monster] += r.Turns
	t.duels[r.Monster]++
}

func (t *tally) print(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.duels))
	for name := range t.duels {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "%-12s %6s %8s %8s %6s %8s %9s\n", "monster", "duels", "victory", "defeat", "draw", "escaped", "avg turns")
	for _, name := range names {
		o := t.outcomes[name]
		n := t.duels[name]
		fmt.Fprintf(w, "%-12s %6d %8d %8d %6d %8d %9.1f\n", name, n,
			o[combat.OutcomeVictory], o[combat.OutcomeDefeat], o[combat.OutcomeDraw], o[combat.OutcomeEscaped],
			float64(t.turns[name])/float64(n))
	}
}

func main() {
	var (
		configPath = flag.String("config", "arena.yaml", "path to the YAML config")
		duels      = flag.Int("n", 1000, "number of duels")
		parallel   = flag.Int("parallel", 8, "duels simulated at once")
		only       = flag.String("monster", "", "fight only this monster")
		seed       = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(config.Logging{Level: "warn", Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *duels, *parallel, *only, *seed, os.Stdout); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger, duels, parallel int, only string, seed uint64, out io.Writer) error {
	roster, err := bestiary.Load(cfg.BestiaryDir)
	if err != nil {
		logger.Warn("using built-in bestiary", zap.Error(err))
		roster = bestiary.Default()
	}
	var fixed *bestiary.Def
	if only != "" {
		def, ok := roster.ByName(only)
		if !ok {
			return fmt.Errorf("unknown monster %q", only)
		}
		fixed = &def
	}

	tracker, err := quest.NewTracker(cfg.Objectives, nil, logger)
	if err != nil {
		return err
	}
	sim := &simulator{
		hero:      cfg.Hero.Stats(),
		engineCfg: cfg.Combat.EngineConfig(),
		tick:      game.TickInterval(cfg.Combat.TickRate),
		notifier:  tracker,
		logger:    logger,
	}

	results := newTally()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(parallel, 1))
	for i := range duels {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			def := roster.Pick(rng)
			if fixed != nil {
				def = *fixed
			}
			r, err := sim.simulate(def, rng)
			if err != nil {
				return err
			}
			results.add(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	results.print(out)
	for _, p := range tracker.Progress("sim") {
		fmt.Fprintf(out, "objective %s: %d/%d done=%t\n", p.ID, p.Kills, p.Count, p.Done)
	}
	return nil
}
