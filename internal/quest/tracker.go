// Package quest counts monster kills per hero and tracks kill objectives.
package quest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"happy-arena/internal/combat"
)

// ErrNoHero is returned when a kill cannot be attributed to a named hero.
var ErrNoHero = errors.New("kill without a hero name")

// Objective is a kill quest such as "slay 3 Rats".
type Objective struct {
	ID      string `yaml:"id"`
	Monster string `yaml:"monster"` // monster kind, case-insensitive
	Count   int    `yaml:"count"`
	Reward  int    `yaml:"reward"` // bonus EXP
}

// Progress is one hero's standing on an objective.
type Progress struct {
	Objective
	Kills int
	Done  bool
}

// KillCounter loads persisted kill counts, keyed by monster kind.
type KillCounter interface {
	KillCounts(ctx context.Context, hero string) (map[string]int, error)
}

// Tracker implements combat.KillNotifier. It is safe for concurrent use
// by many duels.
type Tracker struct {
	mu         sync.Mutex
	objectives []Objective
	kills      map[string]map[string]int // hero -> kind -> count
	done       map[string]map[string]bool
	seeded     map[string]bool
	counter    KillCounter
	logger     *zap.Logger
}

// NewTracker validates objectives. counter may be nil.
func NewTracker(objectives []Objective, counter KillCounter, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seen := make(map[string]bool, len(objectives))
	for _, o := range objectives {
		if o.ID == "" || o.Monster == "" {
			return nil, fmt.Errorf("objective %q: id and monster are required", o.ID)
		}
		if o.Count <= 0 {
			return nil, fmt.Errorf("objective %q: count must be positive", o.ID)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("duplicate objective %q", o.ID)
		}
		seen[o.ID] = true
	}
	return &Tracker{
		objectives: append([]Objective(nil), objectives...),
		kills:      make(map[string]map[string]int),
		done:       make(map[string]map[string]bool),
		seeded:     make(map[string]bool),
		counter:    counter,
		logger:     logger,
	}, nil
}

var _ combat.KillNotifier = (*Tracker)(nil)

func kindKey(kind string) string { return strings.ToLower(kind) }

// OnMonsterKilled records a kill for the player and completes any
// objectives it satisfies.
func (t *Tracker) OnMonsterKilled(monster, player combat.Participant) error {
	hero := combat.GetString(player, combat.AttrName)
	if hero == "" {
		return ErrNoHero
	}
	kind := combat.GetString(monster, "Kind", combat.AttrName, "Label")
	if kind == "" {
		kind = combat.UnknownName
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.addLocked(hero, kind, 1)
	t.settleLocked(hero, true)
	return nil
}

func (t *Tracker) addLocked(hero, kind string, n int) {
	byKind := t.kills[hero]
	if byKind == nil {
		byKind = make(map[string]int)
		t.kills[hero] = byKind
	}
	byKind[kindKey(kind)] += n
}

// settleLocked marks objectives the hero's counts now satisfy. Only live
// kills announce a completion; seeding restores state quietly.
func (t *Tracker) settleLocked(hero string, announce bool) {
	for _, o := range t.objectives {
		if t.done[hero][o.ID] || t.kills[hero][kindKey(o.Monster)] < o.Count {
			continue
		}
		if t.done[hero] == nil {
			t.done[hero] = make(map[string]bool)
		}
		t.done[hero][o.ID] = true
		if announce {
			t.logger.Info("objective complete",
				zap.String("hero", hero),
				zap.String("objective", o.ID),
				zap.Int("reward", o.Reward),
			)
		}
	}
}

// Seed adds the hero's persisted kills to any counted live. It loads each
// hero at most once; a failed load is retried on the next call.
func (t *Tracker) Seed(ctx context.Context, hero string) error {
	if t.counter == nil {
		return nil
	}
	t.mu.Lock()
	seeded := t.seeded[hero]
	t.mu.Unlock()
	if seeded {
		return nil
	}

	counts, err := t.counter.KillCounts(ctx, hero)
	if err != nil {
		return fmt.Errorf("seed kills for %s: %w", hero, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seeded[hero] {
		return nil
	}
	t.seeded[hero] = true
	for kind, n := range counts {
		t.addLocked(hero, kind, n)
	}
	t.settleLocked(hero, false)
	t.logger.Debug("kills seeded", zap.String("hero", hero), zap.Int("kinds", len(counts)))
	return nil
}

// Kills returns how many monsters of kind the hero has slain.
func (t *Tracker) Kills(hero, kind string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.kills[hero][kindKey(kind)]
}

// Progress reports the hero's standing on every objective, in
// configuration order.
func (t *Tracker) Progress(hero string) []Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Progress, 0, len(t.objectives))
	for _, o := range t.objectives {
		out = append(out, Progress{
			Objective: o,
			Kills:     min(t.kills[hero][kindKey(o.Monster)], o.Count),
			Done:      t.done[hero][o.ID],
		})
	}
	return out
}
