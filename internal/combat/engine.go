// Package combat runs a single player-versus-monster encounter.
//
// Both sides fill a speed gauge every tick and act when it reaches
// GaugeMax. The player then waits for an explicit action call. The monster
// goes through a timed wind-up, strikes, and a timed recovery before the
// gauges resume. A turn closes once both sides have acted at least once.
//
// The Engine is not safe for concurrent use. Tick and the action methods
// must be called from the same goroutine.
package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidArgument is the base error for bad constructor input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNilParticipant is returned by New when either side is missing.
	ErrNilParticipant = fmt.Errorf("%w: participant is nil", ErrInvalidArgument)
)

// Outcome is how an encounter ended.
type Outcome int

const (
	OutcomeNone Outcome = iota // still fighting
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw
	OutcomeEscaped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	case OutcomeEscaped:
		return "escaped"
	default:
		return "none"
	}
}

// Engine is the state of one encounter.
type Engine struct {
	id      uuid.UUID
	player  Participant
	monster Participant
	cfg     Config

	clock    Clock
	roller   Roller
	notifier KillNotifier
	names    NameResolver
	logger   *zap.Logger

	phase   phase
	turn    int
	over    bool
	outcome Outcome

	playerReady         bool
	playerActed         bool
	monsterActed        bool
	playerAnnounced     bool
	playerAccumulating  bool
	monsterAccumulating bool

	log *Log
}

// New starts an encounter. Both gauges are seeded from Agility, and HP
// defaults to the maximum when unset.
func New(player, monster Participant, cfg Config, deps Deps) (*Engine, error) {
	if player == nil || monster == nil {
		return nil, ErrNilParticipant
	}
	cfg = cfg.withDefaults()
	deps = deps.withDefaults()

	id := uuid.New()
	e := &Engine{
		id:                  id,
		player:              player,
		monster:             monster,
		cfg:                 cfg,
		clock:               deps.Clock,
		roller:              deps.Roller,
		notifier:            deps.Notifier,
		names:               deps.Names,
		logger:              deps.Logger.With(zap.String("encounter", id.String())),
		phase:               phaseIdle{},
		turn:                1,
		playerAccumulating:  true,
		monsterAccumulating: true,
		log:                 NewLog(cfg.LogCapacity),
	}

	for _, p := range []Participant{player, monster} {
		SetInt(p, AttrSpeed, clampGauge(GetInt(p, agilityNames...)))
		if hp, ok := lookupInt(p, hpNames...); !ok || hp <= 0 {
			SetInt(p, AttrHP, max(GetInt(p, maxHPNames...), 0))
		}
	}

	e.log.Addf("A wild %s appears!", e.monsterName())
	e.logger.Info("encounter started",
		zap.String("player", e.playerName()),
		zap.String("monster", e.monsterName()),
	)
	return e, nil
}

// Tick advances the encounter by one frame. It is a no-op once the
// encounter is over.
func (e *Engine) Tick() {
	if e.over {
		return
	}
	now := e.clock.Now()
	if e.stepPhase(now) {
		return
	}
	if e.playerReady {
		return
	}
	if e.playerAccumulating {
		accumulate(e.player, e.cfg.FillScale)
	}
	if e.monsterAccumulating {
		accumulate(e.monster, e.cfg.FillScale)
	}
	e.checkReadiness(now)
}

// canAct reports whether a player action would be accepted.
func (e *Engine) canAct() bool {
	return e.playerReady && !e.IsEnemyActing() && !e.over
}

// playerAction runs resolve as the player's move and closes the turn if
// the monster has already acted.
func (e *Engine) playerAction(resolve func()) bool {
	if !e.canAct() {
		return false
	}
	resolve()
	SetInt(e.player, AttrSpeed, 0)
	e.playerActed = true
	e.playerReady = false
	if !e.over {
		e.playerAccumulating = true
		e.monsterAccumulating = true
	}
	e.completeTurn()
	return true
}

// Attack strikes the monster. Reports whether the action was accepted.
func (e *Engine) Attack() bool { return e.playerAction(e.resolveAttack) }

// Defend raises a guard against the monster's next hit.
func (e *Engine) Defend() bool { return e.playerAction(e.resolveDefend) }

// Cast hits the monster with a spell.
func (e *Engine) Cast() bool { return e.playerAction(e.resolveCast) }

// Flee attempts to escape. A failed attempt still uses the turn.
func (e *Engine) Flee() bool { return e.playerAction(e.resolveFlee) }

// ID identifies the encounter.
func (e *Engine) ID() uuid.UUID { return e.id }

// Turn returns the current turn number, starting at 1.
func (e *Engine) Turn() int { return e.turn }

// IsOver reports whether the encounter has ended.
func (e *Engine) IsOver() bool { return e.over }

// Outcome returns how the encounter ended, or OutcomeNone.
func (e *Engine) Outcome() Outcome { return e.outcome }

// IsPlayerTurnReady reports whether the engine is waiting on the player.
func (e *Engine) IsPlayerTurnReady() bool { return e.playerReady }

// IsEnemyActing reports whether the monster is in its action envelope.
func (e *Engine) IsEnemyActing() bool {
	_, idle := e.phase.(phaseIdle)
	return !idle
}

// IsMonsterPreparing reports whether the monster is winding up.
func (e *Engine) IsMonsterPreparing() bool {
	_, ok := e.phase.(phasePreAction)
	return ok
}

// Log returns a copy of the combat log.
func (e *Engine) Log() []string { return e.log.Lines() }

func (e *Engine) playerName() string  { return e.names.DisplayName(e.player) }
func (e *Engine) monsterName() string { return e.names.DisplayName(e.monster) }
