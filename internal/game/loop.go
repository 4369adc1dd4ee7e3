package game

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"happy-arena/internal/combat"
)

// DuelOptions configures a Duel. Zero values get sensible defaults.
type DuelOptions struct {
	Combat     combat.Config
	TickRate   int
	ResultHold time.Duration
	LogLines   int // newest log lines per snapshot, 0 for all

	Notifier combat.KillNotifier
	Recorder ResultRecorder
	Clock    combat.Clock
	Roller   combat.Roller
	Logger   *zap.Logger
}

// Duel drives one encounter from a single goroutine: it drains player
// input, ticks the engine and publishes snapshots.
type Duel struct {
	engine  *combat.Engine
	hero    *Hero
	monster *Monster

	inputCh  chan Action
	renderCh RenderChan

	tickRate   int
	resultHold time.Duration
	logLines   int
	clock      combat.Clock
	recorder   ResultRecorder
	logger     *zap.Logger

	tickCount uint64
	endedAt   time.Time
}

// NewDuel pits hero against monster.
func NewDuel(hero *Hero, monster *Monster, opts DuelOptions) (*Duel, error) {
	if hero == nil || monster == nil {
		return nil, errors.New("duel needs a hero and a monster")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.ResultHold <= 0 {
		opts.ResultHold = ResultHold
	}

	engine, err := combat.New(hero, monster, opts.Combat, combat.Deps{
		Clock:    opts.Clock,
		Roller:   opts.Roller,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Duel{
		engine:     engine,
		hero:       hero,
		monster:    monster,
		inputCh:    make(chan Action, InputChanSize),
		renderCh:   make(RenderChan, 2),
		tickRate:   opts.TickRate,
		resultHold: opts.ResultHold,
		logLines:   opts.LogLines,
		clock:      opts.Clock,
		recorder:   opts.Recorder,
		logger: opts.Logger.With(
			zap.String("duel", engine.ID().String()),
			zap.String("hero", hero.Name),
			zap.String("monster", monster.Def.Name),
		),
	}, nil
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Engine exposes the underlying combat engine.
func (d *Duel) Engine() *combat.Engine { return d.engine }

// Updates returns the snapshot channel. It is closed when Run returns.
func (d *Duel) Updates() <-chan DuelState { return d.renderCh }

// Submit queues an action without blocking. Returns false if the queue is full.
func (d *Duel) Submit(a Action) bool {
	select {
	case d.inputCh <- a:
		return true
	default:
		return false
	}
}

// Run ticks the duel until it ends and the result hold expires, or ctx is
// cancelled.
func (d *Duel) Run(ctx context.Context) error {
	defer close(d.renderCh)

	ticker := time.NewTicker(TickInterval(d.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if d.step(ctx) {
				return nil
			}
		}
	}
}

// step runs one frame and reports whether the duel is finished.
func (d *Duel) step(ctx context.Context) bool {
	// Drain all pending input events
	for {
		select {
		case a := <-d.inputCh:
			d.apply(a)
		default:
			goto drained
		}
	}
drained:

	d.engine.Tick()
	d.tickCount++

	now := d.clock.Now()
	if d.engine.IsOver() && d.endedAt.IsZero() {
		d.endedAt = now
		d.record(ctx)
	}
	closing := !d.endedAt.IsZero()

	state := DuelState{
		Snapshot:  d.engine.Snapshot(d.logLines),
		Tick:      d.tickCount,
		HeroColor: d.hero.Color,
		Closing:   closing,
	}
	// Non-blocking send; a slow client drops frames
	select {
	case d.renderCh <- state:
	default:
	}

	return closing && now.Sub(d.endedAt) >= d.resultHold
}

func (d *Duel) apply(a Action) {
	var ok bool
	switch a {
	case ActionAttack:
		ok = d.engine.Attack()
	case ActionDefend:
		ok = d.engine.Defend()
	case ActionCast:
		ok = d.engine.Cast()
	case ActionFlee:
		ok = d.engine.Flee()
	default:
		return
	}
	if !ok {
		d.logger.Debug("action ignored", zap.Stringer("action", a))
	}
}

// Result summarizes the duel. Outcome is OutcomeNone until it ends.
func (d *Duel) Result() Result {
	r := Result{
		ID:         d.engine.ID(),
		Hero:       d.hero.Name,
		Monster:    d.monster.Def.Name,
		Outcome:    d.engine.Outcome(),
		Turns:      d.engine.Turn(),
		HeroHP:     d.hero.HP,
		MonsterHP:  d.monster.HP,
		FinishedAt: d.endedAt,
	}
	if r.Outcome == combat.OutcomeVictory {
		r.EXP = d.monster.Def.EXP
	}
	return r
}

func (d *Duel) record(ctx context.Context) {
	res := d.Result()
	d.logger.Info("duel finished",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("turns", res.Turns),
		zap.Int("hero_hp", res.HeroHP),
	)
	if d.recorder == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SaveTimeout)
	defer cancel()
	if err := d.recorder.SaveResult(saveCtx, res); err != nil {
		d.logger.Warn("saving duel result failed", zap.Error(err))
	}
}
