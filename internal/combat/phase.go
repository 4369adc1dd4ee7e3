package combat

import (
	"time"

	"go.uber.org/zap"
)

// phase is the monster's action envelope. Exactly one of phaseIdle,
// phasePreAction or phasePostAction.
type phase interface {
	isPhase()
}

type phaseIdle struct{}

// phasePreAction: the monster is winding up and strikes at deadline.
type phasePreAction struct {
	deadline time.Time
}

// phasePostAction: the strike landed and play resumes at deadline.
type phasePostAction struct {
	deadline time.Time
}

func (phaseIdle) isPhase() {}
func (phasePreAction) isPhase() {}
func (phasePostAction) isPhase() {}

// beginMonsterAction freezes both gauges and starts the wind-up.
func (e *Engine) beginMonsterAction(now time.Time) {
	e.playerAccumulating = false
	e.monsterAccumulating = false
	e.phase = phasePreAction{deadline: now.Add(e.cfg.PreActionDelay)}
	e.log.Addf("%s is preparing to attack...", e.monsterName())
	e.logger.Debug("monster preparing", zap.Int("turn", e.turn))
}

// stepPhase advances a non-idle phase. It reports whether the phase
// consumed this tick.
func (e *Engine) stepPhase(now time.Time) bool {
	switch p := e.phase.(type) {
	case phaseIdle:
		return false
	case phasePreAction:
		if now.Before(p.deadline) {
			return true
		}
		e.resolveMonsterAttack()
		e.monsterActed = true
		if e.over {
			e.phase = phaseIdle{}
			return true
		}
		e.phase = phasePostAction{deadline: now.Add(e.cfg.PostActionDelay)}
		e.logger.Debug("monster recovering", zap.Int("turn", e.turn))
		return true
	case phasePostAction:
		if now.Before(p.deadline) {
			return true
		}
		e.phase = phaseIdle{}
		e.playerAccumulating = true
		e.monsterAccumulating = true
		e.completeTurn()
		return true
	default:
		e.phase = phaseIdle{}
		return false
	}
}
