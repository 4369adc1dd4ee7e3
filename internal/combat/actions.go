package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// Flee chance bounds, in percent.
const (
	FleeBaseChance = 50
	FleeMinChance  = 5
	FleeMaxChance  = 95
)

// Damage returns the physical damage of attack against defense. Never below 1.
func Damage(attack, defense int) int {
	return max(1, attack-defense)
}

// FleeChance returns the percent chance to escape, clamped to [5, 95].
func FleeChance(playerAgility, monsterAgility int) int {
	chance := FleeBaseChance + 2*(playerAgility-monsterAgility)
	return min(max(chance, FleeMinChance), FleeMaxChance)
}

// applyDamage subtracts dmg from p's HP, flooring at 0, and returns the new HP.
func applyDamage(p Participant, dmg int) int {
	hp := max(GetInt(p, hpNames...)-dmg, 0)
	SetInt(p, AttrHP, hp)
	return hp
}

// resolveAttack is the player's basic strike.
func (e *Engine) resolveAttack() {
	dmg := Damage(GetInt(e.player, attackNames...), GetInt(e.monster, defenseNames...))
	applyDamage(e.monster, dmg)
	e.log.Addf("%s attacks %s for %d damage!", e.playerName(), e.monsterName(), dmg)
	e.checkEnd()
}

// resolveDefend raises a one-hit guard based on agility.
func (e *Engine) resolveDefend() {
	guard := max(1, GetInt(e.player, agilityNames...)/4)
	SetInt(e.player, AttrTempDefense, guard)
	SetInt(e.player, AttrTempDefenseTurns, 1)
	e.log.Addf("%s braces for impact! (+%d defense)", e.playerName(), guard)
}

// resolveCast fires a spell that ignores defense. Without MagicPower the
// spell draws on twice the caster's agility.
func (e *Engine) resolveCast() {
	power, ok := lookupInt(e.player, magicNames...)
	if !ok || power <= 0 {
		power = 2 * GetInt(e.player, agilityNames...)
	}
	dmg := max(1, power)
	applyDamage(e.monster, dmg)
	e.log.Addf("%s casts a spell on %s for %d damage!", e.playerName(), e.monsterName(), dmg)
	e.checkEnd()
}

// resolveFlee rolls an escape attempt.
func (e *Engine) resolveFlee() {
	chance := FleeChance(GetInt(e.player, agilityNames...), GetInt(e.monster, agilityNames...))
	roll := e.roller.IntN(100)
	if roll < chance {
		e.finish(OutcomeEscaped, fmt.Sprintf("%s escaped from %s!", e.playerName(), e.monsterName()))
		return
	}
	e.log.Addf("%s tried to flee but couldn't escape! (%d%% chance)", e.playerName(), chance)
}

// resolveMonsterAttack is the monster's only move. An active guard soaks
// damage and is used up by the hit.
func (e *Engine) resolveMonsterAttack() {
	dmg := Damage(GetInt(e.monster, attackNames...), GetInt(e.player, defenseNames...))

	guarded := false
	if turns := GetInt(e.player, tempTurnsNames...); turns > 0 {
		guarded = true
		dmg = max(0, dmg-GetInt(e.player, tempDefNames...))
		turns--
		SetInt(e.player, AttrTempDefenseTurns, turns)
		if turns <= 0 {
			SetInt(e.player, AttrTempDefenseTurns, 0)
			SetInt(e.player, AttrTempDefense, 0)
		}
	}
	applyDamage(e.player, dmg)
	SetInt(e.monster, AttrSpeed, 0)

	msg := fmt.Sprintf("%s attacks %s for %d damage!", e.monsterName(), e.playerName(), dmg)
	if guarded {
		msg += " (Defended!)"
	}
	e.log.Add(msg)
	e.checkEnd()
}

// checkEnd decides the encounter once either side is out of HP.
func (e *Engine) checkEnd() {
	if e.over {
		return
	}
	playerDown := GetInt(e.player, hpNames...) <= 0
	monsterDown := GetInt(e.monster, hpNames...) <= 0

	switch {
	case playerDown && monsterDown:
		e.finish(OutcomeDraw, fmt.Sprintf("%s and %s fall together. It's a draw!", e.playerName(), e.monsterName()))
	case monsterDown:
		e.finish(OutcomeVictory, fmt.Sprintf("%s defeated! Victory!", e.monsterName()))
		e.notifyKill()
	case playerDown:
		e.finish(OutcomeDefeat, fmt.Sprintf("%s has fallen! Defeat...", e.playerName()))
	}
}

// finish ends the encounter. Later calls are ignored.
func (e *Engine) finish(outcome Outcome, msg string) {
	if e.over {
		return
	}
	e.over = true
	e.outcome = outcome
	e.playerReady = false
	e.playerAccumulating = false
	e.monsterAccumulating = false
	e.log.Add(msg)
	e.logger.Info("encounter over",
		zap.Stringer("outcome", outcome),
		zap.Int("turn", e.turn),
	)
}

// notifyKill tells the notifier about the kill. Errors and panics are
// logged and otherwise ignored.
func (e *Engine) notifyKill() {
	if e.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("kill notifier panicked", zap.Any("panic", r))
		}
	}()
	if err := e.notifier.OnMonsterKilled(e.monster, e.player); err != nil {
		e.logger.Warn("kill notifier failed", zap.Error(err))
	}
}
