package combat

import (
	"time"

	"go.uber.org/zap"
)

// checkReadiness hands the next action to whichever side has a full gauge.
// On a simultaneous fill the higher Agility goes first and the player wins
// ties. The loser keeps its full gauge.
func (e *Engine) checkReadiness(now time.Time) {
	playerFull := gaugeFull(e.player)
	monsterFull := gaugeFull(e.monster)

	switch {
	case playerFull && monsterFull:
		if GetInt(e.monster, agilityNames...) > GetInt(e.player, agilityNames...) {
			e.beginMonsterAction(now)
		} else {
			e.grantPlayerTurn()
		}
	case playerFull:
		e.grantPlayerTurn()
	case monsterFull:
		e.beginMonsterAction(now)
	}
}

// grantPlayerTurn freezes both gauges until the player picks an action.
func (e *Engine) grantPlayerTurn() {
	e.playerReady = true
	e.playerAccumulating = false
	e.monsterAccumulating = false
	if !e.playerAnnounced {
		e.playerAnnounced = true
		e.log.Add("Your turn! Choose an action.")
	}
}

// completeTurn closes the turn once both sides have acted at least once.
func (e *Engine) completeTurn() {
	if e.over || !e.playerActed || !e.monsterActed {
		return
	}
	e.playerActed = false
	e.monsterActed = false
	e.playerAnnounced = false
	e.playerAccumulating = true
	e.monsterAccumulating = true
	e.turn++
	e.log.Addf("--- Turn %d ---", e.turn)
	e.logger.Debug("turn boundary", zap.Int("turn", e.turn))
}
