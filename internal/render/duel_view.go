package render

import (
	"fmt"

	"happy-arena/internal/combat"
)

// DuelView is everything the renderer needs for one duel frame.
type DuelView struct {
	combat.Snapshot
	HeroColor int    // index into the hero palette
	Tick      uint64 // drives the wind-up blink
	Closing   bool
	Hint      string // free-form status, e.g. quest progress
}

// Minimum terminal size for the duel screen.
const (
	MinWidth  = 40
	MinHeight = 16
)

// RenderDuel produces the ANSI output for one duel frame.
//
// Layout, top to bottom: title border, monster (3 rows), VS divider, hero
// (3 rows), divider, combat log, HUD.
func (e *Engine) RenderDuel(v DuelView, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	if v.Over != e.lastOver {
		e.firstFrame = true
		e.lastOver = v.Over
	}

	e.fill(Cell{Ch: ' ', Bg: arenaBG})
	if e.width < MinWidth || e.height < MinHeight {
		e.centered(e.height/2, "Terminal too small", style{fg: RGB{220, 200, 180}, bg: arenaBG, bold: true})
		return e.flush()
	}

	hudY := e.height - HUDRows
	line := style{fg: border, bg: arenaBG}
	title := style{fg: gold, bg: arenaBG, bold: true}

	e.hline(0, '┌', '─', '┐', line)
	e.centered(0, fmt.Sprintf(" ARENA  Turn %d ", v.Turn), title)
	for y := 1; y < hudY; y++ {
		e.set(y, 0, line.cell('│'))
		e.set(y, e.width-1, line.cell('│'))
	}

	e.drawMonster(1, v)
	e.divider(4, " VS ", line, title)
	e.drawHero(5, v)
	e.divider(8, "", line, line)
	e.drawLog(9, hudY, v.Log)

	if v.Over {
		text, fg := banner(v.Outcome)
		e.centered(e.height/2-1, text, style{fg: fg, bg: arenaBG, bold: true})
	}

	e.drawHUD(v)
	return e.flush()
}

func banner(o combat.Outcome) (string, RGB) {
	switch o {
	case combat.OutcomeVictory:
		return "★ VICTORY ★", RGB{255, 220, 50}
	case combat.OutcomeDefeat:
		return "✖ DEFEAT ✖", RGB{255, 50, 50}
	case combat.OutcomeDraw:
		return "═ DRAW ═", RGB{200, 200, 210}
	case combat.OutcomeEscaped:
		return "» ESCAPED »", RGB{120, 200, 255}
	}
	return "", RGB{}
}

// barWidth leaves room for a 3-letter label and "100/100" to the right.
func (e *Engine) barWidth(col int) int {
	return max(e.width-col-16, 4)
}

// drawStats draws the HP and ATB bars on the two rows below row.
func (e *Engine) drawStats(row int, c combat.Combatant) {
	w := e.barWidth(2)
	e.bar(row+1, 2, "HP ", c.HP, c.MaxHP, w, hpLabel, hpColor(c.HP, c.MaxHP), arenaBG)
	e.bar(row+2, 2, "ATB", c.Speed, combat.GaugeMax, w, atbLabel, gaugeColor(c.Speed, combat.GaugeMax), arenaBG)
}

func (e *Engine) drawMonster(row int, v DuelView) {
	m := v.Monster
	name := style{fg: RGB{200, 160, 140}, bg: arenaBG, bold: true}
	if m.HP <= 0 {
		name.fg = RGB{80, 80, 90}
	}
	col := e.text(row, 2, e.width-1, m.Name, name)
	switch {
	case v.MonsterPreparing:
		if (v.Tick/4)%2 == 0 {
			e.text(row, col+2, e.width-1, "! winding up", style{fg: warnText, bg: arenaBG, bold: true})
		}
	case v.EnemyActing:
		e.text(row, col+2, e.width-1, "recovering", style{fg: softText, bg: arenaBG})
	}
	e.drawStats(row, m)
}

func (e *Engine) drawHero(row int, v DuelView) {
	h := v.Player
	accent := HeroColor(v.HeroColor)

	col := e.text(row, 2, e.width-1, "●", style{fg: accent, bg: arenaBG, bold: true})
	col = e.text(row, col+1, e.width-1, h.Name, style{fg: accent.Lighten(), bg: arenaBG, bold: true})
	if h.TempDefense > 0 {
		e.text(row, col+2, e.width-1, fmt.Sprintf("[+%d DEF]", h.TempDefense), style{fg: guardFg, bg: arenaBG})
	}
	e.drawStats(row, h)
}

// drawLog shows the newest lines that fit between top and bottom.
func (e *Engine) drawLog(top, bottom int, log []string) {
	if rows := bottom - top; len(log) > rows {
		log = log[len(log)-max(rows, 0):]
	}
	for i, msg := range log {
		st := style{fg: logText, bg: arenaBG}
		if i == len(log)-1 {
			st.fg = logNew
		}
		e.text(top+i, 2, e.width-1, msg, st)
	}
}

// drawHUD draws the bottom rows: status, action bar and controls. The
// separator row doubles as the bottom border of the arena box.
func (e *Engine) drawHUD(v DuelView) {
	hudY := e.height - HUDRows

	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.set(hudY, x, Cell{Ch: '━', Fg: RGB{140 + t, 40 + t, 40 + t}, Bg: hudBG})
	}
	e.set(hudY, 0, Cell{Ch: '┕', Fg: border, Bg: hudBG})
	e.set(hudY, e.width-1, Cell{Ch: '┙', Fg: border, Bg: hudBG})
	for row := hudY + 1; row < e.height; row++ {
		for x := 0; x < e.width; x++ {
			e.set(row, x, Cell{Ch: ' ', Bg: hudBG})
		}
	}

	var status string
	switch {
	case v.Over:
		status = "Battle over: " + v.Outcome.String()
	case v.PlayerReady:
		status = "YOUR TURN"
	case v.MonsterPreparing:
		status = v.Monster.Name + " is preparing to attack..."
	case v.EnemyActing:
		status = v.Monster.Name + " is recovering"
	default:
		status = "Charging..."
	}
	e.text(hudY+1, 1, e.width, status, style{fg: RGB{220, 200, 180}, bg: hudBG, bold: v.PlayerReady})

	if v.Over {
		e.text(hudY+2, 1, e.width, "Next challenger approaches...", style{fg: softText, bg: hudBG})
	} else {
		action := style{fg: dimText, bg: hudBG}
		if v.PlayerReady {
			action = style{fg: RGB{255, 255, 220}, bg: hudBG, bold: true}
		}
		col := 1
		for i, label := range []string{"1:Attack", "2:Defend", "3:Cast", "4:Flee"} {
			if i > 0 {
				col = e.text(hudY+2, col, e.width, "  ", action)
			}
			col = e.text(hudY+2, col, e.width, label, action)
		}
	}

	col := e.text(hudY+3, 1, e.width, "Q Quit", style{fg: RGB{130, 130, 145}, bg: hudBG})
	if v.Hint != "" {
		col = e.text(hudY+3, col, e.width, "  │  ", style{fg: RGB{60, 65, 85}, bg: hudBG})
		e.text(hudY+3, col, e.width, v.Hint, style{fg: RGB{100, 220, 220}, bg: hudBG})
	}
}
