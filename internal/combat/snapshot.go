package combat

// Combatant is a read-only view of one side for rendering.
type Combatant struct {
	Name        string
	HP          int
	MaxHP       int
	Speed       int
	Agility     int
	TempDefense int
}

// Snapshot is a copy of the engine state a UI needs for one frame.
type Snapshot struct {
	ID               string
	Turn             int
	Over             bool
	Outcome          Outcome
	PlayerReady      bool
	EnemyActing      bool
	MonsterPreparing bool
	Player           Combatant
	Monster          Combatant
	Log              []string
}

// Snapshot captures the current state. logLines limits how many of the
// newest log lines are included; 0 or less includes the whole log.
func (e *Engine) Snapshot(logLines int) Snapshot {
	var lines []string
	if logLines > 0 {
		lines = e.log.Tail(logLines)
	} else {
		lines = e.log.Lines()
	}
	return Snapshot{
		ID:               e.id.String(),
		Turn:             e.turn,
		Over:             e.over,
		Outcome:          e.outcome,
		PlayerReady:      e.playerReady,
		EnemyActing:      e.IsEnemyActing(),
		MonsterPreparing: e.IsMonsterPreparing(),
		Player:           e.combatant(e.player),
		Monster:          e.combatant(e.monster),
		Log:              lines,
	}
}

func (e *Engine) combatant(p Participant) Combatant {
	temp := 0
	if GetInt(p, tempTurnsNames...) > 0 {
		temp = GetInt(p, tempDefNames...)
	}
	return Combatant{
		Name:        e.names.DisplayName(p),
		HP:          GetInt(p, hpNames...),
		MaxHP:       GetInt(p, maxHPNames...),
		Speed:       clampGauge(GetInt(p, speedNames...)),
		Agility:     GetInt(p, agilityNames...),
		TempDefense: temp,
	}
}
