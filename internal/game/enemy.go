package game

import (
	"fmt"

	"github.com/spf13/cast"

	"happy-arena/internal/bestiary"
	"happy-arena/internal/combat"
)

// Monster is a live enemy in a duel. It exposes the bestiary's vocabulary
// (Power, Armor, MaxHP) rather than the hero's field names.
type Monster struct {
	Def   bestiary.Def
	HP    int
	Speed int
}

// NewMonster spawns a monster at full health.
func NewMonster(def bestiary.Def) *Monster {
	return &Monster{Def: def, HP: def.MaxHP}
}

// Attr implements combat.Participant.
func (m *Monster) Attr(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	switch name {
	case "Label":
		return m.Def.Name, true
	case "HP":
		return m.HP, true
	case "MaxHP":
		return m.Def.MaxHP, true
	case "Power":
		return m.Def.Power, true
	case "Armor":
		return m.Def.Armor, true
	case combat.AttrAgility:
		return m.Def.Agility, true
	case combat.AttrSpeed:
		return m.Speed, true
	case "Kind":
		return m.Def.Name, true
	}
	return nil, false
}

// SetAttr implements combat.Participant.
func (m *Monster) SetAttr(name string, value any) error {
	if m == nil {
		return combat.ErrUnknownAttribute
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return fmt.Errorf("monster %s: %w", name, err)
	}
	switch name {
	case combat.AttrHP, "HP":
		m.HP = n
	case combat.AttrSpeed:
		m.Speed = n
	default:
		return fmt.Errorf("monster %s: %w", name, combat.ErrUnknownAttribute)
	}
	return nil
}
