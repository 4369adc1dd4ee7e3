package game

import (
	"fmt"
	"sync/atomic"

	"github.com/spf13/cast"

	"happy-arena/internal/combat"
)

// Action represents a player input action.
type Action int

const (
	ActionNone Action = iota
	ActionAttack
	ActionDefend
	ActionCast
	ActionFlee
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionCast:
		return "cast"
	case ActionFlee:
		return "flee"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// HeroStats are the starting stats of a new hero.
type HeroStats struct {
	MaxHP      int
	Attack     int
	Defense    int
	Agility    int
	MagicPower int
}

// Hero is the player's side of a duel.
type Hero struct {
	Name       string
	HP         int
	MaxHP      int
	Attack     int
	Defense    int
	Agility    int
	MagicPower int

	Speed      int // action gauge, 0-100
	Guard      int // temporary defense from Defend
	GuardTurns int
	Color      int // index into the render color palette
}

// NewHero creates a hero at full health.
func NewHero(name string, stats HeroStats) *Hero {
	return &Hero{
		Name:       name,
		HP:         stats.MaxHP,
		MaxHP:      stats.MaxHP,
		Attack:     stats.Attack,
		Defense:    stats.Defense,
		Agility:    stats.Agility,
		MagicPower: stats.MagicPower,
		Color:      NextPlayerColor(),
	}
}

// Attr implements combat.Participant.
func (h *Hero) Attr(name string) (any, bool) {
	if h == nil {
		return nil, false
	}
	switch name {
	case combat.AttrName:
		return h.Name, true
	case combat.AttrHP:
		return h.HP, true
	case combat.AttrMaxHP:
		return h.MaxHP, true
	case combat.AttrAttack:
		return h.Attack, true
	case combat.AttrDefense:
		return h.Defense, true
	case combat.AttrAgility:
		return h.Agility, true
	case combat.AttrMagicPower:
		return h.MagicPower, true
	case combat.AttrSpeed:
		return h.Speed, true
	case combat.AttrTempDefense:
		return h.Guard, true
	case combat.AttrTempDefenseTurns:
		return h.GuardTurns, true
	}
	return nil, false
}

// SetAttr implements combat.Participant.
func (h *Hero) SetAttr(name string, value any) error {
	if h == nil {
		return combat.ErrUnknownAttribute
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return fmt.Errorf("hero %s: %w", name, err)
	}
	switch name {
	case combat.AttrHP:
		h.HP = n
	case combat.AttrSpeed:
		h.Speed = n
	case combat.AttrTempDefense:
		h.Guard = n
	case combat.AttrTempDefenseTurns:
		h.GuardTurns = n
	case combat.AttrAgility:
		h.Agility = n
	default:
		return fmt.Errorf("hero %s: %w", name, combat.ErrUnknownAttribute)
	}
	return nil
}

const numPlayerColors = 6

var colorIndex atomic.Uint32

// NextPlayerColor returns the next color index from the rotating palette.
func NextPlayerColor() int {
	return int((colorIndex.Add(1) - 1) % numPlayerColors)
}
