package combat

import (
	"errors"

	"github.com/spf13/cast"
)

// Attribute names the engine reads and writes on participants.
const (
	AttrName             = "Name"
	AttrAgility          = "Agility"
	AttrSpeed            = "CurrentSpeed"
	AttrAttack           = "Attack"
	AttrDefense          = "Defense"
	AttrHP               = "CurrentHP"
	AttrMaxHP            = "MaximumHP"
	AttrMagicPower       = "MagicPower"
	AttrTempDefense      = "TemporaryDefense"
	AttrTempDefenseTurns = "TemporaryDefenseTurns"
)

// Candidate lists, tried in priority order.
var (
	nameNames      = []string{AttrName, "Label", "DisplayName"}
	agilityNames   = []string{AttrAgility, "Agi", "Dex"}
	speedNames     = []string{AttrSpeed}
	attackNames    = []string{AttrAttack, "Power", "Str"}
	defenseNames   = []string{AttrDefense, "Armor", "Def"}
	hpNames        = []string{AttrHP, "HP", "Health"}
	maxHPNames     = []string{AttrMaxHP, "MaxHP", "MaxHealth"}
	magicNames     = []string{AttrMagicPower, "Magic", "Int"}
	tempDefNames   = []string{AttrTempDefense}
	tempTurnsNames = []string{AttrTempDefenseTurns}
)

// ErrUnknownAttribute is returned by participant adapters that do not expose
// the requested attribute.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Participant is one side of an encounter. The engine only ever touches it
// through named attributes, so player and monster types may expose
// different field sets.
type Participant interface {
	// Attr returns the raw value of the named attribute.
	Attr(name string) (any, bool)
	// SetAttr stores value under name.
	SetAttr(name string, value any) error
}

// Attributes is a plain key-value Participant.
type Attributes map[string]any

// Attr implements Participant.
func (a Attributes) Attr(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// SetAttr implements Participant.
func (a Attributes) SetAttr(name string, value any) error {
	if a == nil {
		return ErrUnknownAttribute
	}
	a[name] = value
	return nil
}

// rawAttr shields callers from adapters that panic on odd input.
func rawAttr(p Participant, name string) (v any, ok bool) {
	if p == nil {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()
	return p.Attr(name)
}

// lookupInt returns the first candidate that resolves to a number.
func lookupInt(p Participant, names ...string) (int, bool) {
	for _, name := range names {
		v, ok := rawAttr(p, name)
		if !ok || v == nil {
			continue
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// lookupString returns the first candidate that resolves to a non-empty string.
func lookupString(p Participant, names ...string) (string, bool) {
	for _, name := range names {
		v, ok := rawAttr(p, name)
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// GetInt reads the first resolvable numeric attribute, or 0.
func GetInt(p Participant, names ...string) int {
	n, _ := lookupInt(p, names...)
	return n
}

// GetString reads the first resolvable string attribute, or "".
func GetString(p Participant, names ...string) string {
	s, _ := lookupString(p, names...)
	return s
}

// SetInt writes value under name. Failures are dropped.
func SetInt(p Participant, name string, value int) {
	if p == nil {
		return
	}
	defer func() { _ = recover() }()
	_ = p.SetAttr(name, value)
}
