package bestiary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when a directory holds no monster definitions.
var ErrEmpty = errors.New("no monsters defined")

// Def defines a monster type's base stats.
type Def struct {
	Name    string `yaml:"name"`
	MaxHP   int    `yaml:"max_hp"`
	Power   int    `yaml:"power"`
	Armor   int    `yaml:"armor"`
	Agility int    `yaml:"agility"`
	EXP     int    `yaml:"exp"`    // awarded per kill
	Weight  int    `yaml:"weight"` // relative encounter frequency, default 1
}

// Roller picks uniform integers in [0, n).
type Roller interface {
	IntN(n int) int
}

// Roster is the set of monsters encounters are drawn from.
type Roster struct {
	defs []Def
}

// yamlFile is the on-disk format: a list of monsters per file.
type yamlFile struct {
	Monsters []Def `yaml:"monsters"`
}

// NewRoster validates defs and returns them as a roster sorted by name.
func NewRoster(defs []Def) (*Roster, error) {
	if len(defs) == 0 {
		return nil, ErrEmpty
	}
	seen := make(map[string]bool, len(defs))
	out := make([]Def, 0, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			return nil, errors.New("monster without a name")
		}
		key := strings.ToLower(d.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate monster %q", d.Name)
		}
		seen[key] = true
		if d.MaxHP <= 0 {
			return nil, fmt.Errorf("monster %q: max_hp must be positive", d.Name)
		}
		if d.Weight <= 0 {
			d.Weight = 1
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return &Roster{defs: out}, nil
}

// LoadFile reads one YAML bestiary file.
func LoadFile(path string) ([]Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bestiary file: %w", err)
	}
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bestiary %s: %w", filepath.Base(path), err)
	}
	return f.Monsters, nil
}

// Load reads all .yaml/.yml files in dir and builds a roster from them.
func Load(dir string) (*Roster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bestiary dir: %w", err)
	}

	var defs []Def
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		fileDefs, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}
	return NewRoster(defs)
}

// Default returns the built-in roster used when no bestiary is on disk.
func Default() *Roster {
	r, _ := NewRoster([]Def{
		{Name: "Rat", MaxHP: 15, Power: 4, Armor: 1, Agility: 12, EXP: 8, Weight: 5},
		{Name: "Slime", MaxHP: 24, Power: 5, Armor: 3, Agility: 6, EXP: 10, Weight: 3},
		{Name: "Wolf", MaxHP: 30, Power: 8, Armor: 2, Agility: 22, EXP: 20, Weight: 2},
	})
	return r
}

// Len returns the number of monster types.
func (r *Roster) Len() int { return len(r.defs) }

// Defs returns a copy of every definition, sorted by name.
func (r *Roster) Defs() []Def {
	out := make([]Def, len(r.defs))
	copy(out, r.defs)
	return out
}

// ByName finds a monster type, case-insensitively.
func (r *Roster) ByName(name string) (Def, bool) {
	for _, d := range r.defs {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Def{}, false
}

// Pick draws a monster type, weighted by Weight.
func (r *Roster) Pick(roller Roller) Def {
	total := 0
	for _, d := range r.defs {
		total += d.Weight
	}
	n := roller.IntN(total)
	for _, d := range r.defs {
		if n < d.Weight {
			return d
		}
		n -= d.Weight
	}
	return r.defs[len(r.defs)-1]
}
