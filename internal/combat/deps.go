package combat

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Clock supplies monotonic timestamps for phase deadlines.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (systemClock) Now() time.Time { return time.Now() }

// Roller produces uniform integers in [0, n). *rand.Rand satisfies it.
type Roller interface {
	IntN(n int) int
}

type globalRoller struct{}

func (globalRoller) IntN(n int) int { return rand.IntN(n) }

// KillNotifier is told when the player kills the monster.
type KillNotifier interface {
	OnMonsterKilled(monster, player Participant) error
}

// KillNotifierFunc adapts a function to KillNotifier.
type KillNotifierFunc func(monster, player Participant) error

// OnMonsterKilled calls f.
func (f KillNotifierFunc) OnMonsterKilled(monster, player Participant) error {
	return f(monster, player)
}

// NameResolver gives a display name for a participant.
type NameResolver interface {
	DisplayName(p Participant) string
}

// UnknownName is shown for participants without a usable name.
const UnknownName = "Unknown"

type attrNames struct{}

func (attrNames) DisplayName(p Participant) string {
	if s, ok := lookupString(p, nameNames...); ok {
		return s
	}
	return UnknownName
}

// Deps holds the collaborators an Engine calls into. Zero fields get
// defaults: system clock, math/rand/v2, no notifier, Name attribute lookup
// and a nop logger.
type Deps struct {
	Clock    Clock
	Roller   Roller
	Notifier KillNotifier
	Names    NameResolver
	Logger   *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	if d.Roller == nil {
		d.Roller = globalRoller{}
	}
	if d.Names == nil {
		d.Names = attrNames{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

// Config holds the engine's tunables. Zero or negative fields take the
// DefaultConfig value.
type Config struct {
	FillScale       float64
	PreActionDelay  time.Duration
	PostActionDelay time.Duration
	LogCapacity     int
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		FillScale:       DefaultFillScale,
		PreActionDelay:  500 * time.Millisecond,
		PostActionDelay: 500 * time.Millisecond,
		LogCapacity:     DefaultLogCapacity,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FillScale <= 0 {
		c.FillScale = def.FillScale
	}
	if c.PreActionDelay <= 0 {
		c.PreActionDelay = def.PreActionDelay
	}
	if c.PostActionDelay <= 0 {
		c.PostActionDelay = def.PostActionDelay
	}
	if c.LogCapacity <= 0 {
		c.LogCapacity = def.LogCapacity
	}
	return c
}
