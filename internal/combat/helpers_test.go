package combat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// scriptedRoller replays fixed rolls, repeating the last one.
type scriptedRoller struct {
	rolls []int
	calls int
}

func (r *scriptedRoller) IntN(n int) int {
	i := min(r.calls, len(r.rolls)-1)
	r.calls++
	return r.rolls[i] % n
}

func hero(agility int) Attributes {
	return Attributes{
		AttrName:    "Hero",
		AttrAgility: agility,
		AttrAttack:  10,
		AttrDefense: 2,
		AttrMaxHP:   50,
	}
}

func rat(agility int) Attributes {
	return Attributes{
		AttrName:    "Rat",
		AttrAgility: agility,
		AttrAttack:  6,
		AttrDefense: 1,
		AttrMaxHP:   30,
	}
}

type harness struct {
	t       *testing.T
	engine  *Engine
	clock   *fakeClock
	player  Attributes
	monster Attributes
}

func newHarness(t *testing.T, player, monster Attributes, deps Deps) *harness {
	t.Helper()
	clock := newFakeClock()
	if deps.Clock == nil {
		deps.Clock = clock
	}
	if deps.Logger == nil {
		deps.Logger = zaptest.NewLogger(t)
	}
	e, err := New(player, monster, DefaultConfig(), deps)
	require.NoError(t, err)
	return &harness{t: t, engine: e, clock: clock, player: player, monster: monster}
}

// tickUntil ticks at 50ms intervals until cond holds.
func (h *harness) tickUntil(cond func() bool, limit int) {
	h.t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		h.clock.Advance(50 * time.Millisecond)
		h.engine.Tick()
	}
	require.True(h.t, cond(), "condition not reached after %d ticks", limit)
}

func (h *harness) speed(p Attributes) int {
	return GetInt(p, AttrSpeed)
}

func (h *harness) hp(p Attributes) int {
	return GetInt(p, AttrHP)
}

// runMonsterAction lets a pending monster wind-up and recovery play out.
func (h *harness) runMonsterAction() {
	h.t.Helper()
	require.True(h.t, h.engine.IsMonsterPreparing())
	h.clock.Advance(DefaultConfig().PreActionDelay)
	h.engine.Tick()
	if h.engine.IsOver() {
		return
	}
	h.clock.Advance(DefaultConfig().PostActionDelay)
	h.engine.Tick()
	require.False(h.t, h.engine.IsEnemyActing())
}

func countLines(lines []string, substr string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}
