package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNew_RejectsNilParticipants(t *testing.T) {
	_, err := New(nil, rat(10), DefaultConfig(), Deps{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(hero(10), nil, DefaultConfig(), Deps{})
	require.ErrorIs(t, err, ErrNilParticipant)
}

func TestNew_ZeroConfigKeepsMonsterDelays(t *testing.T) {
	clock := newFakeClock()
	player := hero(10)
	e, err := New(player, rat(120), Config{}, Deps{Clock: clock, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), e.cfg)

	e.Tick()
	require.True(t, e.IsMonsterPreparing())
	e.Tick()
	assert.True(t, e.IsMonsterPreparing(), "no strike without the wind-up elapsing")
	assert.Equal(t, 50, GetInt(player, AttrHP))

	clock.Advance(DefaultConfig().PreActionDelay)
	e.Tick()
	assert.Less(t, GetInt(player, AttrHP), 50)
	assert.True(t, e.IsEnemyActing(), "recovery follows the strike")
}

func TestNew_SeedsGaugeAndHP(t *testing.T) {
	player := hero(130)
	monster := rat(12)
	monster[AttrHP] = 20

	h := newHarness(t, player, monster, Deps{})
	assert.Equal(t, GaugeMax, h.speed(player), "gauge seed is clamped")
	assert.Equal(t, 12, h.speed(monster))
	assert.Equal(t, 50, h.hp(player), "unset HP defaults to maximum")
	assert.Equal(t, 20, h.hp(monster), "existing HP is kept")

	assert.Equal(t, 1, h.engine.Turn())
	assert.False(t, h.engine.IsOver())
	assert.Equal(t, OutcomeNone, h.engine.Outcome())
	assert.Equal(t, []string{"A wild Rat appears!"}, h.engine.Log())
}

func TestScenario_FastPlayerAnnouncedOnce(t *testing.T) {
	h := newHarness(t, hero(30), rat(10), Deps{})
	h.tickUntil(h.engine.IsPlayerTurnReady, 100)

	assert.False(t, h.engine.IsEnemyActing())
	assert.Less(t, h.speed(h.monster), GaugeMax)

	monsterSpeed := h.speed(h.monster)
	for i := 0; i < 50; i++ {
		h.clock.Advance(50 * time.Millisecond)
		h.engine.Tick()
	}
	assert.Equal(t, 1, countLines(h.engine.Log(), "Your turn"))
	assert.Equal(t, monsterSpeed, h.speed(h.monster), "gauges stay frozen while the player decides")
	assert.True(t, h.engine.IsPlayerTurnReady())
}

func TestTieBreak_EqualAgilityFavorsPlayer(t *testing.T) {
	h := newHarness(t, hero(100), rat(100), Deps{})
	h.engine.Tick()

	assert.True(t, h.engine.IsPlayerTurnReady())
	assert.False(t, h.engine.IsEnemyActing())
	assert.Equal(t, GaugeMax, h.speed(h.monster), "loser keeps its full gauge")

	require.True(t, h.engine.Attack())
	h.engine.Tick()
	assert.True(t, h.engine.IsMonsterPreparing(), "monster acts at its next opportunity")
}

func TestTieBreak_HigherAgilityActsFirst(t *testing.T) {
	h := newHarness(t, hero(100), rat(120), Deps{})
	h.engine.Tick()

	require.True(t, h.engine.IsMonsterPreparing())
	assert.False(t, h.engine.IsPlayerTurnReady())
	assert.Equal(t, GaugeMax, h.speed(h.player), "loser keeps its full gauge")

	h.runMonsterAction()
	assert.Equal(t, 46, h.hp(h.player))
	assert.Equal(t, 1, h.engine.Turn(), "player has not acted yet")

	h.engine.Tick()
	assert.True(t, h.engine.IsPlayerTurnReady())
	assert.Equal(t, 10, h.speed(h.monster), "monster refills from zero")

	require.True(t, h.engine.Attack())
	assert.Equal(t, 2, h.engine.Turn())
	assert.Equal(t, 1, countLines(h.engine.Log(), "--- Turn 2 ---"))
}

func TestPhaseBlocking(t *testing.T) {
	h := newHarness(t, hero(100), rat(120), Deps{})
	h.engine.Tick()
	require.True(t, h.engine.IsMonsterPreparing())

	logLen := len(h.engine.Log())
	for i := 0; i < 9; i++ {
		h.clock.Advance(50 * time.Millisecond)
		h.engine.Tick()
		assert.Equal(t, GaugeMax, h.speed(h.player))
		assert.Equal(t, GaugeMax, h.speed(h.monster))
		assert.False(t, h.engine.Attack())
		assert.False(t, h.engine.Flee())
	}
	assert.Len(t, h.engine.Log(), logLen)
	assert.Equal(t, 50, h.hp(h.player), "strike waits for the deadline")

	h.clock.Advance(50 * time.Millisecond)
	h.engine.Tick()
	require.True(t, h.engine.IsEnemyActing())
	require.False(t, h.engine.IsMonsterPreparing(), "now recovering")
	assert.Equal(t, 46, h.hp(h.player))

	for i := 0; i < 9; i++ {
		h.clock.Advance(50 * time.Millisecond)
		h.engine.Tick()
		assert.Equal(t, GaugeMax, h.speed(h.player))
		assert.Equal(t, 0, h.speed(h.monster))
		assert.False(t, h.engine.Defend())
		assert.False(t, h.engine.Cast())
	}

	h.clock.Advance(50 * time.Millisecond)
	h.engine.Tick()
	assert.False(t, h.engine.IsEnemyActing())
}

func TestTurn_ClosesOnlyAfterBothSidesAct(t *testing.T) {
	h := newHarness(t, hero(100), rat(1), Deps{})

	playerActions := 0
	for i := 0; i < 500 && h.engine.Turn() == 1; i++ {
		h.clock.Advance(50 * time.Millisecond)
		h.engine.Tick()
		if h.engine.IsPlayerTurnReady() {
			require.True(t, h.engine.Defend())
			playerActions++
		}
		if h.engine.Turn() == 1 && !h.engine.IsEnemyActing() {
			assert.False(t, h.engine.monsterActed && h.engine.playerActed,
				"a turn with both sides acted closes once the monster recovers")
		}
	}

	require.Equal(t, 2, h.engine.Turn())
	assert.Greater(t, playerActions, 1, "the faster side acts several times in one turn")
	assert.Equal(t, 1, countLines(h.engine.Log(), "Your turn"))
	assert.False(t, h.engine.playerActed)
	assert.False(t, h.engine.monsterActed)
}

func TestGaugesStayInBounds(t *testing.T) {
	h := newHarness(t, hero(45), rat(38), Deps{Roller: &scriptedRoller{rolls: []int{99}}})
	h.player[AttrMaxHP] = 1000
	h.player[AttrHP] = 1000
	h.monster[AttrMaxHP] = 1000
	h.monster[AttrHP] = 1000

	for i := 0; i < 3000 && !h.engine.IsOver(); i++ {
		h.clock.Advance(20 * time.Millisecond)
		h.engine.Tick()
		if h.engine.IsPlayerTurnReady() {
			switch i % 3 {
			case 0:
				h.engine.Attack()
			case 1:
				h.engine.Defend()
			default:
				h.engine.Flee()
			}
		}
		for _, p := range []Attributes{h.player, h.monster} {
			s := h.speed(p)
			require.GreaterOrEqual(t, s, 0)
			require.LessOrEqual(t, s, GaugeMax)
		}
	}
	assert.Greater(t, h.engine.Turn(), 5)
}

func TestTick_NoOpAfterCombatOver(t *testing.T) {
	player := hero(1)
	player[AttrMaxHP] = 4
	h := newHarness(t, player, rat(100), Deps{})

	h.engine.Tick()
	h.runMonsterAction()
	require.True(t, h.engine.IsOver())
	assert.Equal(t, OutcomeDefeat, h.engine.Outcome())
	assert.False(t, h.engine.IsEnemyActing(), "defeat returns the phase to idle")
	assert.Equal(t, 1, countLines(h.engine.Log(), "Defeat"))

	before := h.engine.Snapshot(0)
	for i := 0; i < 20; i++ {
		h.clock.Advance(time.Second)
		h.engine.Tick()
	}
	assert.Equal(t, before, h.engine.Snapshot(0))
	assert.False(t, h.engine.Attack())
	assert.False(t, h.engine.Flee())
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, hero(100), rat(10), Deps{})
	h.engine.Tick()
	require.True(t, h.engine.Defend())

	snap := h.engine.Snapshot(1)
	assert.Equal(t, h.engine.ID().String(), snap.ID)
	assert.Equal(t, "Hero", snap.Player.Name)
	assert.Equal(t, 50, snap.Player.MaxHP)
	assert.Equal(t, 25, snap.Player.TempDefense)
	assert.Equal(t, 0, snap.Player.Speed)
	assert.Equal(t, "Rat", snap.Monster.Name)
	assert.Len(t, snap.Log, 1)
	assert.Contains(t, snap.Log[0], "braces")
}
