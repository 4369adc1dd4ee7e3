package game

import (
	"context"
	"time"

	"github.com/google/uuid"

	"happy-arena/internal/combat"
)

// DuelState is the snapshot sent to the renderer each tick.
type DuelState struct {
	combat.Snapshot
	Tick      uint64
	HeroColor int
	Closing   bool // the result screen is showing and the duel will end
}

// RenderChan is the per-session channel that receives duel snapshots.
type RenderChan chan DuelState

// Result is the record of a finished duel.
type Result struct {
	ID         uuid.UUID
	Hero       string
	Monster    string
	Outcome    combat.Outcome
	Turns      int
	HeroHP     int
	MonsterHP  int
	EXP        int // awarded on victory only
	FinishedAt time.Time
}

// ResultRecorder persists finished duels.
type ResultRecorder interface {
	SaveResult(ctx context.Context, r Result) error
}
