package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"happy-arena/internal/combat"
	"happy-arena/internal/game"
)

// ResultRepository stores finished duels. It satisfies game.ResultRecorder
// and quest.KillCounter.
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResult inserts one row per duel. Saving the same duel twice is a no-op.
func (r *ResultRepository) SaveResult(ctx context.Context, res game.Result) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO duel_results (id, hero, monster, outcome, turns, hero_hp, monster_hp, exp, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		res.ID, res.Hero, res.Monster, res.Outcome.String(),
		res.Turns, res.HeroHP, res.MonsterHP, res.EXP, res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("saving duel %s: %w", res.ID, err)
	}
	return nil
}

// KillCounts returns the hero's victories grouped by monster kind.
func (r *ResultRepository) KillCounts(ctx context.Context, hero string) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT monster, COUNT(*)
		 FROM duel_results
		 WHERE hero = $1 AND outcome = $2
		 GROUP BY monster`,
		hero, combat.OutcomeVictory.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying kills for %q: %w", hero, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			monster string
			n       int
		)
		if err := rows.Scan(&monster, &n); err != nil {
			return nil, fmt.Errorf("scanning kill row: %w", err)
		}
		counts[monster] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kill rows: %w", err)
	}
	return counts, nil
}
