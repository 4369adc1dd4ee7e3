package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"happy-arena/internal/combat"
	"happy-arena/internal/game"
)

type ResultRepositorySuite struct {
	suite.Suite
	container testcontainers.Container
	db        *DB
	repo      *ResultRepository
}

func TestResultRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(ResultRepositorySuite))
}

func (s *ResultRepositorySuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err, "starting postgres container")
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.Require().NoError(RunMigrations(ctx, dsn))
	s.Require().NoError(RunMigrations(ctx, dsn), "migrations are idempotent")

	s.db, err = New(ctx, dsn)
	s.Require().NoError(err)
	s.repo = NewResultRepository(s.db.Pool())
}

func (s *ResultRepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *ResultRepositorySuite) SetupTest() {
	_, err := s.db.Pool().Exec(context.Background(), "TRUNCATE duel_results")
	s.Require().NoError(err)
}

func result(hero, monster string, outcome combat.Outcome) game.Result {
	return game.Result{
		ID:         uuid.New(),
		Hero:       hero,
		Monster:    monster,
		Outcome:    outcome,
		Turns:      3,
		HeroHP:     20,
		EXP:        5,
		FinishedAt: time.Now().UTC(),
	}
}

func (s *ResultRepositorySuite) TestKillCountsOnlyCountVictories() {
	ctx := context.Background()
	for _, r := range []game.Result{
		result("alice", "Rat", combat.OutcomeVictory),
		result("alice", "Rat", combat.OutcomeVictory),
		result("alice", "Wolf", combat.OutcomeVictory),
		result("alice", "Wolf", combat.OutcomeDefeat),
		result("alice", "Slime", combat.OutcomeEscaped),
		result("bob", "Rat", combat.OutcomeVictory),
	} {
		s.Require().NoError(s.repo.SaveResult(ctx, r))
	}

	counts, err := s.repo.KillCounts(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(map[string]int{"Rat": 2, "Wolf": 1}, counts)
}

func (s *ResultRepositorySuite) TestSaveResultIsIdempotent() {
	ctx := context.Background()
	r := result("alice", "Rat", combat.OutcomeVictory)
	s.Require().NoError(s.repo.SaveResult(ctx, r))
	s.Require().NoError(s.repo.SaveResult(ctx, r))

	counts, err := s.repo.KillCounts(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, counts["Rat"])
}

func (s *ResultRepositorySuite) TestKillCountsUnknownHero() {
	counts, err := s.repo.KillCounts(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Empty(counts)
}
