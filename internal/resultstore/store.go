package resultstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Store is a Postgres-backed append-only record of finished games and
// the running per-agent win/loss tallies derived from them. Grounded
// structurally on internal/repository/postgres's QueryRowContext +
// fmt.Errorf("...: %w", err) idiom (see db.go/game_repo.go); the retry
// wrapper has no teacher precedent (the teacher's own Postgres repos
// never retry) so it is grounded on the wider example pack's
// cenkalti/backoff/v4 dependency instead, replacing run_sh_game.py's
// hand-rolled time.sleep(random.randint(10, 120))-on-failure retry loop
// with a proper bounded exponential backoff.
type Store struct {
	db *sql.DB
}

// Connect opens a connection pool to the result database. Grounded on
// postgres.Connect.
func Connect(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("resultstore: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("resultstore: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func withRetry(ctx context.Context, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	return backoff.Retry(op, b)
}

// RecordGame inserts a finished game and its seated players, and rolls
// the outcome into each player's agent tally, all in one transaction.
// Grounded on run_sh_game.py's push_game_summary_data +
// push_agent_summary_data, merged into a single append-only write since
// this store has no separate agent_summaries collection to race against.
func (s *Store) RecordGame(ctx context.Context, g GameSummary) error {
	err := withRetry(ctx, func() error {
		return s.recordGameOnce(ctx, g)
	})
	if err != nil {
		return &TransientExternalFailure{Op: "RecordGame", Err: err}
	}
	return nil
}

func (s *Store) recordGameOnce(ctx context.Context, g GameSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resultstore: begin tx: %w", err)
	}
	defer tx.Rollback()

	id := g.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO game_summaries (id, num_players, winning_party, win_reason, played_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, g.NumPlayers, g.WinningParty, g.WinReason, g.PlayedAt,
	); err != nil {
		return fmt.Errorf("resultstore: insert game_summaries: %w", err)
	}

	for _, p := range g.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO game_players (game_id, seat, agent_name, role) VALUES ($1, $2, $3, $4)`,
			id, p.Seat, p.AgentName, p.Role,
		); err != nil {
			return fmt.Errorf("resultstore: insert game_players: %w", err)
		}

		won := partyForRole(p.Role) == g.WinningParty
		if err := upsertAgentTally(ctx, tx, p.AgentName, g.NumPlayers, g.WinReason, won); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resultstore: commit: %w", err)
	}
	return nil
}

func partyForRole(role string) string {
	if role == "liberal" {
		return "liberal"
	}
	return "fascist"
}

// upsertAgentTally increments win/loss counters for an agent name,
// matching push_agent_summary_data's $setOnInsert + $inc upsert.
func upsertAgentTally(ctx context.Context, tx *sql.Tx, agentName string, numPlayers int, reason string, won bool) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO agent_tallies (agent_name, total_wins, total_losses, win_reasons, loss_reasons, by_count_wins, by_count_losses)
		 VALUES ($1, 0, 0, '{}'::jsonb, '{}'::jsonb, '{}'::jsonb, '{}'::jsonb)
		 ON CONFLICT (agent_name) DO NOTHING`,
		agentName,
	)
	if err != nil {
		return fmt.Errorf("resultstore: ensure agent_tallies row: %w", err)
	}

	winCol := "total_wins"
	reasonCol, countCol := "win_reasons", "by_count_wins"
	if !won {
		winCol = "total_losses"
		reasonCol, countCol = "loss_reasons", "by_count_losses"
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`UPDATE agent_tallies SET
		   %s = %s + 1,
		   %s = jsonb_set(%s, ARRAY[$2], (COALESCE(%s->>$2, '0')::int + 1)::text::jsonb, true),
		   %s = jsonb_set(%s, ARRAY[$3], (COALESCE(%s->>$3, '0')::int + 1)::text::jsonb, true)
		 WHERE agent_name = $1`,
		winCol, winCol, reasonCol, reasonCol, reasonCol, countCol, countCol, countCol,
	), agentName, reason, fmt.Sprint(numPlayers))
	if err != nil {
		return fmt.Errorf("resultstore: update agent_tallies: %w", err)
	}
	return nil
}
