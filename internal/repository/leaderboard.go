package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omok-labs/gomoku-backend/internal/entity"
)

type LeaderboardRepository interface {
	RecordWin(ctx context.Context, playerID string) error
	TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	conn *sql.DB
}

func NewLeaderboardRepository(conn *sql.DB) LeaderboardRepository {
	return &leaderboardRepository{
		conn: conn,
	}
}

func (that *leaderboardRepository) RecordWin(ctx context.Context, playerID string) error {
	query := `INSERT INTO leaderboard (player_id, wins) VALUES (?, 1)
		ON CONFLICT(player_id) DO UPDATE SET wins = wins + 1`

	if _, err := that.conn.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("can't record win: %w", err)
	}

	return nil
}

func (that *leaderboardRepository) TopPlayers(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	query := `SELECT player_id, wins FROM leaderboard ORDER BY wins DESC, player_id ASC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entity.LeaderboardEntry
	for rows.Next() {
		var entry entity.LeaderboardEntry
		if err = rows.Scan(&entry.PlayerID, &entry.Wins); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read leaderboard rows: %w", err)
	}

	return entries, nil
}
