package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var (
	ErrStatsNotFound     = errors.New("player stats not found")
	ErrStatsKeyMissing   = errors.New("player credit has neither user id nor contact handle")
	ErrStatsInvalidDelta = errors.New("invalid stats delta")
)

// PlayerCredit is one participant's increment after a completed game.
// Won extends the win streak; a credit without it resets the streak.
type PlayerCredit struct {
	UserID     *int
	Contact    *string
	Points     float64
	TeamPoints float64
	Won        bool
}

type StatsRepository interface {
	// Credit upserts a participant's running totals. The row is keyed by
	// the registered user id when present, otherwise by the contact
	// handle of the unregistered player.
	Credit(ctx context.Context, exec SQLExecutor, credit PlayerCredit) error
	GetByUserID(ctx context.Context, userID int) (*models.PlayerStats, error)
	GetByContact(ctx context.Context, contact string) (*models.PlayerStats, error)
}

type postgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) Credit(ctx context.Context, exec SQLExecutor, credit PlayerCredit) error {
	if credit.UserID == nil && credit.Contact == nil {
		return ErrStatsKeyMissing
	}

	wins := 0
	if credit.Won {
		wins = 1
	}

	// win_streak either extends or resets depending on the outcome; the
	// CASE keeps the whole update a single atomic statement.
	var query string
	var keyArg interface{}
	if credit.UserID != nil {
		query = `
			INSERT INTO player_stats (user_id, games_played, wins, win_streak, points, team_points, updated_at)
			VALUES ($1, 1, $2, $2, $3, $4, now())
			ON CONFLICT (user_id) DO UPDATE SET
				games_played = player_stats.games_played + 1,
				wins         = player_stats.wins + $2,
				win_streak   = CASE WHEN $2 > 0 THEN player_stats.win_streak + 1 ELSE 0 END,
				points       = player_stats.points + $3,
				team_points  = player_stats.team_points + $4,
				updated_at   = now()`
		keyArg = *credit.UserID
	} else {
		query = `
			INSERT INTO player_stats (contact, games_played, wins, win_streak, points, team_points, updated_at)
			VALUES ($1, 1, $2, $2, $3, $4, now())
			ON CONFLICT (contact) DO UPDATE SET
				games_played = player_stats.games_played + 1,
				wins         = player_stats.wins + $2,
				win_streak   = CASE WHEN $2 > 0 THEN player_stats.win_streak + 1 ELSE 0 END,
				points       = player_stats.points + $3,
				team_points  = player_stats.team_points + $4,
				updated_at   = now()`
		keyArg = *credit.Contact
	}

	if _, err := exec.ExecContext(ctx, query, keyArg, wins, credit.Points, credit.TeamPoints); err != nil {
		return fmt.Errorf("failed to credit player stats: %w", err)
	}
	return nil
}

func (r *postgresStatsRepository) GetByUserID(ctx context.Context, userID int) (*models.PlayerStats, error) {
	query := `
		SELECT id, user_id, contact, games_played, wins, win_streak, points, team_points, updated_at
		FROM player_stats WHERE user_id = $1`
	return r.scanStats(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresStatsRepository) GetByContact(ctx context.Context, contact string) (*models.PlayerStats, error) {
	query := `
		SELECT id, user_id, contact, games_played, wins, win_streak, points, team_points, updated_at
		FROM player_stats WHERE contact = $1`
	return r.scanStats(r.db.QueryRowContext(ctx, query, contact))
}

func (r *postgresStatsRepository) scanStats(row *sql.Row) (*models.PlayerStats, error) {
	var s models.PlayerStats
	err := row.Scan(&s.ID, &s.UserID, &s.Contact, &s.GamesPlayed, &s.Wins, &s.WinStreak, &s.Points, &s.TeamPoints, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to scan player stats: %w", err)
	}
	return &s, nil
}
