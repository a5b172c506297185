package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int, winner models.MatchWinner, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, game_id, round, number, team_a_id, team_b_id, score_a, score_b, winner, status, role, is_bye, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(game_id, round, number, team_a_id, team_b_id, score_a, score_b, winner, status, role, is_bye)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.GameID,
		match.Round,
		match.Number,
		match.TeamAID,
		match.TeamBID,
		match.ScoreA,
		match.ScoreB,
		match.Winner,
		match.Status,
		match.Role,
		match.IsBye,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	var m models.Match
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.GameID, &m.Round, &m.Number,
		&m.TeamAID, &m.TeamBID, &m.ScoreA, &m.ScoreB,
		&m.Winner, &m.Status, &m.Role, &m.IsBye, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}
	return &m, nil
}

func (r *postgresMatchRepository) ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE game_id = $1 ORDER BY round ASC, number ASC`

	rows, err := exec.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for game %d: %w", gameID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.GameID, &m.Round, &m.Number,
			&m.TeamAID, &m.TeamBID, &m.ScoreA, &m.ScoreB,
			&m.Winner, &m.Status, &m.Role, &m.IsBye, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB int, winner models.MatchWinner, status models.MatchStatus) error {
	// The status guard makes result submission first-wins: a second
	// submission for an already finished match updates zero rows.
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, winner = $3, status = $4
		WHERE id = $5 AND status <> 'finished'`

	result, err := exec.ExecContext(ctx, query, scoreA, scoreB, winner, status, id)
	if err != nil {
		return fmt.Errorf("failed to update result of match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
