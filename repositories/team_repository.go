package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamLabelConflict = errors.New("team label is already taken in this game")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.Team, error)
	AddWin(ctx context.Context, exec SQLExecutor, id int) error
	AddPoints(ctx context.Context, exec SQLExecutor, id int, points float64) error
	UpdateMedal(ctx context.Context, exec SQLExecutor, id int, medal models.MedalColor) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	players, err := team.PlayersJSON()
	if err != nil {
		return fmt.Errorf("failed to encode team roster: %w", err)
	}

	query := `
		INSERT INTO teams (game_id, label, players, wins, points, medal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = exec.QueryRowContext(ctx, query,
		team.GameID,
		team.Label,
		players,
		team.Wins,
		team.Points,
		team.Medal,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "teams_game_id_label_key") {
			return ErrTeamLabelConflict
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.Team, error) {
	query := `
		SELECT id, game_id, label, players, wins, points, medal, created_at
		FROM teams
		WHERE game_id = $1
		ORDER BY label ASC`

	rows, err := exec.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for game %d: %w", gameID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		var players []byte
		if err := rows.Scan(&team.ID, &team.GameID, &team.Label, &players, &team.Wins, &team.Points, &team.Medal, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		if err := team.SetPlayersJSON(players); err != nil {
			return nil, fmt.Errorf("failed to decode roster of team %d: %w", team.ID, err)
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) AddWin(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := exec.ExecContext(ctx, `UPDATE teams SET wins = wins + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to add win to team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AddPoints(ctx context.Context, exec SQLExecutor, id int, points float64) error {
	result, err := exec.ExecContext(ctx, `UPDATE teams SET points = points + $1 WHERE id = $2`, points, id)
	if err != nil {
		return fmt.Errorf("failed to add points to team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateMedal(ctx context.Context, exec SQLExecutor, id int, medal models.MedalColor) error {
	result, err := exec.ExecContext(ctx, `UPDATE teams SET medal = $1 WHERE id = $2`, medal, id)
	if err != nil {
		return fmt.Errorf("failed to update medal of team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
