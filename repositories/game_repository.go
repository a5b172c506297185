package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameRoundConflict = errors.New("game round was advanced concurrently")
	ErrGamePointsDone    = errors.New("game points were already assigned")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error)
	ListByRoom(ctx context.Context, roomID int) ([]*models.Game, error)
	ListStaleLive(ctx context.Context, olderThan time.Time) ([]*models.Game, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GameStatus) error
	// AdvanceRound moves current_round from fromRound to toRound with a
	// compare-and-set, so two concurrent submissions that both observed a
	// complete round cannot both generate the next one.
	AdvanceRound(ctx context.Context, exec SQLExecutor, id, fromRound, toRound int) error
	SetDominantWinner(ctx context.Context, exec SQLExecutor, id int, label *string) error
	SetMedals(ctx context.Context, exec SQLExecutor, id int, medals *models.MedalSummary) error
	// MarkPointsAssigned flips the idempotence guard; it fails with
	// ErrGamePointsDone when the flag was already set.
	MarkPointsAssigned(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, room_id, format, status, current_round, points_assigned, dominant_winner, medals, created_at`

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	query := `
		INSERT INTO games (room_id, format, status, current_round, points_assigned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		game.RoomID,
		game.Format,
		game.Status,
		game.CurrentRound,
		game.PointsAssigned,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return scanGame(exec.QueryRowContext(ctx, query, id))
}

func (r *postgresGameRepository) ListByRoom(ctx context.Context, roomID int) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE room_id = $1 ORDER BY created_at DESC`
	return r.queryGames(ctx, query, roomID)
}

func (r *postgresGameRepository) ListStaleLive(ctx context.Context, olderThan time.Time) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE status = 'live' AND created_at < $1 ORDER BY id ASC`
	return r.queryGames(ctx, query, olderThan)
}

func (r *postgresGameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		game, err := scanGameRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GameStatus) error {
	result, err := exec.ExecContext(ctx, `UPDATE games SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) AdvanceRound(ctx context.Context, exec SQLExecutor, id, fromRound, toRound int) error {
	query := `UPDATE games SET current_round = $1 WHERE id = $2 AND current_round = $3`
	result, err := exec.ExecContext(ctx, query, toRound, id, fromRound)
	if err != nil {
		return fmt.Errorf("failed to advance round of game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameRoundConflict)
}

func (r *postgresGameRepository) SetDominantWinner(ctx context.Context, exec SQLExecutor, id int, label *string) error {
	result, err := exec.ExecContext(ctx, `UPDATE games SET dominant_winner = $1 WHERE id = $2`, label, id)
	if err != nil {
		return fmt.Errorf("failed to set dominant winner of game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) SetMedals(ctx context.Context, exec SQLExecutor, id int, medals *models.MedalSummary) error {
	encoded, err := json.Marshal(medals)
	if err != nil {
		return fmt.Errorf("failed to encode medals of game %d: %w", id, err)
	}
	result, err := exec.ExecContext(ctx, `UPDATE games SET medals = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to set medals of game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) MarkPointsAssigned(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE games SET points_assigned = TRUE WHERE id = $1 AND points_assigned = FALSE`
	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark points assigned for game %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrGamePointsDone)
}

func scanGame(row *sql.Row) (*models.Game, error) {
	var g models.Game
	var medals []byte
	err := row.Scan(&g.ID, &g.RoomID, &g.Format, &g.Status, &g.CurrentRound, &g.PointsAssigned, &g.DominantWinner, &medals, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	if err := decodeMedals(&g, medals); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanGameRow(rows *sql.Rows) (*models.Game, error) {
	var g models.Game
	var medals []byte
	err := rows.Scan(&g.ID, &g.RoomID, &g.Format, &g.Status, &g.CurrentRound, &g.PointsAssigned, &g.DominantWinner, &medals, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan game row: %w", err)
	}
	if err := decodeMedals(&g, medals); err != nil {
		return nil, err
	}
	return &g, nil
}

func decodeMedals(g *models.Game, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var summary models.MedalSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return fmt.Errorf("failed to decode medals of game %d: %w", g.ID, err)
	}
	g.Medals = &summary
	return nil
}
