package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/vamshigadde09/PickleMatch-sub001/brackets"
	"github.com/vamshigadde09/PickleMatch-sub001/models"
	"github.com/vamshigadde09/PickleMatch-sub001/repositories"
	"golang.org/x/sync/errgroup"
)

// staleGameAge is how long a live game may sit untouched before the
// sweeper force-completes it.
const staleGameAge = 24 * time.Hour

type PlayerInput struct {
	UserID  *int    `json:"user_id,omitempty"`
	Name    string  `json:"name"`
	Contact *string `json:"contact,omitempty"`
}

type TeamInput struct {
	Players []PlayerInput `json:"players"`
}

type StartGameInput struct {
	RoomID int               `json:"room_id"`
	Format models.GameFormat `json:"format"`
	Teams  []TeamInput       `json:"teams"`
}

// SubmitResultOutput reports everything a result submission caused: the
// finished match, any next-round matches, and the terminal outcome when
// the submission completed the game.
type SubmitResultOutput struct {
	Match         *models.Match          `json:"match"`
	NewMatches    []*models.Match        `json:"new_matches,omitempty"`
	RoundAdvanced bool                   `json:"round_advanced"`
	GameCompleted bool                   `json:"game_completed"`
	Medals        *models.MedalSummary   `json:"medals,omitempty"`
	Points        *brackets.PointsReport `json:"points,omitempty"`
}

type GameService interface {
	StartGame(ctx context.Context, hostID int, input StartGameInput) (*models.Game, error)
	GetGame(ctx context.Context, gameID int) (*models.Game, error)
	ListRoomGames(ctx context.Context, roomID int) ([]*models.Game, error)
	SubmitResult(ctx context.Context, matchID, scoreA, scoreB int) (*SubmitResultOutput, error)
	FinalizeOutcome(ctx context.Context, gameID int) (*models.MedalSummary, error)
	DistributePoints(ctx context.Context, gameID int) (*brackets.PointsReport, error)
	CompleteStaleGames(ctx context.Context) error
}

type gameService struct {
	db        *sql.DB
	gameRepo  repositories.GameRepository
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	roomRepo  repositories.RoomRepository
	statsRepo repositories.StatsRepository
	hub       *brackets.Hub
	logger    *slog.Logger
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	roomRepo repositories.RoomRepository,
	statsRepo repositories.StatsRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:        db,
		gameRepo:  gameRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		roomRepo:  roomRepo,
		statsRepo: statsRepo,
		hub:       hub,
		logger:    logger,
	}
}

// StartGame snapshots the submitted rosters into teams, validates them
// against the chosen format and persists the game together with its
// round-1 matches. Validation fails before anything is written.
func (s *gameService) StartGame(ctx context.Context, hostID int, input StartGameInput) (*models.Game, error) {
	if _, err := s.roomRepo.GetByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", input.RoomID, err)
	}

	if err := brackets.ValidateTeams(input.Format, len(input.Teams)); err != nil {
		switch {
		case errors.Is(err, brackets.ErrUnknownFormat):
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
		default:
			return nil, fmt.Errorf("%w: %v", ErrTeamCountInvalid, err)
		}
	}

	teams := make([]*models.Team, 0, len(input.Teams))
	for i, ti := range input.Teams {
		if len(ti.Players) == 0 {
			return nil, ErrTeamRosterRequired
		}
		team := &models.Team{
			Label: teamLabel(i),
			Medal: models.MedalNone,
		}
		for _, p := range ti.Players {
			team.Players = append(team.Players, models.TeamPlayer{
				UserID:  p.UserID,
				Name:    p.Name,
				Contact: p.Contact,
			})
		}
		teams = append(teams, team)
	}

	game := &models.Game{
		RoomID:       input.RoomID,
		Format:       input.Format,
		Status:       models.GameLive,
		CurrentRound: 1,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.gameRepo.Create(ctx, tx, game); err != nil {
			return err
		}
		for _, team := range teams {
			team.GameID = game.ID
			if err := s.teamRepo.Create(ctx, tx, team); err != nil {
				return err
			}
		}

		matches, err := brackets.FirstRound(game.Format, game.ID, teams)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := s.createMatch(ctx, tx, m); err != nil {
				return err
			}
			game.Matches = append(game.Matches, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, t := range teams {
		game.Teams = append(game.Teams, *t)
	}
	return game, nil
}

// GetGame loads a game with its team snapshot and full match history,
// fetching both in parallel.
func (s *gameService) GetGame(ctx context.Context, gameID int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}

	var teams []*models.Team
	var matches []*models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByGame(gCtx, s.db, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByGame(gCtx, s.db, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load game %d data: %w", gameID, err)
	}

	for _, t := range teams {
		game.Teams = append(game.Teams, *t)
	}
	for _, m := range matches {
		game.Matches = append(game.Matches, *m)
	}
	return game, nil
}

func (s *gameService) ListRoomGames(ctx context.Context, roomID int) ([]*models.Game, error) {
	games, err := s.gameRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games of room %d: %w", roomID, err)
	}
	return games, nil
}

// SubmitResult applies one match result as a single atomic unit: record
// the score, credit the winning team, and, when the round is done,
// either generate the next round or finish the game, assign medals and
// distribute points. The round transition is guarded by a compare-and-set
// on the game's current round, so two concurrent submissions cannot both
// generate the next round.
func (s *gameService) SubmitResult(ctx context.Context, matchID, scoreA, scoreB int) (*SubmitResultOutput, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrScoresNegative
	}
	if scoreA == scoreB {
		return nil, ErrScoresEqual
	}

	out := &SubmitResultOutput{}
	var report *brackets.PointsReport
	var roomID int

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByID(ctx, tx, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.Finished() {
			return ErrMatchAlreadyFinished
		}

		game, err := s.gameRepo.GetByID(ctx, tx, match.GameID)
		if err != nil {
			return err
		}
		if game.Status == models.GameCompleted {
			return ErrGameAlreadyCompleted
		}
		roomID = game.RoomID

		winner := models.WinnerA
		if scoreB > scoreA {
			winner = models.WinnerB
		}
		if err := s.matchRepo.UpdateResult(ctx, tx, matchID, scoreA, scoreB, winner, models.MatchFinished); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchAlreadyFinished
			}
			return err
		}

		match.ScoreA, match.ScoreB = &scoreA, &scoreB
		match.Winner = winner
		match.Status = models.MatchFinished
		out.Match = match

		teams, err := s.teamRepo.ListByGame(ctx, tx, game.ID)
		if err != nil {
			return err
		}
		matches, err := s.matchRepo.ListByGame(ctx, tx, game.ID)
		if err != nil {
			return err
		}
		// The list was read through the same transaction, so it already
		// carries the update; attach teams and substitute our copy to be
		// safe against driver-level snapshot quirks.
		for i, m := range matches {
			if m.ID == matchID {
				matches[i] = match
			}
		}
		if err := brackets.AttachTeams(teams, matches); err != nil {
			return err
		}

		winnerTeam := match.TeamA
		if winner == models.WinnerB {
			winnerTeam = match.TeamB
		}
		if winnerTeam != nil && winnerTeam.ID != 0 {
			if err := s.teamRepo.AddWin(ctx, tx, winnerTeam.ID); err != nil {
				return err
			}
			winnerTeam.Wins++
		}

		if !brackets.RoundComplete(matches, game.CurrentRound) {
			return nil
		}

		next, completed, err := brackets.NextRound(game, teams, matches)
		if err != nil {
			return err
		}

		if completed {
			medals, pointsReport, err := s.finalize(ctx, tx, game, teams, matches)
			if err != nil {
				return err
			}
			out.GameCompleted = true
			out.Medals = medals
			out.Points = pointsReport
			report = pointsReport
			return nil
		}

		if err := s.gameRepo.AdvanceRound(ctx, tx, game.ID, game.CurrentRound, game.CurrentRound+1); err != nil {
			return err
		}
		if game.DominantWinner != nil {
			if err := s.gameRepo.SetDominantWinner(ctx, tx, game.ID, game.DominantWinner); err != nil {
				return err
			}
		}
		for _, m := range next {
			if err := s.createMatch(ctx, tx, m); err != nil {
				return err
			}
		}
		out.NewMatches = next
		out.RoundAdvanced = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Player crediting happens after commit: a failure for one
	// participant is logged for reconciliation and never rolls back the
	// completed game.
	if report != nil {
		s.creditParticipants(ctx, report)
	}
	s.broadcastResult(roomID, out)

	return out, nil
}

// finalize runs the outcome calculator and the points distributor inside
// the caller's transaction. Team-level effects and the idempotence flag
// commit atomically with the game's terminal status; per-player credits
// are returned for the caller to apply after commit.
func (s *gameService) finalize(ctx context.Context, exec repositories.SQLExecutor, game *models.Game, teams []*models.Team, matches []*models.Match) (*models.MedalSummary, *brackets.PointsReport, error) {
	medals, err := brackets.ComputeOutcome(game, teams, matches)
	if err != nil {
		return nil, nil, err
	}

	for _, team := range teams {
		if team.Medal != models.MedalNone && team.ID != 0 {
			if err := s.teamRepo.UpdateMedal(ctx, exec, team.ID, team.Medal); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := s.gameRepo.SetMedals(ctx, exec, game.ID, medals); err != nil {
		return nil, nil, err
	}
	if err := s.gameRepo.UpdateStatus(ctx, exec, game.ID, models.GameCompleted); err != nil {
		return nil, nil, err
	}
	game.Status = models.GameCompleted
	game.Medals = medals

	report, err := s.applyPoints(ctx, exec, game, teams)
	if err != nil {
		return nil, nil, err
	}
	return medals, report, nil
}

// applyPoints distributes a completed game's points with the flag flip
// first: no team credit is written unless this call won the
// points_assigned compare-and-set, so a concurrent distribution that
// loses the race commits nothing. The losing call returns an empty
// report. Per-player credits are left for the caller to apply after
// commit.
func (s *gameService) applyPoints(ctx context.Context, exec repositories.SQLExecutor, game *models.Game, teams []*models.Team) (*brackets.PointsReport, error) {
	report := brackets.DistributePoints(game, teams)
	if len(report.Players) == 0 && len(report.Teams) == 0 {
		return report, nil
	}

	if err := s.gameRepo.MarkPointsAssigned(ctx, exec, game.ID); err != nil {
		if errors.Is(err, repositories.ErrGamePointsDone) {
			return &brackets.PointsReport{}, nil
		}
		return nil, err
	}
	game.PointsAssigned = true

	for _, td := range report.Teams {
		for _, team := range teams {
			if team.Label == td.Label && team.ID != 0 {
				if err := s.teamRepo.AddPoints(ctx, exec, team.ID, td.Points); err != nil {
					return nil, err
				}
			}
		}
	}
	return report, nil
}

// FinalizeOutcome computes and persists the medal assignment of a game
// whose final round has finished. Calling it again returns the stored
// record.
func (s *gameService) FinalizeOutcome(ctx context.Context, gameID int) (*models.MedalSummary, error) {
	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.Medals != nil {
		return game.Medals, nil
	}

	var medals *models.MedalSummary
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		teams, err := s.teamRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		matches, err := s.matchRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if err := brackets.AttachTeams(teams, matches); err != nil {
			return err
		}

		if game.Status != models.GameCompleted {
			if !brackets.RoundComplete(matches, game.CurrentRound) {
				return ErrGameNotCompleted
			}
			_, completed, err := brackets.NextRound(game, teams, matches)
			if err != nil {
				return err
			}
			if !completed {
				return ErrGameNotCompleted
			}
		}

		medals, err = brackets.ComputeOutcome(game, teams, matches)
		if err != nil {
			return err
		}
		for _, team := range teams {
			if team.Medal != models.MedalNone && team.ID != 0 {
				if err := s.teamRepo.UpdateMedal(ctx, tx, team.ID, team.Medal); err != nil {
					return err
				}
			}
		}
		if err := s.gameRepo.SetMedals(ctx, tx, gameID, medals); err != nil {
			return err
		}
		return s.gameRepo.UpdateStatus(ctx, tx, gameID, models.GameCompleted)
	})
	if err != nil {
		return nil, err
	}
	return medals, nil
}

// DistributePoints converts a completed game's medals into point credits.
// Running it twice is a no-op thanks to the points_assigned guard.
func (s *gameService) DistributePoints(ctx context.Context, gameID int) (*brackets.PointsReport, error) {
	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.PointsAssigned {
		return &brackets.PointsReport{}, nil
	}
	if game.Status != models.GameCompleted || game.Medals == nil {
		return nil, ErrGameNotCompleted
	}

	var report *brackets.PointsReport
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		teams, err := s.teamRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		report, err = s.applyPoints(ctx, tx, game, teams)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.creditParticipants(ctx, report)
	return report, nil
}

// CompleteStaleGames force-completes live games nobody has touched for a
// day, resolving whatever champions the match history supports. Run by
// the scheduler.
func (s *gameService) CompleteStaleGames(ctx context.Context) error {
	stale, err := s.gameRepo.ListStaleLive(ctx, time.Now().Add(-staleGameAge))
	if err != nil {
		return fmt.Errorf("failed to list stale games: %w", err)
	}
	for _, game := range stale {
		report, err := s.forceComplete(ctx, game)
		if err != nil {
			s.logger.Error("failed to force-complete stale game",
				slog.Int("game_id", game.ID), slog.Any("error", err))
			continue
		}
		s.creditParticipants(ctx, report)
		s.logger.Info("force-completed stale game",
			slog.Int("game_id", game.ID), slog.String("format", string(game.Format)))
	}
	return nil
}

// forceComplete terminates an abandoned game on its partial match
// history: unfinished matches simply yield no champion, and a format
// with no resolvable medals still hands out participation points. Unlike
// FinalizeOutcome there is no round-completeness gate.
func (s *gameService) forceComplete(ctx context.Context, game *models.Game) (*brackets.PointsReport, error) {
	var report *brackets.PointsReport
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		teams, err := s.teamRepo.ListByGame(ctx, tx, game.ID)
		if err != nil {
			return err
		}
		matches, err := s.matchRepo.ListByGame(ctx, tx, game.ID)
		if err != nil {
			return err
		}
		if err := brackets.AttachTeams(teams, matches); err != nil {
			return err
		}
		_, report, err = s.finalize(ctx, tx, game, teams, matches)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// creditParticipants applies per-player stat increments one by one. A
// failing credit is logged as a recoverable inconsistency and skipped;
// the remaining participants are still credited.
func (s *gameService) creditParticipants(ctx context.Context, report *brackets.PointsReport) {
	for _, p := range report.Players {
		if p.UserID == nil && p.Contact == nil {
			s.logger.Warn("participant has no identity to credit",
				slog.String("name", p.Name), slog.String("team", p.TeamLabel))
			continue
		}
		credit := repositories.PlayerCredit{
			UserID:     p.UserID,
			Contact:    p.Contact,
			Points:     p.IndividualPoints,
			TeamPoints: p.TeamShare,
			Won:        p.Won,
		}
		if err := s.statsRepo.Credit(ctx, s.db, credit); err != nil {
			s.logger.Error("failed to credit participant, continuing",
				slog.String("name", p.Name), slog.String("team", p.TeamLabel), slog.Any("error", err))
		}
	}
}

// createMatch persists a match, applying walkover side effects: the
// advancing team of a bye is credited with a win exactly as if it had
// played and won.
func (s *gameService) createMatch(ctx context.Context, tx *sql.Tx, m *models.Match) error {
	if err := s.matchRepo.Create(ctx, tx, m); err != nil {
		return err
	}
	if m.IsBye && m.TeamA != nil && m.TeamA.ID != 0 {
		if err := s.teamRepo.AddWin(ctx, tx, m.TeamA.ID); err != nil {
			return err
		}
		m.TeamA.Wins++
	}
	return nil
}

func (s *gameService) broadcastResult(roomID int, out *SubmitResultOutput) {
	if s.hub == nil || roomID == 0 {
		return
	}
	room := strconv.Itoa(roomID)
	s.hub.BroadcastToRoom(room, brackets.Event{Type: brackets.EventMatchUpdated, Payload: out.Match})
	if out.RoundAdvanced {
		s.hub.BroadcastToRoom(room, brackets.Event{Type: brackets.EventRoundAdvanced, Payload: out.NewMatches})
	}
	if out.GameCompleted {
		s.hub.BroadcastToRoom(room, brackets.Event{Type: brackets.EventGameCompleted, Payload: out.Medals})
	}
}

func (s *gameService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// teamLabel assigns single-letter labels A, B, C... wrapping into AA, AB
// for the unlikely 27th team.
func teamLabel(i int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(alphabet) {
		return string(alphabet[i])
	}
	return string(alphabet[(i/len(alphabet))-1]) + string(alphabet[i%len(alphabet)])
}
