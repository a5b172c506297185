package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// newValidationGameService wires only the collaborators the pre-persistence
// validation paths touch.
func newValidationGameService(t *testing.T) (GameService, *fakeRoomRepo) {
	t.Helper()
	roomRepo := newFakeRoomRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewGameService(nil, nil, nil, nil, roomRepo, nil, nil, logger)
	return svc, roomRepo
}

func seedRoom(t *testing.T, roomRepo *fakeRoomRepo) *models.Room {
	t.Helper()
	room := &models.Room{Name: "Sunday Smash", HostID: 1}
	require.NoError(t, roomRepo.Create(context.Background(), room))
	return room
}

func twoPlayerTeams(n int) []TeamInput {
	teams := make([]TeamInput, 0, n)
	for i := 0; i < n; i++ {
		name := "Player " + string(rune('A'+i))
		teams = append(teams, TeamInput{Players: []PlayerInput{{Name: name}}})
	}
	return teams
}

func TestStartGameUnknownRoom(t *testing.T) {
	svc, _ := newValidationGameService(t)

	_, err := svc.StartGame(context.Background(), 1, StartGameInput{
		RoomID: 42,
		Format: models.FormatOneVsOne,
		Teams:  twoPlayerTeams(2),
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStartGameUnknownFormat(t *testing.T) {
	svc, roomRepo := newValidationGameService(t)
	room := seedRoom(t, roomRepo)

	_, err := svc.StartGame(context.Background(), 1, StartGameInput{
		RoomID: room.ID,
		Format: models.GameFormat("cricket"),
		Teams:  twoPlayerTeams(2),
	})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestStartGameTeamCountValidation(t *testing.T) {
	svc, roomRepo := newValidationGameService(t)
	room := seedRoom(t, roomRepo)
	ctx := context.Background()

	tests := []struct {
		name   string
		format models.GameFormat
		teams  int
	}{
		{name: "one vs one needs exactly two", format: models.FormatOneVsOne, teams: 3},
		{name: "pickle needs at least four", format: models.FormatPickle, teams: 3},
		{name: "round robin needs at least two", format: models.FormatRoundRobin, teams: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.StartGame(ctx, 1, StartGameInput{
				RoomID: room.ID,
				Format: tt.format,
				Teams:  twoPlayerTeams(tt.teams),
			})
			assert.ErrorIs(t, err, ErrTeamCountInvalid)
		})
	}
}

func TestStartGameEmptyRoster(t *testing.T) {
	svc, roomRepo := newValidationGameService(t)
	room := seedRoom(t, roomRepo)

	_, err := svc.StartGame(context.Background(), 1, StartGameInput{
		RoomID: room.ID,
		Format: models.FormatOneVsOne,
		Teams:  []TeamInput{{Players: []PlayerInput{{Name: "Asha"}}}, {}},
	})
	assert.ErrorIs(t, err, ErrTeamRosterRequired)
}

func TestSubmitResultScoreValidation(t *testing.T) {
	svc, _ := newValidationGameService(t)
	ctx := context.Background()

	_, err := svc.SubmitResult(ctx, 1, -1, 5)
	assert.ErrorIs(t, err, ErrScoresNegative)

	_, err = svc.SubmitResult(ctx, 1, 3, -2)
	assert.ErrorIs(t, err, ErrScoresNegative)

	_, err = svc.SubmitResult(ctx, 1, 11, 11)
	assert.ErrorIs(t, err, ErrScoresEqual, "racket games do not end in a draw")
}

// newPointsGameService wires the collaborators the finalization and
// point-distribution paths touch. The fakes ignore the executor, so the
// helpers under test can be driven without a database.
func newPointsGameService(t *testing.T) (*gameService, *fakeGameRepo, *fakeTeamRepo) {
	t.Helper()
	gameRepo := newFakeGameRepo()
	teamRepo := newFakeTeamRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewGameService(nil, gameRepo, teamRepo, nil, nil, nil, nil, logger).(*gameService)
	return svc, gameRepo, teamRepo
}

func seedMedalGame(t *testing.T, gameRepo *fakeGameRepo, teamRepo *fakeTeamRepo) (*models.Game, []*models.Team) {
	t.Helper()
	ctx := context.Background()
	game := &models.Game{RoomID: 1, Format: models.FormatOneVsOne, Status: models.GameCompleted, CurrentRound: 1}
	require.NoError(t, gameRepo.Create(ctx, nil, game))

	gold := &models.Team{GameID: game.ID, Label: "A", Medal: models.MedalGold,
		Players: []models.TeamPlayer{{Name: "Asha"}, {Name: "Ravi"}}}
	silver := &models.Team{GameID: game.ID, Label: "B", Medal: models.MedalSilver,
		Players: []models.TeamPlayer{{Name: "Mira"}}}
	require.NoError(t, teamRepo.Create(ctx, nil, gold))
	require.NoError(t, teamRepo.Create(ctx, nil, silver))
	return game, []*models.Team{gold, silver}
}

func TestApplyPointsCreditsTeamsOnce(t *testing.T) {
	svc, gameRepo, teamRepo := newPointsGameService(t)
	game, teams := seedMedalGame(t, gameRepo, teamRepo)

	report, err := svc.applyPoints(context.Background(), nil, game, teams)
	require.NoError(t, err)

	require.Len(t, report.Teams, 2)
	assert.Equal(t, 4.0, teamRepo.points[teams[0].ID])
	assert.Equal(t, 2.0, teamRepo.points[teams[1].ID])
	assert.True(t, gameRepo.pointsDone[game.ID])
	assert.True(t, game.PointsAssigned)
}

// Losing the points_assigned compare-and-set means no team credit may be
// written by this call, even though the in-memory game still read the
// flag as unset.
func TestApplyPointsLostRaceCreditsNothing(t *testing.T) {
	svc, gameRepo, teamRepo := newPointsGameService(t)
	game, teams := seedMedalGame(t, gameRepo, teamRepo)
	gameRepo.pointsDone[game.ID] = true

	report, err := svc.applyPoints(context.Background(), nil, game, teams)
	require.NoError(t, err)

	assert.Empty(t, report.Players)
	assert.Empty(t, report.Teams)
	assert.Empty(t, teamRepo.points, "the losing call must not add team points")
}

// An abandoned game finalizes on whatever its match history resolved:
// with no finished final there are no medals, but every participant
// still collects the participation award and the game reaches its
// terminal status.
func TestFinalizePartialHistoryAwardsParticipation(t *testing.T) {
	svc, gameRepo, teamRepo := newPointsGameService(t)
	ctx := context.Background()

	game := &models.Game{RoomID: 1, Format: models.FormatQuickKnockout, Status: models.GameLive, CurrentRound: 1}
	require.NoError(t, gameRepo.Create(ctx, nil, game))
	teams := make([]*models.Team, 0, 4)
	for i := 0; i < 4; i++ {
		team := &models.Team{GameID: game.ID, Label: teamLabel(i), Medal: models.MedalNone,
			Players: []models.TeamPlayer{{Name: "Player " + teamLabel(i)}}}
		require.NoError(t, teamRepo.Create(ctx, nil, team))
		teams = append(teams, team)
	}
	aID, bID := teams[0].ID, teams[1].ID
	matches := []*models.Match{{
		GameID: game.ID, Round: 1, Number: 1,
		TeamAID: &aID, TeamBID: &bID,
		Winner: models.WinnerNone, Status: models.MatchPending, Role: models.RoleNone,
		TeamA: teams[0], TeamB: teams[1],
	}}

	medals, report, err := svc.finalize(ctx, nil, game, teams, matches)
	require.NoError(t, err)

	assert.Nil(t, medals.Gold)
	assert.Equal(t, models.GameCompleted, gameRepo.statuses[game.ID])
	assert.True(t, gameRepo.pointsDone[game.ID])
	assert.Empty(t, report.Teams)
	require.Len(t, report.Players, 4)
	for _, p := range report.Players {
		assert.Equal(t, 0.5, p.IndividualPoints)
		assert.False(t, p.Won)
	}
}

func TestTeamLabel(t *testing.T) {
	assert.Equal(t, "A", teamLabel(0))
	assert.Equal(t, "B", teamLabel(1))
	assert.Equal(t, "Z", teamLabel(25))
	assert.Equal(t, "AA", teamLabel(26))
	assert.Equal(t, "AB", teamLabel(27))
}
