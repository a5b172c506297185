package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

func TestRoundComplete(t *testing.T) {
	teams := makeTeams(4)
	matches, err := FirstRound(models.FormatQuickKnockout, 1, teams)
	require.NoError(t, err)

	assert.False(t, RoundComplete(matches, 1), "no results yet")
	assert.False(t, RoundComplete(matches, 2), "round with no matches is never complete")

	finish(matches[0], 11, 4)
	assert.False(t, RoundComplete(matches, 1), "one result still missing")

	finish(matches[1], 9, 11)
	assert.True(t, RoundComplete(matches, 1))
}

func TestNextRoundUnknownFormat(t *testing.T) {
	game := &models.Game{ID: 1, Format: models.GameFormat("cricket"), CurrentRound: 1}
	_, _, err := NextRound(game, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNextRoundSingleRoundFormatsComplete(t *testing.T) {
	for _, format := range []models.GameFormat{models.FormatOneVsOne, models.FormatRoundRobin} {
		game := &models.Game{ID: 1, Format: format, CurrentRound: 1}
		next, completed, err := NextRound(game, makeTeams(2), nil)
		require.NoError(t, err)
		assert.True(t, completed, "%s has a single round", format)
		assert.Empty(t, next)
	}
}

func TestNextRoundRespectsRoundCeiling(t *testing.T) {
	game := &models.Game{ID: 1, Format: models.FormatPickle, CurrentRound: 3}
	next, completed, err := NextRound(game, makeTeams(4), nil)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Empty(t, next)
}

// Three-team quick knockout: A beats B, the sat-out team C meets A in the
// semifinal and loses, and the last round gives B a walkover bronze while
// A and C replay for the title.
func TestQuickKnockoutThreeTeams(t *testing.T) {
	teams := makeTeams(3)
	game := &models.Game{ID: 1, Format: models.FormatQuickKnockout, CurrentRound: 1}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	finish(matches[0], 11, 3) // A beats B

	semis, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, semis, 1)
	assert.Equal(t, models.RoleSemifinal, semis[0].Role)
	assert.Equal(t, 2, semis[0].Round)
	assert.Same(t, teamByLabel(teams, "A"), semis[0].TeamA)
	assert.Same(t, teamByLabel(teams, "C"), semis[0].TeamB)
	assert.Nil(t, game.DominantWinner, "single round-1 match gives no margin ranking")

	finish(semis[0], 11, 6) // A beats C
	game.CurrentRound = 2
	matches = append(matches, semis...)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 2)

	bronze, final := last[0], last[1]
	assert.Equal(t, models.RoleBronze, bronze.Role)
	assert.True(t, bronze.IsBye, "bronze falls to B unopposed")
	assert.Same(t, teamByLabel(teams, "B"), bronze.TeamA)

	assert.Equal(t, models.RoleFinal, final.Role)
	assert.Same(t, teamByLabel(teams, "A"), final.TeamA)
	assert.Same(t, teamByLabel(teams, "C"), final.TeamB)

	finish(final, 11, 8)
	game.CurrentRound = 3
	matches = append(matches, last...)

	_, completed, err = NextRound(game, teams, matches)
	require.NoError(t, err)
	assert.True(t, completed)
}

// Five-team quick knockout: the biggest round-1 margin is seeded straight
// into the final, the runner-up winner absorbs the bye team in the
// semifinal, and round-1 losers contest bronze.
func TestQuickKnockoutSmartSeeding(t *testing.T) {
	teams := makeTeams(5)
	game := &models.Game{ID: 1, Format: models.FormatQuickKnockout, CurrentRound: 1}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	finish(matches[0], 11, 2) // A beats B by 9
	finish(matches[1], 11, 8) // C beats D by 3

	semis, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, semis, 1)

	require.NotNil(t, game.DominantWinner)
	assert.Equal(t, "A", *game.DominantWinner)

	assert.Equal(t, models.RoleSemifinal, semis[0].Role)
	assert.Same(t, teamByLabel(teams, "C"), semis[0].TeamA)
	assert.Same(t, teamByLabel(teams, "E"), semis[0].TeamB)

	finish(semis[0], 11, 4) // C beats E
	game.CurrentRound = 2
	matches = append(matches, semis...)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 2)

	bronze, final := last[0], last[1]
	assert.Equal(t, models.RoleBronze, bronze.Role)
	assert.Same(t, teamByLabel(teams, "B"), bronze.TeamA)
	assert.Same(t, teamByLabel(teams, "D"), bronze.TeamB)

	assert.Equal(t, models.RoleFinal, final.Role)
	assert.Same(t, teamByLabel(teams, "A"), final.TeamA, "dominant winner skips the semifinal")
	assert.Same(t, teamByLabel(teams, "C"), final.TeamB)
}

// Four-team quick knockout has no bye team: the two round-1 winners meet
// in a single semifinal, the final replays it, and the round-1 losers
// contest bronze.
func TestQuickKnockoutFourTeams(t *testing.T) {
	teams := makeTeams(4)
	game := &models.Game{ID: 1, Format: models.FormatQuickKnockout, CurrentRound: 1}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	finish(matches[0], 11, 7) // A beats B
	finish(matches[1], 11, 9) // C beats D

	semis, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, semis, 1)
	assert.Equal(t, models.RoleSemifinal, semis[0].Role)
	assert.Same(t, teamByLabel(teams, "A"), semis[0].TeamA)
	assert.Same(t, teamByLabel(teams, "C"), semis[0].TeamB)
	assert.Nil(t, game.DominantWinner, "seeding only applies when a team sat out")

	finish(semis[0], 11, 5) // A beats C
	game.CurrentRound = 2
	matches = append(matches, semis...)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 2)

	bronze, final := last[0], last[1]
	assert.Equal(t, models.RoleBronze, bronze.Role)
	assert.Same(t, teamByLabel(teams, "B"), bronze.TeamA)
	assert.Same(t, teamByLabel(teams, "D"), bronze.TeamB)
	assert.Equal(t, models.RoleFinal, final.Role)
	assert.Same(t, teamByLabel(teams, "A"), final.TeamA)
	assert.Same(t, teamByLabel(teams, "C"), final.TeamB)
}

// The stored dominant-winner label survives a reload; the final round uses
// it without re-deriving margins.
func TestKnockoutFinalUsesStoredDominantWinner(t *testing.T) {
	teams := makeTeams(5)
	label := "A"
	game := &models.Game{ID: 1, Format: models.FormatQuickKnockout, CurrentRound: 2, DominantWinner: &label}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	finish(matches[0], 11, 2)
	finish(matches[1], 11, 8)

	semi := newMatch(teamByLabel(teams, "C"), teamByLabel(teams, "E"), game.ID, 2, 1, models.RoleSemifinal)
	finish(semi, 11, 4)
	matches = append(matches, semi)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 2)
	assert.Same(t, teamByLabel(teams, "A"), last[1].TeamA)
}

// Five-team pickle: the team that sat out round 1 joins the winners
// bracket against a round-1 winner, the spare winner takes a walkover,
// and the losers bracket pairs among itself.
func TestPickleFiveTeams(t *testing.T) {
	teams := makeTeams(5)
	game := &models.Game{ID: 1, Format: models.FormatPickle, CurrentRound: 1}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	finish(matches[0], 11, 5) // A beats B
	finish(matches[1], 11, 7) // C beats D

	second, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, second, 3)

	assert.Equal(t, models.RoleWinners, second[0].Role)
	assert.Same(t, teamByLabel(teams, "A"), second[0].TeamA)
	assert.Same(t, teamByLabel(teams, "E"), second[0].TeamB)

	assert.Equal(t, models.RoleWinners, second[1].Role)
	assert.True(t, second[1].IsBye, "odd winner advances by walkover")
	assert.Same(t, teamByLabel(teams, "C"), second[1].TeamA)

	assert.Equal(t, models.RoleLosers, second[2].Role)
	assert.Same(t, teamByLabel(teams, "B"), second[2].TeamA)
	assert.Same(t, teamByLabel(teams, "D"), second[2].TeamB)

	finish(second[0], 11, 9) // A beats E
	finish(second[2], 11, 7) // B beats D
	game.CurrentRound = 2
	matches = append(matches, second...)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 1)

	final := last[0]
	assert.Equal(t, models.RoleFinal, final.Role)
	assert.Equal(t, 3, final.Round)
	assert.Same(t, teamByLabel(teams, "A"), final.TeamA, "played-match winner outranks the walkover recipient")
	assert.Same(t, teamByLabel(teams, "B"), final.TeamB)
}

// A walkover recipient reaches the final only when its bracket finished
// no played match at all.
func TestBracketChampionPrefersPlayedMatchWinner(t *testing.T) {
	teams := makeTeams(3)
	played := newMatch(teamByLabel(teams, "A"), teamByLabel(teams, "B"), 1, 2, 1, models.RoleWinners)
	finish(played, 11, 8)
	walkover := NewByeMatch(teamByLabel(teams, "C"), 1, 2, 2, models.RoleWinners)

	assert.Same(t, teamByLabel(teams, "A"), bracketChampion([]*models.Match{played, walkover}, models.RoleWinners))
	assert.Same(t, teamByLabel(teams, "C"), bracketChampion([]*models.Match{walkover}, models.RoleWinners),
		"walkover stands in when nothing was played")
}

// Four-team pickle runs clean winners and losers brackets into a final.
func TestPickleFourTeams(t *testing.T) {
	teams := makeTeams(4)
	game := &models.Game{ID: 1, Format: models.FormatPickle, CurrentRound: 1}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	finish(matches[0], 11, 6) // A beats B
	finish(matches[1], 8, 11) // D beats C

	second, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, second, 2)

	winners, losers := second[0], second[1]
	assert.Equal(t, models.RoleWinners, winners.Role)
	assert.Same(t, teamByLabel(teams, "A"), winners.TeamA)
	assert.Same(t, teamByLabel(teams, "D"), winners.TeamB)
	assert.Equal(t, models.RoleLosers, losers.Role)
	assert.Same(t, teamByLabel(teams, "B"), losers.TeamA)
	assert.Same(t, teamByLabel(teams, "C"), losers.TeamB)

	finish(winners, 11, 4) // A beats D
	finish(losers, 11, 9)  // B beats C
	game.CurrentRound = 2
	matches = append(matches, second...)

	last, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	require.False(t, completed)
	require.Len(t, last, 1)
	assert.Same(t, teamByLabel(teams, "A"), last[0].TeamA)
	assert.Same(t, teamByLabel(teams, "B"), last[0].TeamB)
	assert.Equal(t, models.RoleFinal, last[0].Role)
}

// A pickle game whose brackets resolved no pairable champions completes
// early instead of producing an empty round.
func TestPickleCompletesEarlyWithoutChampions(t *testing.T) {
	teams := makeTeams(4)
	game := &models.Game{ID: 1, Format: models.FormatPickle, CurrentRound: 2}

	matches, err := FirstRound(game.Format, game.ID, teams)
	require.NoError(t, err)
	finish(matches[0], 11, 6)
	finish(matches[1], 8, 11)
	// Round 2 exists but nothing finished, so neither bracket has a
	// champion yet.
	matches = append(matches,
		newMatch(teamByLabel(teams, "A"), teamByLabel(teams, "D"), game.ID, 2, 1, models.RoleWinners),
		newMatch(teamByLabel(teams, "B"), teamByLabel(teams, "C"), game.ID, 2, 2, models.RoleLosers),
	)

	next, completed, err := NextRound(game, teams, matches)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Empty(t, next)
}
