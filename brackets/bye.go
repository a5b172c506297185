package brackets

import "github.com/vamshigadde09/PickleMatch-sub001/models"

// ByeLabel is the reserved label of the synthetic walkover opponent. The
// BYE team is built on demand and is never part of a game's team list.
const ByeLabel = "BYE"

// WalkoverScoreA and WalkoverScoreB form the fixed score every walkover
// match is recorded with.
const (
	WalkoverScoreA = 21
	WalkoverScoreB = 0
)

// ByeTeam constructs the synthetic opponent for a walkover match.
func ByeTeam() *models.Team {
	return &models.Team{
		Label: ByeLabel,
		Medal: models.MedalNone,
	}
}

// IsByeTeam reports whether a team is the synthetic walkover opponent.
func IsByeTeam(t *models.Team) bool {
	return t == nil || t.Label == ByeLabel
}

// NewByeMatch synthesizes the finished walkover match a lone team receives
// when a round has no opponent left for it. The match is created already
// finished with the fixed walkover score and team A as winner, so its side
// effects (win count, points, individual credit) apply exactly as they
// would for a normally finished match.
func NewByeMatch(team *models.Team, gameID, round, number int, role models.BracketRole) *models.Match {
	scoreA := WalkoverScoreA
	scoreB := WalkoverScoreB
	m := &models.Match{
		GameID: gameID,
		Round:  round,
		Number: number,
		ScoreA: &scoreA,
		ScoreB: &scoreB,
		Winner: models.WinnerA,
		Status: models.MatchFinished,
		Role:   role,
		IsBye:  true,
		TeamA:  team,
		TeamB:  ByeTeam(),
	}
	if team != nil && team.ID != 0 {
		id := team.ID
		m.TeamAID = &id
	}
	return m
}
