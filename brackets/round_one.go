package brackets

import (
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// FirstRound produces the opening round of matches for a game. The team
// order is the order the teams were registered in; seeding beyond that is
// a format concern handled by the progression rules.
//
// Knockout-style formats pair teams sequentially and leave an unpaired
// trailing team out of round 1 entirely; the progression rules pick it up
// as the round-2 bye team.
func FirstRound(format models.GameFormat, gameID int, teams []*models.Team) ([]*models.Match, error) {
	if err := ValidateTeams(format, len(teams)); err != nil {
		return nil, err
	}

	switch format {
	case models.FormatOneVsOne, models.FormatTwoVsTwo:
		return []*models.Match{newMatch(teams[0], teams[1], gameID, 1, 1, models.RoleFinal)}, nil
	case models.FormatRoundRobin:
		return roundRobinRound(gameID, teams), nil
	default:
		return pairSequential(teams, gameID, 1, 1, models.RoleNone), nil
	}
}

// pairSequential pairs teams by position: (0,1), (2,3), and so on. A lone
// trailing team is dropped from the result.
func pairSequential(teams []*models.Team, gameID, round, firstNumber int, role models.BracketRole) []*models.Match {
	matches := make([]*models.Match, 0, len(teams)/2)
	number := firstNumber
	for i := 0; i+1 < len(teams); i += 2 {
		matches = append(matches, newMatch(teams[i], teams[i+1], gameID, round, number, role))
		number++
	}
	return matches
}

func newMatch(a, b *models.Team, gameID, round, number int, role models.BracketRole) *models.Match {
	m := &models.Match{
		GameID: gameID,
		Round:  round,
		Number: number,
		Winner: models.WinnerNone,
		Status: models.MatchPending,
		Role:   role,
		TeamA:  a,
		TeamB:  b,
	}
	if a != nil && a.ID != 0 {
		id := a.ID
		m.TeamAID = &id
	}
	if b != nil && b.ID != 0 {
		id := b.ID
		m.TeamBID = &id
	}
	return m
}

// AttachTeams resolves the TeamA/TeamB pointers of stored matches against
// a game's team list. Walkover matches get the synthetic BYE team on
// whichever side has no stored reference.
func AttachTeams(teams []*models.Team, matches []*models.Match) error {
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for _, m := range matches {
		if m.TeamAID != nil {
			t, ok := byID[*m.TeamAID]
			if !ok {
				return fmt.Errorf("match %d references unknown team %d", m.ID, *m.TeamAID)
			}
			m.TeamA = t
		}
		if m.TeamBID != nil {
			t, ok := byID[*m.TeamBID]
			if !ok {
				return fmt.Errorf("match %d references unknown team %d", m.ID, *m.TeamBID)
			}
			m.TeamB = t
		}
		if m.IsBye {
			if m.TeamA == nil {
				m.TeamA = ByeTeam()
			}
			if m.TeamB == nil {
				m.TeamB = ByeTeam()
			}
		}
	}
	return nil
}
