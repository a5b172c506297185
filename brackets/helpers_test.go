package brackets

import (
	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// makeTeams builds n registered teams labeled A, B, C... with one
// registered player each.
func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, 0, n)
	for i := 0; i < n; i++ {
		userID := i + 1
		teams = append(teams, &models.Team{
			ID:    i + 1,
			Label: string(rune('A' + i)),
			Medal: models.MedalNone,
			Players: []models.TeamPlayer{
				{UserID: &userID, Name: "Player " + string(rune('A'+i))},
			},
		})
	}
	return teams
}

// finish records a result on a match the way a submission would.
func finish(m *models.Match, scoreA, scoreB int) {
	m.ScoreA = &scoreA
	m.ScoreB = &scoreB
	if scoreA > scoreB {
		m.Winner = models.WinnerA
	} else {
		m.Winner = models.WinnerB
	}
	m.Status = models.MatchFinished
}

// teamByLabel finds a team in a slice by its label.
func teamByLabel(teams []*models.Team, label string) *models.Team {
	for _, t := range teams {
		if t.Label == label {
			return t
		}
	}
	return nil
}
