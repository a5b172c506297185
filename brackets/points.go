package brackets

import "github.com/vamshigadde09/PickleMatch-sub001/models"

// pointValue is the fixed award a medal carries: Individual goes to every
// roster member as-is, Team is split evenly across the roster.
type pointValue struct {
	Individual float64
	Team       float64
}

var medalPoints = map[models.MedalColor]pointValue{
	models.MedalGold:   {Individual: 3, Team: 4},
	models.MedalSilver: {Individual: 1, Team: 2},
	models.MedalBronze: {Individual: 1, Team: 1},
}

// ParticipationPoints is the flat individual award for playing a game
// without winning a medal.
const ParticipationPoints = 0.5

// PlayerDelta is the point and stat increment owed to one participant.
// Registered players are identified by UserID; guests by their contact
// handle (and may carry neither, in which case the credit has nowhere to
// land and is skipped by the crediting layer).
type PlayerDelta struct {
	UserID           *int    `json:"user_id,omitempty"`
	Contact          *string `json:"contact,omitempty"`
	Name             string  `json:"name"`
	TeamLabel        string  `json:"team_label"`
	IndividualPoints float64 `json:"individual_points"`
	TeamShare        float64 `json:"team_share"`
	Won              bool    `json:"won"`
}

// TeamDelta is the cumulative team-point increment owed to one team.
type TeamDelta struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

type PointsReport struct {
	Players []PlayerDelta `json:"players"`
	Teams   []TeamDelta   `json:"teams"`
}

// DistributePoints converts a completed game's medal outcome into point
// increments. It is a pure calculation: the caller persists the deltas
// and flips the game's PointsAssigned flag inside the same transaction.
// A game whose points were already assigned yields an empty report, so
// running the distribution twice is a no-op.
//
// Every player on a medal team receives the medal's individual points and
// an even fractional share of its team points; every other participant
// receives the flat participation award. Won marks medal holders so the
// crediting layer can extend their win streak; everyone else has their
// streak reset.
func DistributePoints(game *models.Game, teams []*models.Team) *PointsReport {
	report := &PointsReport{}
	if game.PointsAssigned {
		return report
	}

	for _, team := range teams {
		if IsByeTeam(team) {
			continue
		}

		value, hasMedal := medalPoints[team.Medal]
		if hasMedal {
			report.Teams = append(report.Teams, TeamDelta{Label: team.Label, Points: value.Team})
		}

		rosterSize := len(team.Players)
		for _, p := range team.Players {
			delta := PlayerDelta{
				UserID:    p.UserID,
				Contact:   p.Contact,
				Name:      p.Name,
				TeamLabel: team.Label,
			}
			if hasMedal {
				delta.IndividualPoints = value.Individual
				delta.TeamShare = value.Team / float64(rosterSize)
				delta.Won = true
			} else {
				delta.IndividualPoints = ParticipationPoints
			}
			report.Players = append(report.Players, delta)
		}
	}

	return report
}
