package brackets

import (
	"fmt"
	"sort"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// ComputeOutcome assigns medals once a game has reached its terminal
// round. It mutates the Medal tag of the awarded teams and returns the
// medal record with the registered player identities resolved per team.
// One team may occupy two slots of the record (a pickle losers-bracket
// champion takes bronze on top of whatever the final earned it); the
// team's own Medal tag keeps the highest color, and point distribution
// follows the tag. The synthetic BYE team never receives a medal; a
// medal whose only candidate is the BYE team is simply left unassigned.
func ComputeOutcome(game *models.Game, teams []*models.Team, matches []*models.Match) (*models.MedalSummary, error) {
	summary := &models.MedalSummary{}

	switch game.Format {
	case models.FormatRoundRobin:
		awardByWins(summary, teams)
	case models.FormatPickle:
		awardFromFinal(summary, matches)
		resolvePickleFallbacks(summary, matches)
		// Bronze always names the losers-bracket champion, even when
		// that team also took gold or silver in the final.
		award(summary, models.MedalBronze, bracketChampion(matches, models.RoleLosers))
	case models.FormatQuickKnockout:
		awardFromFinal(summary, matches)
		for _, m := range matches {
			if m.Role == models.RoleBronze && m.Finished() {
				award(summary, models.MedalBronze, winnerTeam(m))
			}
		}
	case models.FormatOneVsOne, models.FormatTwoVsTwo:
		awardFromFinal(summary, matches)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, game.Format)
	}

	return summary, nil
}

// awardByWins ranks teams by win count descending and hands the top three
// gold, silver and bronze. Equal win counts keep their registration
// order; no further tie-break is applied.
func awardByWins(summary *models.MedalSummary, teams []*models.Team) {
	ranked := make([]*models.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Wins > ranked[j].Wins
	})

	colors := []models.MedalColor{models.MedalGold, models.MedalSilver, models.MedalBronze}
	for i, color := range colors {
		if i >= len(ranked) {
			break
		}
		award(summary, color, ranked[i])
	}
}

// awardFromFinal assigns gold and silver from the final match of the last
// round that has one.
func awardFromFinal(summary *models.MedalSummary, matches []*models.Match) {
	var final *models.Match
	for _, m := range matches {
		if m.Role == models.RoleFinal && m.Finished() {
			final = m
		}
	}
	if final == nil {
		return
	}
	award(summary, models.MedalGold, winnerTeam(final))
	award(summary, models.MedalSilver, loserTeam(final))
}

// resolvePickleFallbacks covers a pickle game that terminated before a
// final could be formed: gold falls to the last-known winners-bracket
// champion and silver to the losers-bracket champion, when they resolve.
func resolvePickleFallbacks(summary *models.MedalSummary, matches []*models.Match) {
	if summary.Gold == nil {
		if champ := bracketChampion(matches, models.RoleWinners); champ != nil {
			award(summary, models.MedalGold, champ)
		}
	}
	if summary.Silver == nil {
		if champ := bracketChampion(matches, models.RoleLosers); champ != nil && (summary.Gold == nil || summary.Gold.TeamLabel != champ.Label) {
			award(summary, models.MedalSilver, champ)
		}
	}
}

var medalRank = map[models.MedalColor]int{
	models.MedalBronze: 1,
	models.MedalSilver: 2,
	models.MedalGold:   3,
}

// award fills the summary slot for color and upgrades the team's Medal
// tag. A team already tagged with a higher color keeps it.
func award(summary *models.MedalSummary, color models.MedalColor, team *models.Team) {
	if team == nil || IsByeTeam(team) {
		return
	}
	if medalRank[color] > medalRank[team.Medal] {
		team.Medal = color
	}
	entry := &models.MedalAward{
		TeamLabel: team.Label,
		PlayerIDs: team.RegisteredPlayerIDs(),
	}
	switch color {
	case models.MedalGold:
		summary.Gold = entry
	case models.MedalSilver:
		summary.Silver = entry
	case models.MedalBronze:
		summary.Bronze = entry
	}
}
