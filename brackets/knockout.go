package brackets

import (
	"sort"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// knockoutSecondRound builds the semifinal round of a quick-knockout.
//
// With an odd team count one team sat out round 1. If at least two real
// matches were played, smart seeding applies: the round-1 winner with the
// largest winning margin advances straight to the final round and its
// label is recorded on the game, while the winner with the next-largest
// margin meets the bye team in a semifinal. With only one real match
// (the 3-team case) its winner meets the bye team. With no bye team, all
// winners are paired sequentially, a lone leftover taking a walkover
// semifinal.
func knockoutSecondRound(a *advance) ([]*models.Match, error) {
	firstRound := a.round(1)
	winners, _ := roundCohorts(firstRound)
	byes := a.unplayedTeams(firstRound)

	gameID := a.game.ID

	if len(byes) > 0 {
		byeTeam := byes[0]
		if len(firstRound) >= 2 {
			ranked := rankByMargin(winners, firstRound)
			dominant := ranked[0]
			label := dominant.Label
			a.game.DominantWinner = &label

			matches := []*models.Match{
				newMatch(ranked[1], byeTeam, gameID, 2, 1, models.RoleSemifinal),
			}
			if len(ranked) > 2 {
				matches = append(matches, pairCohort(ranked[2:], gameID, 2, 2, models.RoleSemifinal)...)
			}
			return matches, nil
		}
		// Single real match: its winner meets the bye team.
		if len(winners) == 0 {
			return nil, nil
		}
		return []*models.Match{
			newMatch(winners[0], byeTeam, gameID, 2, 1, models.RoleSemifinal),
		}, nil
	}

	if len(winners) == 0 {
		return nil, nil
	}
	return pairCohort(winners, gameID, 2, 1, models.RoleSemifinal), nil
}

// knockoutFinalRound builds the bronze match and the final.
//
// When smart seeding fired, the dominant round-1 winner is slotted into
// the final ahead of the semifinal winner, and the round-1 losers (plus
// any semifinal loser, if a round-1 loser is missing) contest bronze.
// Otherwise the semifinal winners play the final and the semifinal losers
// play bronze. A cohort down to a single contender is carried forward by
// a walkover match rather than blocking the game.
func knockoutFinalRound(a *advance) ([]*models.Match, error) {
	gameID := a.game.ID
	semis := rolesOf(a.round(2), models.RoleSemifinal)

	var semiWinners, semiLosers []*models.Team
	for _, m := range semis {
		if !m.Finished() {
			continue
		}
		if w := winnerTeam(m); w != nil && !IsByeTeam(w) {
			semiWinners = append(semiWinners, w)
		}
		if m.IsBye {
			continue
		}
		if l := loserTeam(m); l != nil && !IsByeTeam(l) {
			semiLosers = append(semiLosers, l)
		}
	}

	dominant := a.dominantWinner()

	var finalists []*models.Team
	var bronze []*models.Team

	if dominant != nil {
		finalists = append(finalists, dominant)
		finalists = append(finalists, semiWinners...)
		_, r1Losers := roundCohorts(a.round(1))
		bronze = append(bronze, r1Losers...)
		bronze = append(bronze, semiLosers...)
	} else {
		finalists = semiWinners
		if len(finalists) == 1 && len(semiLosers) > 0 {
			// A single semifinal leaves only its two sides standing; the
			// loser gets a second shot at the title in the final.
			finalists = append(finalists, semiLosers[len(semiLosers)-1])
			semiLosers = semiLosers[:len(semiLosers)-1]
		}
		bronze = semiLosers
		if len(bronze) == 0 {
			inFinal := make(map[*models.Team]bool, len(finalists))
			for _, t := range finalists {
				inFinal[t] = true
			}
			_, r1Losers := roundCohorts(a.round(1))
			for _, t := range r1Losers {
				if !inFinal[t] {
					bronze = append(bronze, t)
				}
			}
		}
	}

	var matches []*models.Match
	number := 1

	switch {
	case len(bronze) >= 2:
		matches = append(matches, newMatch(bronze[0], bronze[1], gameID, 3, number, models.RoleBronze))
		number++
	case len(bronze) == 1:
		matches = append(matches, NewByeMatch(bronze[0], gameID, 3, number, models.RoleBronze))
		number++
	}

	switch {
	case len(finalists) >= 2:
		matches = append(matches, newMatch(finalists[0], finalists[1], gameID, 3, number, models.RoleFinal))
	case len(finalists) == 1:
		matches = append(matches, NewByeMatch(finalists[0], gameID, 3, number, models.RoleFinal))
	}

	return matches, nil
}

// dominantWinner resolves the smart-seeded round-1 winner, preferring the
// label stored on the game when round 2 was generated and falling back to
// re-deriving it from the stored round-1 margins. The score-differential
// rule is the observable behavior either way; the stored label only saves
// re-deriving it.
func (a *advance) dominantWinner() *models.Team {
	if a.game.DominantWinner != nil {
		for _, t := range a.teams {
			if t.Label == *a.game.DominantWinner {
				return t
			}
		}
	}

	firstRound := a.round(1)
	if len(a.unplayedTeams(firstRound)) == 0 || len(firstRound) < 2 {
		return nil
	}
	winners, _ := roundCohorts(firstRound)
	if len(winners) < 2 {
		return nil
	}
	return rankByMargin(winners, firstRound)[0]
}

// rankByMargin orders winners by their round-1 winning margin, largest
// first, keeping the original order among equal margins.
func rankByMargin(winners []*models.Team, matches []*models.Match) []*models.Team {
	margins := make(map[*models.Team]int, len(winners))
	for _, m := range matches {
		if !m.Finished() || m.IsBye {
			continue
		}
		if w := winnerTeam(m); w != nil {
			margins[w] = marginOf(m)
		}
	}
	ranked := make([]*models.Team, len(winners))
	copy(ranked, winners)
	sort.SliceStable(ranked, func(i, j int) bool {
		return margins[ranked[i]] > margins[ranked[j]]
	})
	return ranked
}

func rolesOf(matches []*models.Match, role models.BracketRole) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}
