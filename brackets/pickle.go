package brackets

import "github.com/vamshigadde09/PickleMatch-sub001/models"

// pickleSecondRound splits the round-1 results into a winners and a
// losers bracket.
//
// Teams that sat out round 1 entirely are paired against the winners
// cohort first, one bye team per winner, inside the winners bracket.
// Winners left over after that are paired among themselves; a final
// unpaired winner is granted a walkover. The losers cohort is paired
// among itself the same way, with its own odd man out taking a walkover
// into the final round.
func pickleSecondRound(a *advance) ([]*models.Match, error) {
	firstRound := a.round(1)
	winners, losers := roundCohorts(firstRound)
	byes := a.unplayedTeams(firstRound)

	gameID := a.game.ID
	var matches []*models.Match
	number := 1

	wi := 0
	for _, bye := range byes {
		if wi < len(winners) {
			matches = append(matches, newMatch(winners[wi], bye, gameID, 2, number, models.RoleWinners))
			wi++
			number++
		} else {
			// No winner left to absorb this team; treat it as a winner
			// so it still gets paired inside the winners bracket.
			winners = append(winners, bye)
		}
	}

	restWinners := winners[wi:]
	wm := pairCohort(restWinners, gameID, 2, number, models.RoleWinners)
	matches = append(matches, wm...)
	number += len(wm)

	lm := pairCohort(losers, gameID, 2, number, models.RoleLosers)
	matches = append(matches, lm...)

	return matches, nil
}

// pickleFinalRound pits the surviving champion of the winners bracket
// against the champion of the losers bracket in a single final. If either
// bracket resolved no champion at all, no final can be formed and the
// game completes early on whatever champion is known.
func pickleFinalRound(a *advance) ([]*models.Match, error) {
	wChamp := bracketChampion(a.round(2), models.RoleWinners)
	lChamp := bracketChampion(a.round(2), models.RoleLosers)
	if wChamp == nil || lChamp == nil {
		return nil, nil
	}

	final := newMatch(wChamp, lChamp, a.game.ID, 3, 1, models.RoleFinal)
	return []*models.Match{final}, nil
}

// bracketChampion resolves the survivor of one bracket: the winner of the
// bracket's last finished played match. A walkover recipient is the
// champion only when the bracket finished no played match at all, so a
// team that won a real match is never displaced by one that advanced on
// a bye.
func bracketChampion(matches []*models.Match, role models.BracketRole) *models.Team {
	var played, walkover *models.Team
	for _, m := range matches {
		if m.Role != role || !m.Finished() {
			continue
		}
		w := winnerTeam(m)
		if w == nil || IsByeTeam(w) {
			continue
		}
		if m.IsBye {
			walkover = w
		} else {
			played = w
		}
	}
	if played != nil {
		return played
	}
	return walkover
}
