package brackets

import "github.com/vamshigadde09/PickleMatch-sub001/models"

type teamPair struct {
	a, b *models.Team
}

// roundRobinRound generates every C(n,2) pairing once and schedules them
// so that no team plays back-to-back unless the remaining pairs make that
// mathematically unavoidable.
func roundRobinRound(gameID int, teams []*models.Team) []*models.Match {
	ordered := scheduleWithRest(allPairs(teams))

	matches := make([]*models.Match, 0, len(ordered))
	for i, p := range ordered {
		matches = append(matches, newMatch(p.a, p.b, gameID, 1, i+1, models.RoleNone))
	}
	return matches
}

func allPairs(teams []*models.Team) []teamPair {
	pairs := make([]teamPair, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairs = append(pairs, teamPair{a: teams[i], b: teams[j]})
		}
	}
	return pairs
}

// scheduleWithRest orders pairings greedily. The very first slot takes the
// first pair as-is. Every later slot prefers pairs whose teams both sat
// out the immediately preceding match (rest policy), and among those picks
// the pair with the lowest combined match count so far, so load spreads
// evenly. If every remaining pair would repeat a just-played team, the
// first remaining pair is used as a fallback.
func scheduleWithRest(pairs []teamPair) []teamPair {
	remaining := make([]teamPair, len(pairs))
	copy(remaining, pairs)

	played := make(map[string]int)
	ordered := make([]teamPair, 0, len(pairs))

	var prev *teamPair
	for len(remaining) > 0 {
		idx := 0
		if prev != nil {
			idx = -1
			best := -1
			for i, p := range remaining {
				if sharesTeam(p, *prev) {
					continue
				}
				load := played[p.a.Label] + played[p.b.Label]
				if idx == -1 || load < best {
					idx = i
					best = load
				}
			}
			if idx == -1 {
				// Every candidate repeats a just-played team.
				idx = 0
			}
		}

		pick := remaining[idx]
		ordered = append(ordered, pick)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		played[pick.a.Label]++
		played[pick.b.Label]++
		prev = &pick
	}
	return ordered
}

func sharesTeam(p, q teamPair) bool {
	return p.a == q.a || p.a == q.b || p.b == q.a || p.b == q.b
}
