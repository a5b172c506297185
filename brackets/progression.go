package brackets

import (
	"fmt"

	"github.com/vamshigadde09/PickleMatch-sub001/models"
)

// advance is the context a next-round rule works from: the game record,
// the full team snapshot and the full match history, with team pointers
// already attached.
type advance struct {
	game    *models.Game
	teams   []*models.Team
	matches []*models.Match
}

type roundKey struct {
	format    models.GameFormat
	completed int
}

type nextRoundRule func(a *advance) ([]*models.Match, error)

// nextRoundRules is the explicit progression table: which rule fires when
// a given round of a given format finishes. Formats and rounds with no
// entry here never produce another round; finishing them completes the
// game. Keeping the dispatch exhaustive in one table makes each rule
// testable in isolation from persistence.
var nextRoundRules = map[roundKey]nextRoundRule{
	{models.FormatPickle, 1}:        pickleSecondRound,
	{models.FormatPickle, 2}:        pickleFinalRound,
	{models.FormatQuickKnockout, 1}: knockoutSecondRound,
	{models.FormatQuickKnockout, 2}: knockoutFinalRound,
}

// RoundComplete reports whether every match of the given round has
// finished. A round with no matches at all is not considered complete.
func RoundComplete(matches []*models.Match, round int) bool {
	seen := false
	for _, m := range matches {
		if m.Round != round {
			continue
		}
		seen = true
		if !m.Finished() {
			return false
		}
	}
	return seen
}

// NextRound decides what happens after the game's current round finished:
// either it returns the matches of the next round, or it reports that the
// game is complete. The round ceiling of the format is a hard bound: the
// engine never emits a round beyond it, and a rule that produces zero
// matches also terminates the game.
func NextRound(game *models.Game, teams []*models.Team, matches []*models.Match) ([]*models.Match, bool, error) {
	spec, ok := Spec(game.Format)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownFormat, game.Format)
	}

	completed := game.CurrentRound
	if completed >= spec.MaxRounds {
		return nil, true, nil
	}

	rule, ok := nextRoundRules[roundKey{format: game.Format, completed: completed}]
	if !ok {
		return nil, true, nil
	}

	next, err := rule(&advance{game: game, teams: teams, matches: matches})
	if err != nil {
		return nil, false, err
	}
	if len(next) == 0 {
		return nil, true, nil
	}
	return next, false, nil
}

// round returns the matches of one round in stored order.
func (a *advance) round(n int) []*models.Match {
	var out []*models.Match
	for _, m := range a.matches {
		if m.Round == n {
			out = append(out, m)
		}
	}
	return out
}

// roundCohorts splits a finished round into winner and loser teams. A
// walkover match credits its sole real team as a winner and contributes
// no loser.
func roundCohorts(matches []*models.Match) (winners, losers []*models.Team) {
	for _, m := range matches {
		if !m.Finished() {
			continue
		}
		w := winnerTeam(m)
		if w != nil && !IsByeTeam(w) {
			winners = append(winners, w)
		}
		if m.IsBye {
			continue
		}
		l := loserTeam(m)
		if l != nil && !IsByeTeam(l) {
			losers = append(losers, l)
		}
	}
	return winners, losers
}

// unplayedTeams returns the teams that appear in none of the given
// matches, the implicit byes of that round.
func (a *advance) unplayedTeams(matches []*models.Match) []*models.Team {
	used := make(map[*models.Team]bool, len(matches)*2)
	for _, m := range matches {
		if m.TeamA != nil {
			used[m.TeamA] = true
		}
		if m.TeamB != nil {
			used[m.TeamB] = true
		}
	}
	var out []*models.Team
	for _, t := range a.teams {
		if !used[t] {
			out = append(out, t)
		}
	}
	return out
}

func winnerTeam(m *models.Match) *models.Team {
	switch m.Winner {
	case models.WinnerA:
		return m.TeamA
	case models.WinnerB:
		return m.TeamB
	}
	return nil
}

func loserTeam(m *models.Match) *models.Team {
	switch m.Winner {
	case models.WinnerA:
		return m.TeamB
	case models.WinnerB:
		return m.TeamA
	}
	return nil
}

// marginOf is the winning score margin of a finished match.
func marginOf(m *models.Match) int {
	if m.ScoreA == nil || m.ScoreB == nil {
		return 0
	}
	d := *m.ScoreA - *m.ScoreB
	if d < 0 {
		return -d
	}
	return d
}

// pairCohort pairs a cohort of teams sequentially into matches of the
// given role. An odd team left over receives a walkover match instead of
// being blocked.
func pairCohort(cohort []*models.Team, gameID, round, firstNumber int, role models.BracketRole) []*models.Match {
	matches := pairSequential(cohort, gameID, round, firstNumber, role)
	if len(cohort)%2 == 1 {
		last := cohort[len(cohort)-1]
		matches = append(matches, NewByeMatch(last, gameID, round, firstNumber+len(matches), role))
	}
	return matches
}
