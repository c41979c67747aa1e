// Package results computes standings from a meet snapshot.
//
// Compute is a pure function: it reads the meet value it is given and
// holds no state of its own, so callers re-invoke it after every
// mutation for a live preview and once more at completion for the
// archived record. Nothing here memoizes.
package results

import (
	"sort"

	"github.com/gymlab/palaestra/internal/domain/model"
)

// teamSize is how many all-around totals count toward the team total.
const teamSize = 3

// Compute derives per-athlete totals, ranks and the team total from
// the meet state. An athlete's total is the sum of whatever scores
// are present, so a partially scored meet yields provisional totals.
func Compute(m *model.Meet) model.MeetResults {
	ranked := make([]model.Result, 0, len(m.Roster))
	for _, a := range m.Roster {
		r := model.Result{
			Athlete:     a,
			EventScores: make(map[model.Event]*float64, len(model.Events)),
		}
		for _, e := range model.Events {
			if v, ok := m.Score(e, a.ID); ok {
				v := v
				r.EventScores[e] = &v
				r.TotalScore += v
			} else {
				r.EventScores[e] = nil
			}
		}
		ranked = append(ranked, r)
	}

	// Stable sort keeps roster order between tied totals, so ties get
	// distinct consecutive ranks rather than a shared rank.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	top := len(ranked)
	if top > teamSize {
		top = teamSize
	}

	completed := make([]model.Event, 0, len(model.Events))
	for _, e := range model.Events {
		if m.Records[e].Completed {
			completed = append(completed, e)
		}
	}

	return model.MeetResults{
		Results:         ranked,
		TeamTotal:       TeamTotal(ranked),
		TopThree:        append([]model.Result(nil), ranked[:top]...),
		CompletedEvents: completed,
	}
}

// TeamTotal sums the top three all-around totals. It sorts its own
// copy with the same descending order Compute uses, so the two can
// never diverge even when handed unranked input.
func TeamTotal(rs []model.Result) float64 {
	sorted := append([]model.Result(nil), rs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	if len(sorted) > teamSize {
		sorted = sorted[:teamSize]
	}
	var total float64
	for _, r := range sorted {
		total += r.TotalScore
	}
	return total
}
