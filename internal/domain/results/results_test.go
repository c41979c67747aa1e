package results_test

import (
	"testing"

	meet "github.com/gymlab/palaestra/internal/domain/meet"
	"github.com/gymlab/palaestra/internal/domain/model"
	results "github.com/gymlab/palaestra/internal/domain/results"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

// meetWithTotals builds a meet where each athlete carries the given
// total as a single bars score-equivalent spread over events.
func meetWithTotals(t *testing.T, totals map[string]float64, order []model.Athlete) *model.Meet {
	t.Helper()
	m, err := meet.New("m1", "Invitational", "2026-03-07", "g1", order)
	if err != nil {
		t.Fatal(err)
	}
	// Spread each total evenly over the four events to stay in range.
	for id, total := range totals {
		per := total / 4
		for _, e := range model.Events {
			m, err = meet.WithScore(m, e, id, &per)
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	return m
}

func TestComputeRanking(t *testing.T) {
	Convey("Given athletes with totals 9.0, 9.5, 9.5, 8.0 in roster order", t, func() {
		order := []model.Athlete{
			{ID: "A", Name: "A"}, {ID: "B", Name: "B"},
			{ID: "C", Name: "C"}, {ID: "D", Name: "D"},
		}
		m := meetWithTotals(t, map[string]float64{"A": 9.0, "B": 9.5, "C": 9.5, "D": 8.0}, order)

		Convey("When standings are computed", func() {
			res := results.Compute(m)

			Convey("Then ties get distinct consecutive ranks by roster order", func() {
				rankByID := map[string]int{}
				for _, r := range res.Results {
					rankByID[r.Athlete.ID] = r.Rank
				}
				So(rankByID["A"], ShouldEqual, 3)
				So(rankByID["B"], ShouldEqual, 1)
				So(rankByID["C"], ShouldEqual, 2)
				So(rankByID["D"], ShouldEqual, 4)
			})

			Convey("Then the ranked sequence is ordered B, C, A, D", func() {
				ids := []string{}
				for _, r := range res.Results {
					ids = append(ids, r.Athlete.ID)
				}
				So(ids, ShouldResemble, []string{"B", "C", "A", "D"})
			})
		})
	})
}

func TestTeamTotal(t *testing.T) {
	Convey("Given five athletes with totals 38.2, 37.9, 39.0, 36.5, 35.0", t, func() {
		order := []model.Athlete{
			{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}, {ID: "p5"},
		}
		m := meetWithTotals(t, map[string]float64{
			"p1": 38.2, "p2": 37.9, "p3": 39.0, "p4": 36.5, "p5": 35.0,
		}, order)

		Convey("When standings are computed", func() {
			res := results.Compute(m)

			Convey("Then the team total is the sum of the top three", func() {
				So(res.TeamTotal, ShouldAlmostEqual, 115.1, 0.0001)
			})

			Convey("Then the top three are the three highest totals", func() {
				So(len(res.TopThree), ShouldEqual, 3)
				So(res.TopThree[0].Athlete.ID, ShouldEqual, "p3")
				So(res.TopThree[1].Athlete.ID, ShouldEqual, "p1")
				So(res.TopThree[2].Athlete.ID, ShouldEqual, "p2")
			})
		})
	})

	Convey("Given fewer than three athletes", t, func() {
		order := []model.Athlete{{ID: "a"}, {ID: "b"}}
		m := meetWithTotals(t, map[string]float64{"a": 36.5, "b": 36.2}, order)

		Convey("Then everyone counts toward the team total", func() {
			res := results.Compute(m)
			So(res.TeamTotal, ShouldAlmostEqual, 72.7, 0.0001)
			So(len(res.TopThree), ShouldEqual, 2)
		})
	})
}

func TestComputePartialMeet(t *testing.T) {
	Convey("Given a meet with only bars scored", t, func() {
		order := []model.Athlete{{ID: "a1", Name: "Ava"}, {ID: "a2", Name: "Mia"}}
		m, err := meet.New("m1", "Invitational", "2026-03-07", "g1", order)
		So(err, ShouldBeNil)
		m, err = meet.WithScore(m, model.Bars, "a1", ptr(9.5))
		So(err, ShouldBeNil)

		Convey("When standings are computed", func() {
			res := results.Compute(m)

			Convey("Then unscored events are nil and totals are provisional sums", func() {
				var ava model.Result
				for _, r := range res.Results {
					if r.Athlete.ID == "a1" {
						ava = r
					}
				}
				So(*ava.EventScores[model.Bars], ShouldEqual, 9.5)
				So(ava.EventScores[model.Beam], ShouldBeNil)
				So(ava.TotalScore, ShouldEqual, 9.5)
			})

			Convey("Then no events are reported completed", func() {
				So(res.CompletedEvents, ShouldBeEmpty)
			})
		})

		Convey("When bars is marked complete", func() {
			m, err = meet.WithScore(m, model.Bars, "a2", ptr(9.2))
			So(err, ShouldBeNil)
			m, err = meet.WithEventComplete(m, model.Bars)
			So(err, ShouldBeNil)

			Convey("Then completed events lists it in fixed order", func() {
				res := results.Compute(m)
				So(res.CompletedEvents, ShouldResemble, []model.Event{model.Bars})
			})
		})
	})
}

func TestComputeIsPure(t *testing.T) {
	Convey("Given the same meet snapshot", t, func() {
		order := []model.Athlete{{ID: "a"}, {ID: "b"}}
		m := meetWithTotals(t, map[string]float64{"a": 36.0, "b": 35.0}, order)

		Convey("Then repeated computation yields identical results", func() {
			first := results.Compute(m)
			second := results.Compute(m)
			So(second, ShouldResemble, first)
		})

		Convey("Then mutating returned results leaves the meet alone", func() {
			res := results.Compute(m)
			res.Results[0].TotalScore = 0
			again := results.Compute(m)
			So(again.Results[0].TotalScore, ShouldAlmostEqual, 36.0, 0.0001)
		})
	})
}
