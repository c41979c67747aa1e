package meet_test

import (
	"testing"

	meet "github.com/gymlab/palaestra/internal/domain/meet"
	"github.com/gymlab/palaestra/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func roster() []model.Athlete {
	return []model.Athlete{
		{ID: "a1", Name: "Ava"},
		{ID: "a2", Name: "Mia"},
		{ID: "a3", Name: "Zoe"},
	}
}

func TestNew(t *testing.T) {
	Convey("Given a roster", t, func() {
		Convey("When a meet is created", func() {
			m, err := meet.New("m1", "City Invitational", "2026-03-07", "g1", roster())
			So(err, ShouldBeNil)

			Convey("Then all four events start empty and not completed", func() {
				So(len(m.Records), ShouldEqual, 4)
				for _, e := range model.Events {
					So(m.Records[e].Completed, ShouldBeFalse)
					So(m.Records[e].Scores, ShouldBeEmpty)
				}
				So(m.ActiveEvent, ShouldBeEmpty)
			})

			Convey("Then the roster is a snapshot copy", func() {
				src := roster()
				m2, err := meet.New("m2", "Sectionals", "2026-03-08", "g1", src)
				So(err, ShouldBeNil)
				src[0].Name = "changed"
				So(m2.Roster[0].Name, ShouldEqual, "Ava")
			})
		})

		Convey("When the roster is empty", func() {
			_, err := meet.New("m1", "Empty", "2026-03-07", "g1", nil)
			So(err, ShouldEqual, meet.ErrNoActiveRoster)
		})
	})
}

func TestWithScore(t *testing.T) {
	Convey("Given an in-progress meet", t, func() {
		m, err := meet.New("m1", "City Invitational", "2026-03-07", "g1", roster())
		So(err, ShouldBeNil)

		Convey("When a score is recorded", func() {
			next, err := meet.WithScore(m, model.Bars, "a1", ptr(9.5))
			So(err, ShouldBeNil)

			Convey("Then the new snapshot holds it and the old one does not", func() {
				v, ok := next.Score(model.Bars, "a1")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 9.5)
				_, ok = m.Score(model.Bars, "a1")
				So(ok, ShouldBeFalse)
			})

			Convey("Then a second write replaces, not appends", func() {
				next2, err := meet.WithScore(next, model.Bars, "a1", ptr(9.7))
				So(err, ShouldBeNil)
				So(len(next2.Records[model.Bars].Scores), ShouldEqual, 1)
				v, _ := next2.Score(model.Bars, "a1")
				So(v, ShouldEqual, 9.7)
			})

			Convey("Then a nil score clears the entry", func() {
				next2, err := meet.WithScore(next, model.Bars, "a1", nil)
				So(err, ShouldBeNil)
				_, ok := next2.Score(model.Bars, "a1")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the athlete is not on the roster", func() {
			_, err := meet.WithScore(m, model.Bars, "stranger", ptr(9.0))
			So(err, ShouldWrap, meet.ErrUnknownAthlete)
		})

		Convey("When the event tag is not one of the four", func() {
			_, err := meet.WithScore(m, "rings", "a1", ptr(9.0))
			So(err, ShouldWrap, meet.ErrUnknownEvent)
		})

		Convey("When the event is already completed", func() {
			scored := m
			for _, a := range roster() {
				scored, err = meet.WithScore(scored, model.Beam, a.ID, ptr(9.0))
				So(err, ShouldBeNil)
			}
			done, err := meet.WithEventComplete(scored, model.Beam)
			So(err, ShouldBeNil)

			Convey("Then edits are still permitted", func() {
				next, err := meet.WithScore(done, model.Beam, "a1", ptr(9.9))
				So(err, ShouldBeNil)
				v, _ := next.Score(model.Beam, "a1")
				So(v, ShouldEqual, 9.9)
				So(next.Records[model.Beam].Completed, ShouldBeTrue)
			})
		})
	})
}

func TestWithEventComplete(t *testing.T) {
	Convey("Given a meet with partial scores on bars", t, func() {
		m, err := meet.New("m1", "City Invitational", "2026-03-07", "g1", roster())
		So(err, ShouldBeNil)
		m, err = meet.WithScore(m, model.Bars, "a1", ptr(9.5))
		So(err, ShouldBeNil)
		m, err = meet.WithScore(m, model.Bars, "a2", ptr(9.2))
		So(err, ShouldBeNil)

		Convey("When completion is attempted with an athlete unscored", func() {
			_, err := meet.WithEventComplete(m, model.Bars)
			So(err, ShouldWrap, meet.ErrIncompleteScores)

			Convey("Then the record stays open", func() {
				So(m.Records[model.Bars].Completed, ShouldBeFalse)
			})
		})

		Convey("When the last required score lands", func() {
			m, err = meet.WithScore(m, model.Bars, "a3", ptr(8.8))
			So(err, ShouldBeNil)
			m, err = meet.WithActiveEvent(m, model.Bars)
			So(err, ShouldBeNil)

			done, err := meet.WithEventComplete(m, model.Bars)
			So(err, ShouldBeNil)

			Convey("Then the flag flips and the focus clears", func() {
				So(done.Records[model.Bars].Completed, ShouldBeTrue)
				So(done.ActiveEvent, ShouldBeEmpty)
			})

			Convey("Then completing a different focused event keeps the focus", func() {
				focused, err := meet.WithActiveEvent(done, model.Floor)
				So(err, ShouldBeNil)
				for _, a := range roster() {
					focused, err = meet.WithScore(focused, model.Vault, a.ID, ptr(9.0))
					So(err, ShouldBeNil)
				}
				next, err := meet.WithEventComplete(focused, model.Vault)
				So(err, ShouldBeNil)
				So(next.ActiveEvent, ShouldEqual, model.Floor)
			})
		})
	})
}

func TestComplete(t *testing.T) {
	Convey("Given a meet", t, func() {
		m, err := meet.New("m1", "City Invitational", "2026-03-07", "g1", roster())
		So(err, ShouldBeNil)

		Convey("Then it reports complete only after all four events", func() {
			So(meet.Complete(m), ShouldBeFalse)
			for _, e := range model.Events {
				for _, a := range roster() {
					m, err = meet.WithScore(m, e, a.ID, ptr(9.0))
					So(err, ShouldBeNil)
				}
				m, err = meet.WithEventComplete(m, e)
				So(err, ShouldBeNil)
			}
			So(meet.Complete(m), ShouldBeTrue)
		})
	})
}
