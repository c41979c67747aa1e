package score_test

import (
	"testing"

	score "github.com/gymlab/palaestra/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given digit shorthand input", t, func() {
		Convey("Then three and four digit entries get a decimal point two from the right", func() {
			p, err := score.Parse("956")
			So(err, ShouldBeNil)
			So(p.Empty, ShouldBeFalse)
			So(p.Value, ShouldEqual, 9.56)

			p, err = score.Parse("1000")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 10.00)

			p, err = score.Parse("875")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 8.75)
		})

		Convey("Then a two digit entry defaults to a half point", func() {
			p, err := score.Parse("95")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.5)

			p, err = score.Parse("87")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 8.5)
		})

		Convey("Then a single digit becomes a whole score", func() {
			p, err := score.Parse("9")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.0)
		})

		Convey("Then five or more digits are rejected", func() {
			_, err := score.Parse("10000")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "malformed")
		})

		Convey("Then non-digit noise is stripped before expansion", func() {
			p, err := score.Parse(" 9x5!6 ")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.56)
		})
	})

	Convey("Given input with no digits", t, func() {
		Convey("Then the parser signals no value, not an error", func() {
			for _, raw := range []string{"", ".", "abc", "  "} {
				p, err := score.Parse(raw)
				So(err, ShouldBeNil)
				So(p.Empty, ShouldBeTrue)
			}
		})
	})

	Convey("Given literal decimal input", t, func() {
		Convey("Then it is honored without reinterpretation", func() {
			p, err := score.Parse("9.567")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.567)

			p, err = score.Parse("9.5")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.5)
		})

		Convey("Then a decimal whose digits look like shorthand still wins", func() {
			// "8.7" strips to two digits; the half-point expansion must
			// not turn it into 8.50.
			p, err := score.Parse("8.7")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 8.7)

			p, err = score.Parse("0.3")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 0.3)

			p, err = score.Parse("9.25")
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.25)
		})

		Convey("Then out-of-range decimals are rejected", func() {
			_, err := score.Parse("10.001")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given shorthand that expands out of range", t, func() {
		Convey("Then the parse fails", func() {
			// 1050 -> 10.50, above the ceiling, and the raw text is
			// no better as a literal number.
			_, err := score.Parse("1050")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given the canonical rounding", t, func() {
		Convey("Then values snap to three decimal places", func() {
			So(score.Round(9.5678), ShouldEqual, 9.568)
			So(score.Round(9.1234), ShouldEqual, 9.123)
		})

		Convey("Then rounding is idempotent", func() {
			for _, v := range []float64{0, 9.5, 9.567, 10, 0.001, 8.333} {
				So(score.Round(score.Round(v)), ShouldEqual, score.Round(v))
			}
		})

		Convey("Then parse and format round-trip", func() {
			p, err := score.Parse(score.Format(9.568))
			So(err, ShouldBeNil)
			So(p.Value, ShouldEqual, 9.568)
		})
	})
}

func TestValid(t *testing.T) {
	Convey("Given the score range", t, func() {
		So(score.Valid(0), ShouldBeTrue)
		So(score.Valid(10), ShouldBeTrue)
		So(score.Valid(9.999), ShouldBeTrue)
		So(score.Valid(-0.001), ShouldBeFalse)
		So(score.Valid(10.001), ShouldBeFalse)
	})
}
