package election_test

import (
	"testing"

	"github.com/okian/futpack/internal/domain/election"
	"github.com/okian/futpack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTally(t *testing.T) {
	Convey("Given no ballots", t, func() {
		_, decided := election.Tally(nil)

		So(decided, ShouldBeFalse)
	})

	Convey("Given a clear majority", t, func() {
		ballots := map[string]string{
			"v1": "m10",
			"v2": "m10",
			"v3": "cr7",
		}

		Convey("Then the majority wins", func() {
			result, decided := election.Tally(ballots)
			So(decided, ShouldBeTrue)
			So(result.WinnerID, ShouldEqual, "m10")
			So(result.Votes, ShouldEqual, 2)
		})
	})

	Convey("Given a tie", t, func() {
		ballots := map[string]string{
			"v1": "m10",
			"v2": "cr7",
		}

		Convey("Then the lowest id wins deterministically", func() {
			for i := 0; i < 50; i++ {
				result, decided := election.Tally(ballots)
				So(decided, ShouldBeTrue)
				So(result.WinnerID, ShouldEqual, "cr7")
				So(result.Votes, ShouldEqual, 1)
			}
		})
	})

	Convey("Given a single ballot", t, func() {
		result, decided := election.Tally(map[string]string{"v1": "z05"})

		So(decided, ShouldBeTrue)
		So(result.WinnerID, ShouldEqual, "z05")
		So(result.Votes, ShouldEqual, 1)
	})
}

func TestFallback(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		_, decided := election.Fallback(nil)

		So(decided, ShouldBeFalse)
	})

	Convey("Given an unordered catalog", t, func() {
		catalog := []model.Player{
			{ID: "m10"},
			{ID: "cr7"},
			{ID: "z05"},
		}

		Convey("Then the lowest id wins with zero votes", func() {
			result, decided := election.Fallback(catalog)
			So(decided, ShouldBeTrue)
			So(result.WinnerID, ShouldEqual, "cr7")
			So(result.Votes, ShouldEqual, 0)
		})
	})
}
