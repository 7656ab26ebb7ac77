package service_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/okian/futpack/internal/adapters/repository"
	service "github.com/okian/futpack/internal/app"
	"github.com/okian/futpack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// electionStore seeds a catalog plus an admin and two linked voters.
func electionStore(ctx context.Context) *repository.MemStore {
	link := func(id string, playerID string) repository.Document {
		doc, err := repository.Encode(model.User{ID: id, Role: model.UserRoleUser, LinkedPlayerID: playerID})
		if err != nil {
			panic(err)
		}
		return doc
	}
	return repository.NewMemStore(ctx,
		repository.WithSeed("players", "cr7", outfield("cr7", "Ronaldo", 91)),
		repository.WithSeed("players", "m10", outfield("m10", "Messi", 93)),
		repository.WithSeed("users", "admin", userDoc("admin", model.UserRoleAdmin, 0)),
		repository.WithSeed("users", "alice", link("alice", "cr7")),
		repository.WithSeed("users", "bob", link("bob", "m10")),
		repository.WithSeed("users", "eve", userDoc("eve", model.UserRoleUser, 0)),
	)
}

func TestService_ElectionLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given no round has ever run", t, func() {
		store := electionStore(ctx)
		svc := service.New(store)

		Convey("Then the current round reads as idle", func() {
			state, err := svc.CurrentRound(ctx)
			So(err, ShouldBeNil)
			So(state.IsActive, ShouldBeFalse)
		})

		Convey("And casting a ballot fails", func() {
			So(svc.CastBallot(ctx, "alice", "cr7"), ShouldEqual, service.ErrRoundNotActive)
		})

		Convey("And concluding fails", func() {
			_, err := svc.EndRound(ctx, "admin")
			So(err, ShouldEqual, service.ErrRoundNotActive)
		})
	})

	Convey("Given an active round", t, func() {
		store := electionStore(ctx)
		svc := service.New(store)
		So(svc.StartRound(ctx, "admin", "matchday 4"), ShouldBeNil)

		Convey("When two voters split their ballots", func() {
			So(svc.CastBallot(ctx, "alice", "m10"), ShouldBeNil)
			So(svc.CastBallot(ctx, "bob", "cr7"), ShouldBeNil)

			Convey("Then the round concludes with the tie broken to the lowest id", func() {
				entry, err := svc.EndRound(ctx, "admin")
				So(err, ShouldBeNil)
				So(entry, ShouldNotBeNil)
				So(entry.WinnerID, ShouldEqual, "cr7")
				So(entry.Votes, ShouldEqual, 1)
				So(entry.RoundLabel, ShouldEqual, "matchday 4")

				Convey("And exactly one history entry was appended", func() {
					history, herr := svc.History(ctx)
					So(herr, ShouldBeNil)
					So(len(history), ShouldEqual, 1)
					So(history[0].ID, ShouldEqual, entry.ID)
				})

				Convey("And the state resets to idle with cleared ballots", func() {
					state, serr := svc.CurrentRound(ctx)
					So(serr, ShouldBeNil)
					So(state.IsActive, ShouldBeFalse)
					So(state.Ballots, ShouldBeEmpty)
				})
			})
		})

		Convey("When a voter re-casts", func() {
			So(svc.CastBallot(ctx, "alice", "cr7"), ShouldBeNil)
			So(svc.CastBallot(ctx, "alice", "m10"), ShouldBeNil)
			So(svc.CastBallot(ctx, "bob", "m10"), ShouldBeNil)

			Convey("Then only the last ballot counts", func() {
				entry, err := svc.EndRound(ctx, "admin")
				So(err, ShouldBeNil)
				So(entry.WinnerID, ShouldEqual, "m10")
				So(entry.Votes, ShouldEqual, 2)
			})
		})

		Convey("When a voter without a linked player casts", func() {
			So(svc.CastBallot(ctx, "eve", "cr7"), ShouldEqual, service.ErrNoLinkedPlayer)
		})

		Convey("When an unknown voter casts", func() {
			So(svc.CastBallot(ctx, "ghost", "cr7"), ShouldEqual, service.ErrNoLinkedPlayer)
		})

		Convey("When a ballot names an unknown target", func() {
			So(svc.CastBallot(ctx, "alice", "nobody"), ShouldEqual, service.ErrInvalidBallotTarget)
		})

		Convey("When the round ends with no ballots", func() {
			entry, err := svc.EndRound(ctx, "admin")

			Convey("Then a zero-vote winner is drawn from the catalog", func() {
				So(err, ShouldBeNil)
				So(entry, ShouldNotBeNil)
				So(entry.WinnerID, ShouldEqual, "cr7")
				So(entry.Votes, ShouldEqual, 0)
			})
		})

		Convey("When the round is restarted while active", func() {
			So(svc.CastBallot(ctx, "alice", "m10"), ShouldBeNil)
			So(svc.StartRound(ctx, "admin", "matchday 5"), ShouldBeNil)

			Convey("Then the earlier ballots are discarded", func() {
				state, err := svc.CurrentRound(ctx)
				So(err, ShouldBeNil)
				So(state.IsActive, ShouldBeTrue)
				So(state.RoundLabel, ShouldEqual, "matchday 5")
				So(state.Ballots, ShouldBeEmpty)
			})

			Convey("And no history entry was written for the discarded round", func() {
				history, err := svc.History(ctx)
				So(err, ShouldBeNil)
				So(history, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an active round with neither ballots nor catalog", t, func() {
		store := repository.NewMemStore(ctx,
			repository.WithSeed("users", "admin", userDoc("admin", model.UserRoleAdmin, 0)),
		)
		svc := service.New(store)
		So(svc.StartRound(ctx, "admin", "empty"), ShouldBeNil)

		Convey("When the round ends", func() {
			entry, err := svc.EndRound(ctx, "admin")

			Convey("Then it closes without a history entry", func() {
				So(err, ShouldBeNil)
				So(entry, ShouldBeNil)

				history, herr := svc.History(ctx)
				So(herr, ShouldBeNil)
				So(history, ShouldBeEmpty)

				state, serr := svc.CurrentRound(ctx)
				So(serr, ShouldBeNil)
				So(state.IsActive, ShouldBeFalse)
			})
		})
	})
}

func TestService_History(t *testing.T) {
	ctx := context.Background()

	Convey("Given two concluded rounds", t, func() {
		now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
		store := electionStore(ctx)
		svc := service.New(store, service.WithClock(func() time.Time { return now }))

		So(svc.StartRound(ctx, "admin", "round one"), ShouldBeNil)
		So(svc.CastBallot(ctx, "alice", "cr7"), ShouldBeNil)
		_, err := svc.EndRound(ctx, "admin")
		So(err, ShouldBeNil)

		now = now.Add(time.Hour)
		So(svc.StartRound(ctx, "admin", "round two"), ShouldBeNil)
		So(svc.CastBallot(ctx, "bob", "m10"), ShouldBeNil)
		_, err = svc.EndRound(ctx, "admin")
		So(err, ShouldBeNil)

		Convey("Then history lists the most recent round first", func() {
			history, herr := svc.History(ctx)
			So(herr, ShouldBeNil)
			So(len(history), ShouldEqual, 2)
			So(history[0].RoundLabel, ShouldEqual, "round two")
			So(history[1].RoundLabel, ShouldEqual, "round one")
		})
	})
}
