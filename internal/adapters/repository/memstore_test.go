package repository_test

import (
	"context"
	"testing"

	repository "github.com/okian/futpack/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore_CRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore(ctx)

		Convey("When getting a missing document", func() {
			_, err := store.Get(ctx, "players", "p1")

			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("When setting then getting a document", func() {
			doc := repository.Document{"name": "Ronaldo", "rating": 91.0}
			So(store.Set(ctx, "players", "p1", doc, false), ShouldBeNil)

			got, err := store.Get(ctx, "players", "p1")
			So(err, ShouldBeNil)
			So(got["name"], ShouldEqual, "Ronaldo")

			Convey("And the returned copy does not alias the stored one", func() {
				got["name"] = "mutated"
				again, gerr := store.Get(ctx, "players", "p1")
				So(gerr, ShouldBeNil)
				So(again["name"], ShouldEqual, "Ronaldo")
			})
		})

		Convey("When setting without merge over an existing document", func() {
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "A", "club": "X"}, false), ShouldBeNil)
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "B"}, false), ShouldBeNil)

			got, err := store.Get(ctx, "players", "p1")
			So(err, ShouldBeNil)
			So(got["name"], ShouldEqual, "B")
			So(got, ShouldNotContainKey, "club")
		})

		Convey("When setting with merge", func() {
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "A", "club": "X"}, false), ShouldBeNil)
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "B"}, true), ShouldBeNil)

			got, err := store.Get(ctx, "players", "p1")
			So(err, ShouldBeNil)
			So(got["name"], ShouldEqual, "B")
			So(got["club"], ShouldEqual, "X")
		})

		Convey("When setting with merge on a missing document", func() {
			So(store.Set(ctx, "players", "p9", repository.Document{"name": "New"}, true), ShouldBeNil)

			got, err := store.Get(ctx, "players", "p9")
			So(err, ShouldBeNil)
			So(got["name"], ShouldEqual, "New")
		})

		Convey("When updating an existing document", func() {
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "A"}, false), ShouldBeNil)
			So(store.Update(ctx, "players", "p1", map[string]any{"club": "Y"}), ShouldBeNil)

			got, err := store.Get(ctx, "players", "p1")
			So(err, ShouldBeNil)
			So(got["club"], ShouldEqual, "Y")
		})

		Convey("When updating a missing document", func() {
			err := store.Update(ctx, "players", "ghost", map[string]any{"club": "Y"})

			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("When deleting", func() {
			So(store.Set(ctx, "players", "p1", repository.Document{"name": "A"}, false), ShouldBeNil)
			So(store.Delete(ctx, "players", "p1"), ShouldBeNil)

			_, err := store.Get(ctx, "players", "p1")
			So(err, ShouldEqual, repository.ErrNotFound)

			Convey("And deleting again is a no-op", func() {
				So(store.Delete(ctx, "players", "p1"), ShouldBeNil)
			})
		})
	})
}

func TestMemStore_Increment(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore(ctx)

		Convey("When incrementing a missing document", func() {
			So(store.Increment(ctx, "users", "u1", "currency", 5), ShouldBeNil)

			got, err := store.Get(ctx, "users", "u1")
			So(err, ShouldBeNil)
			So(got["currency"], ShouldEqual, 5.0)
		})

		Convey("When incrementing a missing field", func() {
			So(store.Set(ctx, "users", "u1", repository.Document{"name": "A"}, false), ShouldBeNil)
			So(store.Increment(ctx, "users", "u1", "currency", 2.5), ShouldBeNil)

			got, err := store.Get(ctx, "users", "u1")
			So(err, ShouldBeNil)
			So(got["currency"], ShouldEqual, 2.5)
			So(got["name"], ShouldEqual, "A")
		})

		Convey("When increments accumulate", func() {
			So(store.Increment(ctx, "users", "u1", "currency", 3), ShouldBeNil)
			So(store.Increment(ctx, "users", "u1", "currency", -1), ShouldBeNil)
			So(store.Increment(ctx, "users", "u1", "currency", 0.5), ShouldBeNil)

			got, err := store.Get(ctx, "users", "u1")
			So(err, ShouldBeNil)
			So(got["currency"], ShouldEqual, 2.5)
		})

		Convey("When the field holds a non-numeric value", func() {
			So(store.Set(ctx, "users", "u1", repository.Document{"currency": "lots"}, false), ShouldBeNil)
			err := store.Increment(ctx, "users", "u1", "currency", 1)

			So(err, ShouldEqual, repository.ErrNotNumeric)
		})
	})
}

func TestMemStore_List(t *testing.T) {
	ctx := context.Background()

	Convey("Given documents inserted out of order", t, func() {
		store := repository.NewMemStore(ctx,
			repository.WithSeed("players", "c", repository.Document{"n": 3.0}),
			repository.WithSeed("players", "a", repository.Document{"n": 1.0}),
			repository.WithSeed("players", "b", repository.Document{"n": 2.0}),
		)

		Convey("Then List returns them ordered by id", func() {
			docs, err := store.List(ctx, "players")
			So(err, ShouldBeNil)
			So(len(docs), ShouldEqual, 3)
			So(docs[0]["n"], ShouldEqual, 1.0)
			So(docs[1]["n"], ShouldEqual, 2.0)
			So(docs[2]["n"], ShouldEqual, 3.0)
		})

		Convey("And listing an unknown collection is empty", func() {
			docs, err := store.List(ctx, "nothing")
			So(err, ShouldBeNil)
			So(docs, ShouldBeEmpty)
		})
	})
}

func TestMemStore_Subscriptions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a collection subscription", t, func() {
		store := repository.NewMemStore(ctx)

		var snapshots [][]repository.Document
		unsub, err := store.Subscribe(ctx, "players", func(docs []repository.Document) {
			snapshots = append(snapshots, docs)
		})
		So(err, ShouldBeNil)

		Convey("When documents are written", func() {
			So(store.Set(ctx, "players", "a", repository.Document{"n": 1.0}, false), ShouldBeNil)
			So(store.Set(ctx, "players", "b", repository.Document{"n": 2.0}, false), ShouldBeNil)

			Convey("Then each write delivers a full snapshot", func() {
				So(len(snapshots), ShouldEqual, 2)
				So(len(snapshots[0]), ShouldEqual, 1)
				So(len(snapshots[1]), ShouldEqual, 2)
			})

			Convey("And writes to other collections do not notify", func() {
				So(store.Set(ctx, "users", "u", repository.Document{}, false), ShouldBeNil)
				So(len(snapshots), ShouldEqual, 2)
			})

			Convey("And no callback fires after unsubscribing", func() {
				unsub()
				So(store.Set(ctx, "players", "c", repository.Document{"n": 3.0}, false), ShouldBeNil)
				So(len(snapshots), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a single-document subscription", t, func() {
		store := repository.NewMemStore(ctx)

		var updates []repository.Document
		unsub, err := store.SubscribeDoc(ctx, "users", "u1", func(doc repository.Document) {
			updates = append(updates, doc)
		})
		So(err, ShouldBeNil)
		defer unsub()

		Convey("When the document is written and deleted", func() {
			So(store.Set(ctx, "users", "u1", repository.Document{"currency": 5.0}, false), ShouldBeNil)
			So(store.Delete(ctx, "users", "u1"), ShouldBeNil)

			Convey("Then the write delivers the document and the delete delivers nil", func() {
				So(len(updates), ShouldEqual, 2)
				So(updates[0]["currency"], ShouldEqual, 5.0)
				So(updates[1], ShouldBeNil)
			})

			Convey("And writes to sibling documents do not notify", func() {
				So(store.Set(ctx, "users", "u2", repository.Document{}, false), ShouldBeNil)
				So(len(updates), ShouldEqual, 2)
			})
		})
	})
}
