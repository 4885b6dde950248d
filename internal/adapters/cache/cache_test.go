package cache_test

import (
	"context"
	"fmt"
	"testing"

	cache "github.com/okian/keel/internal/adapters/cache"
	report "github.com/okian/keel/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryStore(t *testing.T) {
	Convey("Given an in-memory report store", t, func() {
		ctx := context.Background()
		store := cache.NewInMemoryStore()

		Convey("When storing and retrieving a report", func() {
			rpt := &report.StabilityReport{AnalysisID: "id-1"}
			store.Put(ctx, "key-1", rpt)

			Convey("Then the same pointer comes back", func() {
				got, ok := store.Get(ctx, "key-1")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, rpt)
				So(store.Size(), ShouldEqual, 1)
			})
		})

		Convey("When fetching an unknown key", func() {
			got, ok := store.Get(ctx, "missing")

			Convey("Then the miss is explicit", func() {
				So(ok, ShouldBeFalse)
				So(got, ShouldBeNil)
			})
		})

		Convey("When overwriting an existing key", func() {
			store.Put(ctx, "key-1", &report.StabilityReport{AnalysisID: "old"})
			replacement := &report.StabilityReport{AnalysisID: "new"}
			store.Put(ctx, "key-1", replacement)

			Convey("Then the entry is replaced without growing the store", func() {
				got, ok := store.Get(ctx, "key-1")
				So(ok, ShouldBeTrue)
				So(got.AnalysisID, ShouldEqual, "new")
				So(store.Size(), ShouldEqual, 1)
			})
		})

		Convey("When storing a nil report", func() {
			store.Put(ctx, "key-nil", nil)

			Convey("Then nothing is cached", func() {
				_, ok := store.Get(ctx, "key-nil")
				So(ok, ShouldBeFalse)
				So(store.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store bounded to two entries", t, func() {
		ctx := context.Background()
		store := cache.NewInMemoryStore(cache.WithMaxEntries(2))

		Convey("When inserting past the bound", func() {
			for i := 1; i <= 3; i++ {
				store.Put(ctx, fmt.Sprintf("key-%d", i), &report.StabilityReport{AnalysisID: fmt.Sprintf("id-%d", i)})
			}

			Convey("Then the oldest entry is evicted", func() {
				So(store.Size(), ShouldEqual, 2)

				_, ok := store.Get(ctx, "key-1")
				So(ok, ShouldBeFalse)

				_, ok = store.Get(ctx, "key-2")
				So(ok, ShouldBeTrue)
				_, ok = store.Get(ctx, "key-3")
				So(ok, ShouldBeTrue)
			})
		})
	})
}
