package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/debattle/engine/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When an id is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "judgment-1")
			second := d.SeenAndRecord(ctx, "judgment-1")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an id is unrecorded after a failed commit", func() {
			So(d.SeenAndRecord(ctx, "judgment-2"), ShouldBeFalse)
			d.Unrecord(ctx, "judgment-2")

			Convey("Then the retry is treated as new", func() {
				So(d.SeenAndRecord(ctx, "judgment-2"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a deduper bounded to three ids", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When a fourth id arrives", func() {
			for i := 1; i <= 4; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("j-%d", i)), ShouldBeFalse)
			}

			Convey("Then the oldest id was evicted and the rest remain", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "j-1"), ShouldBeFalse) // evicted, so new again
				So(d.SeenAndRecord(ctx, "j-4"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent recorders of the same id", t, func() {
		d := dedupe.NewInMemoryDeduper()

		const goroutines = 32
		var wg sync.WaitGroup
		fresh := make(chan bool, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fresh <- !d.SeenAndRecord(ctx, "contested")
			}()
		}
		wg.Wait()
		close(fresh)

		Convey("Then exactly one recorder saw it first", func() {
			count := 0
			for f := range fresh {
				if f {
					count++
				}
			}
			So(count, ShouldEqual, 1)
		})
	})
}
