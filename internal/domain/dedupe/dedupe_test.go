package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/scanprof/zenos/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFingerprint(t *testing.T) {
	Convey("Given raw payloads", t, func() {
		a := dedupe.Fingerprint([]byte(`[{"nom":"Durand"}]`))
		b := dedupe.Fingerprint([]byte(`[{"nom":"Durand"}]`))
		c := dedupe.Fingerprint([]byte(`[{"nom":"Martin"}]`))

		Convey("Then equal bytes share a fingerprint", func() {
			So(a, ShouldEqual, b)
			So(a, ShouldNotEqual, c)
			So(len(a), ShouldEqual, 64)
		})

		Convey("Then the empty payload has the well-known digest", func() {
			So(dedupe.Fingerprint(nil), ShouldEqual, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
		})
	})
}

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a fingerprint is new", func() {
			seen := d.SeenAndRecord(ctx, "scan-1")

			Convey("Then it is recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a fingerprint is sent twice", func() {
			d.SeenAndRecord(ctx, "scan-1")
			seen := d.SeenAndRecord(ctx, "scan-1")

			Convey("Then the second call reports it and the size holds", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a fingerprint is unrecorded", func() {
			d.SeenAndRecord(ctx, "scan-1")
			d.Unrecord(ctx, "scan-1")
			d.Unrecord(ctx, "never-seen")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "scan-1"), ShouldBeFalse)
			})
		})

		Convey("When the deduper is reset", func() {
			d.SeenAndRecord(ctx, "scan-1")
			d.SeenAndRecord(ctx, "scan-2")
			d.Reset(ctx)

			Convey("Then everything is forgotten", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "scan-2"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When more fingerprints than the bound arrive", func() {
			for i := 1; i <= 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("scan-%d", i))
			}

			Convey("Then the oldest are evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "scan-5"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "scan-4"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "scan-3"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "scan-1"), ShouldBeFalse)
			})
		})

		Convey("When an unrecorded entry frees a slot", func() {
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "c")
			d.Unrecord(ctx, "b")
			d.SeenAndRecord(ctx, "d")

			Convey("Then nothing else is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 2*dedupe.DefaultMaxSize; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("scan-%d", i))
		}

		Convey("Then it never evicts", func() {
			So(d.Size(), ShouldEqual, 2*dedupe.DefaultMaxSize)
			So(d.SeenAndRecord(ctx, "scan-0"), ShouldBeTrue)
		})
	})

	Convey("Given concurrent imports of the same payload", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			fresh int
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "same") {
					mu.Lock()
					fresh++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one wins", func() {
			So(fresh, ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
