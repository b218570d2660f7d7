package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/scanprof/zenos/internal/adapters/repository"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func newStore(opts ...repository.Option) *repository.MemoryStore {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	return repository.NewMemoryStore(append([]repository.Option{repository.WithMetricsManager(m)}, opts...)...)
}

func rec(nom, prenom, classe string, vma any) roster.RawRecord {
	return roster.RawRecord{"nom": nom, "prenom": prenom, "classe": classe, "vma": vma}
}

func TestMemoryStore_Merge(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := newStore()

		Convey("When merging new participants", func() {
			stats, err := store.Merge(ctx, []roster.RawRecord{
				rec("Durand", "Léa", "5ème A", 12.5),
				rec("Martin", "Tom", "5A", 11.0),
			})

			Convey("Then they are added in order with canonical classes", func() {
				So(err, ShouldBeNil)
				So(stats, ShouldResemble, repository.MergeStats{Added: 2, Total: 2})
				all := store.All(ctx)
				So(len(all), ShouldEqual, 2)
				So(all[0].Text(roster.FieldNom), ShouldEqual, "Durand")
				So(all[0].Text(roster.FieldClasse), ShouldEqual, "5A")
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When the same participant is scanned again", func() {
			_, err := store.Merge(ctx, []roster.RawRecord{
				{"nom": "Durand", "prenom": "Léa", "classe": "5A", "vma": 12.5, "distance": "1500"},
			})
			So(err, ShouldBeNil)

			stats, err := store.Merge(ctx, []roster.RawRecord{
				{"Nom": "DURAND ", "Prénom": "léa", "Classe": "5 a", "VMA": "13,5", "distance": ""},
			})

			Convey("Then it is updated and blank fields do not erase", func() {
				So(err, ShouldBeNil)
				So(stats, ShouldResemble, repository.MergeStats{Updated: 1, Total: 1})
				all := store.All(ctx)
				So(len(all), ShouldEqual, 1)
				So(all[0].Text(roster.FieldVMA), ShouldEqual, "13,5")
				So(all[0].Text(roster.FieldDistance), ShouldEqual, "1500")
			})
		})

		Convey("When records lack every key field", func() {
			stats, err := store.Merge(ctx, []roster.RawRecord{
				{"vma": 12.0},
				{"nom": " ", "prenom": "", "classe": ""},
				rec("Petit", "Max", "4B", 10.0),
			})

			Convey("Then they are skipped", func() {
				So(err, ShouldBeNil)
				So(stats.Skipped, ShouldEqual, 2)
				So(stats.Added, ShouldEqual, 1)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := store.Merge(cctx, []roster.RawRecord{rec("A", "B", "5A", 10.0)})

			Convey("Then nothing is merged", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded store", t, func() {
		store := newStore(repository.WithMaxRecords(2))
		_, err := store.Merge(ctx, []roster.RawRecord{rec("A", "a", "5A", 10.0)})
		So(err, ShouldBeNil)

		Convey("When a merge would exceed the bound", func() {
			_, err := store.Merge(ctx, []roster.RawRecord{
				rec("B", "b", "5A", 10.0),
				rec("C", "c", "5A", 10.0),
			})

			Convey("Then it fails without partial writes", func() {
				So(errors.Is(err, repository.ErrRosterFull), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When a merge only updates", func() {
			_, err := store.Merge(ctx, []roster.RawRecord{rec("A", "a", "5A", 11.0), rec("B", "b", "5A", 9.0)})

			Convey("Then it fits", func() {
				So(err, ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestMemoryStore_Reads(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with several classes", t, func() {
		store := newStore()
		_, err := store.Merge(ctx, []roster.RawRecord{
			rec("A", "a", "5ème B", 10.0),
			rec("B", "b", "5A", 10.0),
			rec("C", "c", "5 a", 10.0),
			rec("D", "d", "", 10.0),
		})
		So(err, ShouldBeNil)

		Convey("Then Classes lists distinct canonical codes", func() {
			So(store.Classes(ctx), ShouldResemble, []string{"5A", "5B"})
		})

		Convey("Then All returns copies", func() {
			all := store.All(ctx)
			all[0]["nom"] = "changed"
			So(store.All(ctx)[0].Text(roster.FieldNom), ShouldEqual, "A")
		})

		Convey("When cleared", func() {
			store.Clear(ctx)

			Convey("Then it is empty", func() {
				So(store.Count(ctx), ShouldEqual, 0)
				So(store.All(ctx), ShouldBeEmpty)
				So(store.Classes(ctx), ShouldBeEmpty)
			})
		})
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent merges", t, func() {
		store := newStore()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = store.Merge(ctx, []roster.RawRecord{
					rec(fmt.Sprintf("N%d", i), "p", "5A", 10.0),
					rec("Shared", "p", "5A", float64(i)),
				})
				_ = store.All(ctx)
			}(i)
		}
		wg.Wait()

		Convey("Then every distinct participant is stored once", func() {
			So(store.Count(ctx), ShouldEqual, 21)
		})
	})
}
