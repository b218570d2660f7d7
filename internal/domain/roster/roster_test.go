package roster_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseVMA(t *testing.T) {
	Convey("Given raw VMA values", t, func() {
		Convey("Then numbers and numeric text are accepted", func() {
			v, ok := roster.ParseVMA(12.5)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 12.5)

			v, ok = roster.ParseVMA(" 13 ")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 13.0)

			v, ok = roster.ParseVMA("14,5")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 14.5)

			v, ok = roster.ParseVMA(json.Number("15.25"))
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 15.25)
		})

		Convey("And blank, malformed and non-finite values are rejected", func() {
			for _, in := range []any{nil, "", "abc", math.NaN(), math.Inf(1), "Inf", true} {
				_, ok := roster.ParseVMA(in)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestNormalizeSex(t *testing.T) {
	Convey("Given free-text sexes", t, func() {
		So(roster.NormalizeSex("F"), ShouldEqual, model.Female)
		So(roster.NormalizeSex(" fille"), ShouldEqual, model.Female)
		So(roster.NormalizeSex("G"), ShouldEqual, model.Male)
		So(roster.NormalizeSex("garçon"), ShouldEqual, model.Male)
		So(roster.NormalizeSex("M"), ShouldEqual, model.Male)
		So(roster.NormalizeSex(""), ShouldEqual, model.Unknown)
		So(roster.NormalizeSex("?"), ShouldEqual, model.Unknown)
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a record with capitalised and aliased keys", t, func() {
		r := roster.RawRecord{
			"Nom":    "Durand",
			"Prénom": "Léa",
			"CLASS":  "5ème A",
			"Gender": "F",
			"VMA":    "12",
			"meters": 1500.0,
		}

		Convey("Then canonical fields resolve through their aliases", func() {
			So(r.Text(roster.FieldNom), ShouldEqual, "Durand")
			So(r.Text(roster.FieldPrenom), ShouldEqual, "Léa")
			So(r.Text(roster.FieldClasse), ShouldEqual, "5ème A")
			So(r.Text(roster.FieldSexe), ShouldEqual, "F")
			So(r.Text(roster.FieldDistance), ShouldEqual, "1500")
		})

		Convey("When normalising", func() {
			n := roster.Normalize(r)

			Convey("Then canonical keys are filled and the class is canonical", func() {
				So(n[roster.FieldNom], ShouldEqual, "Durand")
				So(n[roster.FieldClasse], ShouldEqual, "5A")
				So(n["Nom"], ShouldEqual, "Durand")
			})

			Convey("And the key is stable", func() {
				So(roster.Key(n), ShouldEqual, "durand|léa|5a")
			})
		})

		Convey("When the lower-case key is present but empty", func() {
			r2 := roster.RawRecord{"nom": "", "Nom": "Martin"}

			Convey("Then the next alias wins", func() {
				So(r2.Text(roster.FieldNom), ShouldEqual, "Martin")
			})
		})
	})
}

func TestEligible(t *testing.T) {
	Convey("Given a mixed roster", t, func() {
		records := []roster.RawRecord{
			{"nom": "A", "classe": "5ème A", "sexe": "F", "vma": 12.0},
			{"nom": "B", "classe": "5A", "sexe": "G", "vma": "13"},
			{"nom": "C", "classe": "5B", "sexe": "M", "vma": 14.0},
			{"nom": "D", "classe": "5 a", "sexe": "", "vma": "n/a"},
			{"nom": "E", "classe": "5a", "sexe": "f", "vma": 9.5},
		}

		Convey("When ignoring the class", func() {
			sel := roster.Eligible(records, roster.AllClasses)

			Convey("Then only the malformed VMA is dropped", func() {
				So(len(sel.Candidates), ShouldEqual, 4)
				So(sel.Rejected, ShouldEqual, 1)
				So(sel.Candidates[2].Sexe, ShouldEqual, model.Male)
				So(sel.Candidates[0].Classe, ShouldEqual, "5A")
			})
		})

		Convey("When filtering on a class label", func() {
			sel := roster.Eligible(records, "5ème A")

			Convey("Then labels are compared canonically", func() {
				So(len(sel.Candidates), ShouldEqual, 3)
				So(sel.Filtered, ShouldEqual, 1)
			})
		})

		Convey("When the filter has no canonical code", func() {
			sel := roster.Eligible(records, "--")

			Convey("Then every class is kept", func() {
				So(len(sel.Candidates), ShouldEqual, 4)
				So(sel.Filtered, ShouldEqual, 0)
			})
		})

		Convey("When fewer than four candidates remain", func() {
			_, err := roster.Candidates(records, "5A")

			Convey("Then it reports not enough participants", func() {
				So(errors.Is(err, roster.ErrNotEnoughParticipants), ShouldBeTrue)
			})
		})

		Convey("When four or more candidates remain", func() {
			sel, err := roster.Candidates(records, roster.AllClasses)

			Convey("Then no error is returned", func() {
				So(err, ShouldBeNil)
				So(len(sel.Candidates), ShouldEqual, 4)
			})
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given scanned payloads", t, func() {
		Convey("When the payload is a list of participants", func() {
			recs, err := roster.Decode([]byte(`[{"nom":"A","prenom":"a","vma":12},{"nom":"B","prenom":"b","vma":13},{"foo":1}]`))

			Convey("Then non-participant items are skipped", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
			})
		})

		Convey("When the payload is a single participant", func() {
			recs, err := roster.Decode([]byte(`{"Nom":"A","Classe":"6ème B","VMA":"11,5"}`))

			Convey("Then it is normalised", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 1)
				So(recs[0][roster.FieldClasse], ShouldEqual, "6B")
				p, ok := roster.Participant(recs[0])
				So(ok, ShouldBeTrue)
				So(p.VMA, ShouldEqual, 11.5)
			})
		})

		Convey("When the payload is an application bundle", func() {
			recs, err := roster.Decode([]byte(`{"appName":"Demi-Cooper","data":{"participants":[{"nom":"A","sexe":"F"},{"nom":"B","sexe":"G"}]}}`))

			Convey("Then the nested list is found", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
			})
		})

		Convey("When the payload is not JSON", func() {
			_, err := roster.Decode([]byte(`not json`))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, roster.ErrInvalidPayload), ShouldBeTrue)
			})
		})

		Convey("When the payload holds no participant", func() {
			_, err := roster.Decode([]byte(`{"hello":"world"}`))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, roster.ErrInvalidPayload), ShouldBeTrue)
			})
		})
	})
}
