package types_test

import (
	"encoding/json"
	"testing"

	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewGroupView(t *testing.T) {
	Convey("Given a group of one girl and three boys", t, func() {
		g := model.Group{
			{Nom: "A", Sexe: model.Female, Role: model.RoleHigh},
			{Nom: "B", Sexe: model.Male, Role: model.RoleMidHigh},
			{Nom: "C", Sexe: model.Male, Role: model.RoleMidLow},
			{Nom: "D", Sexe: model.Male, Role: model.RoleBottom},
		}

		Convey("When building its view", func() {
			v := types.NewGroupView("Groupe 1", g)

			Convey("Then counts and members follow the group", func() {
				So(v.Label, ShouldEqual, "Groupe 1")
				So(v.Females, ShouldEqual, 1)
				So(v.Males, ShouldEqual, 3)
				So(v.Mixed, ShouldBeTrue)
				So(len(v.Members), ShouldEqual, 4)
			})

			Convey("Then the members do not alias the group", func() {
				v.Members[0].Nom = "Z"
				So(g[0].Nom, ShouldEqual, "A")
			})
		})
	})

	Convey("Given a single-gender group", t, func() {
		v := types.NewGroupView("Groupe 2", model.Group{
			{Sexe: model.Male}, {Sexe: model.Male}, {Sexe: model.Unknown}, {Sexe: model.Male},
		})

		Convey("Then it is not mixed", func() {
			So(v.Mixed, ShouldBeFalse)
			So(v.Females, ShouldEqual, 0)
			So(v.Males, ShouldEqual, 3)
		})
	})
}

func TestView(t *testing.T) {
	Convey("Given a view", t, func() {
		v := types.View{
			SessionID: "s-1",
			Groups: []types.GroupView{
				{Label: "Groupe 1", Mixed: true},
				{Label: "Groupe 2"},
				{Label: "Groupe 3", Mixed: true},
			},
		}

		Convey("Then MixedCount counts mixed groups", func() {
			So(v.MixedCount(), ShouldEqual, 2)
		})

		Convey("Then it encodes with snake_case keys", func() {
			b, err := json.Marshal(v)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"session_id":"s-1"`)
			So(string(b), ShouldContainSubstring, `"auto_swaps":null`)
		})
	})
}
