package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scanprof/zenos/internal/cli"
	"github.com/scanprof/zenos/internal/domain/roster"
	"github.com/scanprof/zenos/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// writeRoster stores twelve 5A pupils (VMA 10 to 21, girls at 21, 16 and 15)
// plus two 4B pupils in a temp file and returns its path.
func writeRoster(t *testing.T) string {
	girls := map[int]bool{21: true, 16: true, 15: true}
	rows := make([]string, 0, 14)
	for v := 10; v <= 21; v++ {
		sexe := "G"
		if girls[v] {
			sexe = "F"
		}
		rows = append(rows, fmt.Sprintf(`{"nom":"N%d","prenom":"P%d","classe":"5ème A","sexe":%q,"vma":%d}`, v, v, sexe, v))
	}
	rows = append(rows,
		`{"nom":"X","prenom":"x","classe":"4B","sexe":"F","vma":12}`,
		`{"nom":"Y","prenom":"y","classe":"4 B","sexe":"G","vma":13}`,
	)
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte("["+strings.Join(rows, ",")+"]"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(stdin string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGroupCommand(t *testing.T) {
	Convey("Given a roster file", t, func() {
		path := writeRoster(t)

		Convey("When grouping the class as text", func() {
			out, _, err := run("", "group", path, "--classe", "5ème A")

			Convey("Then the groups and the open suggestions are printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Classe 5A")
				So(out, ShouldContainSubstring, "3 groupes, 2 mixtes, 0 hors groupe")
				So(out, ShouldContainSubstring, "Groupe 1 (0F/4G, non mixte)")
				So(out, ShouldContainSubstring, "Échanges automatiques")
				So(out, ShouldContainSubstring, "[0] Échanger")
				So(out, ShouldContainSubstring, "[1] Échanger")
			})
		})

		Convey("When applying every suggestion", func() {
			out, _, err := run("", "group", path, "--classe", "5A", "--apply-all")

			Convey("Then every group is mixed and nothing is suggested", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "3 groupes, 3 mixtes")
				So(out, ShouldNotContainSubstring, "Suggestions")
			})
		})

		Convey("When applying one suggestion by index", func() {
			out, _, err := run("", "group", path, "--classe", "5A", "--swap", "0", "--format", "json")

			Convey("Then the JSON view shows the repaired groups", func() {
				So(err, ShouldBeNil)
				var view types.View
				So(json.Unmarshal([]byte(out), &view), ShouldBeNil)
				So(view.Groups, ShouldHaveLength, 3)
				So(view.MixedCount(), ShouldEqual, 3)
				So(view.Stats.Swaps, ShouldEqual, 1)
			})
		})

		Convey("When the swap index is out of range", func() {
			_, _, err := run("", "group", path, "--classe", "5A", "--swap", "7")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "swap 7")
			})
		})

		Convey("When exporting CSV to a file", func() {
			dest := filepath.Join(t.TempDir(), "groupes.csv")
			_, errOut, err := run("", "group", path, "--classe", "5A", "--format", "csv", "--out", dest)

			Convey("Then the file holds the sheet with a BOM", func() {
				So(err, ShouldBeNil)
				So(errOut, ShouldContainSubstring, "3 groupes écrits")
				data, readErr := os.ReadFile(dest)
				So(readErr, ShouldBeNil)
				So(strings.HasPrefix(string(data), "\uFEFF"), ShouldBeTrue)
				So(string(data), ShouldContainSubstring, "N21")
			})
		})

		Convey("When exporting a mailto link", func() {
			out, _, err := run("", "group", path, "--classe", "5A", "--format", "mailto")

			Convey("Then a single mailto line is printed", func() {
				So(err, ShouldBeNil)
				So(strings.HasPrefix(out, "mailto:?subject="), ShouldBeTrue)
			})
		})

		Convey("When the class has too few pupils", func() {
			_, _, err := run("", "group", path, "--classe", "4B")

			Convey("Then the command reports it", func() {
				So(errors.Is(err, roster.ErrNotEnoughParticipants), ShouldBeTrue)
			})
		})

		Convey("When the format is unknown", func() {
			_, _, err := run("", "group", path, "--format", "pdf")

			Convey("Then the command fails before importing", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown format")
			})
		})

		Convey("When the roster comes from stdin", func() {
			data, _ := os.ReadFile(path)
			out, _, err := run(string(data), "group", "-", "--classe", "5A")

			Convey("Then it is grouped like a file", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "3 groupes")
			})
		})
	})

	Convey("Given a missing roster file", t, func() {
		_, _, err := run("", "group", filepath.Join(t.TempDir(), "absent.json"))

		Convey("Then the command fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "read roster")
		})
	})
}

func TestClassesCommand(t *testing.T) {
	Convey("Given a roster file with two spellings of each class", t, func() {
		path := writeRoster(t)

		Convey("When listing classes", func() {
			out, _, err := run("", "classes", path)

			Convey("Then each canonical code is printed once, sorted", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, "4B\n5A\n")
			})
		})

		Convey("When the same file is imported twice", func() {
			out, _, err := run("", "classes", path, path)

			Convey("Then the duplicate is ignored", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, "4B\n5A\n")
			})
		})
	})
}
