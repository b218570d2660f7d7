package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/scanprof/zenos/internal/domain/export"
	"github.com/scanprof/zenos/internal/domain/model"
	"github.com/scanprof/zenos/internal/domain/types"
)

// renderText prints a view as aligned plain text for a terminal.
func renderText(w io.Writer, view types.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", view.Title)
	fmt.Fprintf(tw, "%d groupes, %d mixtes, %d hors groupe\n\n",
		view.Stats.Groups, view.Stats.Mixed, view.Stats.Remainder)

	for _, g := range view.Groups {
		mixed := "non mixte"
		if g.Mixed {
			mixed = "mixte"
		}
		fmt.Fprintf(tw, "%s (%dF/%dG, %s)\n", g.Label, g.Females, g.Males, mixed)
		for _, p := range g.Members {
			writeMember(tw, p, string(p.EffectiveRole()))
		}
		fmt.Fprintln(tw)
	}

	if len(view.Remainder) > 0 {
		fmt.Fprintln(tw, "Hors groupes")
		for _, p := range view.Remainder {
			writeMember(tw, p, "-")
		}
		fmt.Fprintln(tw)
	}

	if len(view.AutoSwaps) > 0 {
		fmt.Fprintln(tw, "Échanges automatiques")
		for _, s := range view.AutoSwaps {
			fmt.Fprintf(tw, "  %s\n", s.Label)
		}
		fmt.Fprintln(tw)
	}

	if len(view.Suggestions) > 0 {
		fmt.Fprintln(tw, "Suggestions")
		for i, s := range view.Suggestions {
			fmt.Fprintf(tw, "  [%d] %s\n", i, s.Label)
		}
	}
	return tw.Flush()
}

func writeMember(w io.Writer, p model.Participant, role string) {
	fmt.Fprintf(w, "  %s\t%s %s\t%s\t%s\t%s\n",
		role, p.Nom, p.Prenom, p.Classe, p.Sexe, export.FormatVMA(p.VMA))
}
