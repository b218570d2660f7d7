package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/scanprof/zenos/internal/app"
	"github.com/scanprof/zenos/internal/domain/types"
)

// Output formats of the group command.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatHTML   = "html"
	FormatMailto = "mailto"
)

var formats = []string{FormatText, FormatJSON, FormatCSV, FormatHTML, FormatMailto}

type groupOptions struct {
	classe   string
	applyAll bool
	swaps    []int
	format   string
	out      string
}

func newGroupCommand(root *rootOptions) *cobra.Command {
	opts := &groupOptions{}
	cmd := &cobra.Command{
		Use:   "group [roster.json...]",
		Short: "Import rosters and print the ZENOS groups",
		Long: `Imports one or more roster files ("-" reads standard input), forms the
groups of four for the selected class and prints them. Suggested swaps can be
applied by index with --swap, or all at once with --apply-all.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.classe, "classe", "c", "", "class to group (default: every class)")
	cmd.Flags().BoolVar(&opts.applyAll, "apply-all", false, "apply suggested swaps until none is left")
	cmd.Flags().IntSliceVar(&opts.swaps, "swap", nil, "apply the suggestion at this index; repeatable, applied in order")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatText, "output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the output to this file instead of stdout")
	return cmd
}

func (o *groupOptions) validate() error {
	for _, f := range formats {
		if o.format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", o.format, strings.Join(formats, ", "))
}

func runGroup(cmd *cobra.Command, root *rootOptions, opts *groupOptions, args []string) error {
	if err := opts.validate(); err != nil {
		return err
	}
	svc, l, err := root.setup(cmd)
	if err != nil {
		return err
	}
	if err := importRosters(cmd, svc, l, args); err != nil {
		return err
	}

	ctx := cmd.Context()
	view, err := svc.Generate(ctx, opts.classe)
	if err != nil {
		return err
	}
	for _, idx := range opts.swaps {
		res, err := svc.ApplySwap(ctx, view.SessionID, idx)
		if err != nil {
			return fmt.Errorf("swap %d: %w", idx, err)
		}
		view = res.View
	}
	if opts.applyAll {
		res, err := svc.ApplyAll(ctx, view.SessionID)
		if err != nil {
			return err
		}
		view = res.View
	}

	render := func(w io.Writer) error {
		return write(cmd, svc, w, opts.format, view)
	}
	if opts.out == "" {
		return render(cmd.OutOrStdout())
	}
	if err := writeFile(opts.out, render); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d groupes écrits dans %s\n", len(view.Groups), opts.out)
	return nil
}

// writeFile renders into a new file at path.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	return closeAfter(f, render)
}

// closeAfter renders into wc and closes it. A close error is returned since
// it may carry a failed final write.
func closeAfter(wc io.WriteCloser, render func(io.Writer) error) error {
	if err := render(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func write(cmd *cobra.Command, svc *app.Service, w io.Writer, format string, view types.View) error {
	ctx := cmd.Context()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatCSV:
		return svc.ExportCSV(ctx, w)
	case FormatHTML:
		return svc.ExportHTML(ctx, w)
	case FormatMailto:
		href, err := svc.ExportMailto(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, href)
		return err
	default:
		return renderText(w, view)
	}
}
