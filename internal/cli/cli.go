// Package cli implements the zenos command line: roster files in, groups out,
// without the HTTP server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanprof/zenos/internal/adapters/repository"
	app "github.com/scanprof/zenos/internal/app"
	"github.com/scanprof/zenos/internal/config"
	"github.com/scanprof/zenos/internal/domain/export"
	"github.com/scanprof/zenos/pkg/logger"
)

// stdinArg reads the roster from standard input.
const stdinArg = "-"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// Execute runs the root command with ctx and the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the zenos command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "zenos",
		Short:         "Form balanced, mixed groups of four from a ScanProf roster",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv(config.EnvFile), "YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json); overrides the config")

	root.AddCommand(newGroupCommand(opts), newClassesCommand(opts))
	return root
}

// setup loads the configuration, logs to the command's stderr and builds a
// service around it.
func (o *rootOptions) setup(cmd *cobra.Command) (*app.Service, logger.Logger, error) {
	cfg, err := config.LoadFile(cmd.Context(), o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	l := logger.New(cmd.ErrOrStderr(), format).Named("cli")

	svc := app.New(
		app.WithLogger(l),
		app.WithStore(repository.NewMemoryStore(repository.WithMaxRecords(cfg.MaxParticipants))),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithApplyAllLimit(cfg.ApplyAllLimit),
		app.WithExportOptions(export.Options{
			PrintTitle: cfg.PrintTitle,
			Footer:     cfg.PrintFooter,
			Signature:  cfg.MailSignature,
		}),
	)
	return svc, l, nil
}

// importRosters feeds every file named in args to svc, in order.
func importRosters(cmd *cobra.Command, svc *app.Service, l logger.Logger, args []string) error {
	ctx := cmd.Context()
	for _, path := range args {
		data, err := readRoster(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		res, err := svc.Import(ctx, data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if res.Duplicate {
			l.Warn(ctx, "roster already imported", logger.String("file", path))
		}
	}
	return nil
}

func readRoster(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return data, nil
}
