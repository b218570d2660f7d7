package service

import (
	"context"
	"fmt"
	"io"

	"github.com/scanprof/zenos/internal/domain/export"
	"github.com/scanprof/zenos/pkg/logger"
	"github.com/scanprof/zenos/pkg/metrics"
)

// ExportCSV writes the current groups as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	return s.export(ctx, "csv", func(sheet export.Sheet) error {
		return export.CSV(w, sheet)
	})
}

// ExportHTML writes the print page of the current groups.
func (s *Service) ExportHTML(ctx context.Context, w io.Writer) error {
	return s.export(ctx, "html", func(sheet export.Sheet) error {
		return export.HTML(w, sheet, s.exportOpts)
	})
}

// ExportMailto returns a mailto: link listing the current groups.
func (s *Service) ExportMailto(ctx context.Context) (string, error) {
	var link string
	err := s.export(ctx, "mailto", func(sheet export.Sheet) error {
		link = export.Mailto(sheet, s.exportOpts)
		return nil
	})
	return link, err
}

func (s *Service) export(ctx context.Context, format string, render func(export.Sheet) error) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return ErrNoSession
	}
	sheet := s.sheet()
	s.mu.Unlock()

	if err := render(sheet); err != nil {
		metrics.RecordErrorByComponent("export", format)
		s.logger.Error(ctx, "export failed", logger.String("format", format), logger.Error(err))
		return fmt.Errorf("export %s: %w", format, err)
	}
	s.logger.Debug(ctx, "groups exported", logger.String("format", format), logger.Int("groups", len(sheet.Groups)))
	return nil
}
