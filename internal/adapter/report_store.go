package adapter

import (
	"context"
	"fmt"
	"path/filepath"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// ReportStore persists the per-file reports of a normalize run.
type ReportStore interface {
	SaveReports(ctx context.Context, path m.Path, reports []m.Report) error
	LoadReports(ctx context.Context, path m.Path) ([]m.Report, error)
}

type reportDocument struct {
	Reports []m.Report `json:"reports" yaml:"reports" msgpack:"reports"`
}

// LocalReportStore writes run summaries through a SourceFSAdapter in the format named by the
// file extension.
type LocalReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore creates a report store backed by fs.
func NewReportStore(fs SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

// SaveReports writes reports to path, replacing any previous summary.
func (s *LocalReportStore) SaveReports(ctx context.Context, path m.Path, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if reports == nil {
		reports = []m.Report{}
	}

	data, err := encode(format, reportDocument{Reports: reports})
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(m.Path(dir)); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := s.fs.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// LoadReports reads a summary written by SaveReports.
func (s *LocalReportStore) LoadReports(ctx context.Context, path m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc reportDocument
	if err := decode(format, data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s reports: %w", format, err)
	}

	return doc.Reports, nil
}
