package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = NewStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo announces a normalize run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, runID string, sources int, parallel int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Normalizing %d file(s) with %d worker(s) (run %s)\n", sources, parallel, runID)
}

// DisplayReports prints the per-stage change summary.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No doclet files normalized\n")
		return nil
	}

	s.printf("\n%s", renderReportTable(reports))

	for _, report := range reports {
		if report.Output != "" {
			s.printf("%s -> %s\n", report.Source, report.Output)
		}
	}

	return nil
}

// DisplayDoclets prints the records of one file as a table.
func (s *SimpleUI) DisplayDoclets(ctx context.Context, source m.Path, records []m.Doclet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n%s", source, renderDocletTable(records))

	return nil
}

// DisplayDiffs prints every record diff, colored when the UI was started with color.
func (s *SimpleUI) DisplayDiffs(ctx context.Context, diffs []m.RecordDiff) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(diffs) == 0 {
		s.printf("No records changed\n")
		return nil
	}

	palette := newDiffPalette(s.config.Color())
	for _, diff := range diffs {
		s.printf("%s\n", renderDiff(diff, palette))
	}

	s.printf("%d record(s) changed\n", len(diffs))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
