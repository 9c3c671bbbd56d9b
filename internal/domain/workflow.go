package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	"classdoc.dev/pkg/classdoc/internal/controller"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

var (
	// ErrNoInputs is returned when path arguments expand to no doclet files.
	ErrNoInputs = errors.New("no doclet files found")
	// ErrOutputConflict is returned when two inputs would be written to the same output file.
	ErrOutputConflict = errors.New("output path conflict")
)

// NormalizeArgs contains the arguments for normalizing doclet files.
type NormalizeArgs struct {
	Paths    []m.Path
	Include  []string
	Exclude  []string
	Output   m.Path
	Format   m.Format
	Parallel int
	Augment  bool
	// Report names a file that receives the run summary; empty skips it.
	Report m.Path
}

// ViewArgs contains the arguments for browsing one doclet file.
type ViewArgs struct {
	Path      m.Path
	Normalize bool
	Augment   bool
}

// DiffArgs contains the arguments for previewing normalization changes.
type DiffArgs struct {
	Paths    []m.Path
	Include  []string
	Exclude  []string
	Parallel int
	Augment  bool
	Color    bool
}

// Workflow drives documentation runs over doclet files.
type Workflow interface {
	Normalize(ctx context.Context, args NormalizeArgs) error
	View(ctx context.Context, args ViewArgs) error
	Diff(ctx context.Context, args DiffArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.DocletStore
	adapter.ReportStore
	adapter.Augmenter
	controller.UI

	pipeline *Pipeline
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	store adapter.DocletStore,
	reports adapter.ReportStore,
	augmenter adapter.Augmenter,
	ui controller.UI,
	pipeline *Pipeline,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		DocletStore:     store,
		ReportStore:     reports,
		Augmenter:       augmenter,
		UI:              ui,
		pipeline:        pipeline,
	}
}

// Normalize runs one independent documentation run per discovered file and writes the
// normalized records. Files are processed in parallel; each run is single-threaded.
func (w *workflow) Normalize(ctx context.Context, args NormalizeArgs) error {
	sources, err := w.discover(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		return err
	}

	outputs, err := outputPaths(sources, args.Output, args.Format)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := slog.Default().With("run", runID)
	parallel := max(args.Parallel, 1)

	if err := w.Start(ctx, controller.WithNormalizeMode()); err != nil {
		logger.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	w.DisplayRunInfo(ctx, runID, len(sources), parallel)
	logger.Info("normalize started", "sources", len(sources), "parallel", parallel)

	reports, err := forEachSource(ctx, sources, parallel, func(ctx context.Context, source m.Source) (m.Report, error) {
		records, report, err := w.run(ctx, source, args.Augment, logger)
		if err != nil {
			return report, err
		}

		output := outputs[source.Path]
		if err := w.Save(ctx, output, records); err != nil {
			return report, fmt.Errorf("save: %w", err)
		}

		report.Output = output
		report.RunID = runID

		return report, nil
	})

	if args.Report != "" && w.ReportStore != nil {
		if saveErr := w.SaveReports(ctx, args.Report, reports); saveErr != nil {
			logger.Error("Failed to save run report", "path", args.Report, "error", saveErr)
			err = errors.Join(err, fmt.Errorf("save report: %w", saveErr))
		}
	}

	if displayErr := w.DisplayReports(ctx, reports); displayErr != nil {
		logger.Error("Failed to display reports", "error", displayErr)
		return fmt.Errorf("display: %w", displayErr)
	}

	if err != nil {
		logger.Error("normalize finished with errors", "error", err)
		return err
	}

	logger.Info("normalize finished", "sources", len(reports))
	w.Wait(ctx)

	return nil
}

// View loads one doclet file, optionally normalizes it in memory, and shows its records.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	records, err := w.Load(ctx, args.Path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if args.Normalize {
		records, _ = w.pipeline.Run(records, w.runOptions(args.Augment, slog.Default().With("source", args.Path))...)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayDoclets(ctx, args.Path, records); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// Diff normalizes files in memory and shows a unified diff of every record that changed.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	sources, err := w.discover(ctx, args.Paths, args.Include, args.Exclude)
	if err != nil {
		return err
	}

	logger := slog.Default().With("run", uuid.NewString())
	perSource := make(map[m.Path][]m.RecordDiff, len(sources))

	var mu sync.Mutex

	_, err = forEachSource(ctx, sources, max(args.Parallel, 1), func(ctx context.Context, source m.Source) (m.Report, error) {
		before, err := w.Load(ctx, source.Path)
		if err != nil {
			return m.Report{}, fmt.Errorf("load: %w", err)
		}

		after, report := w.pipeline.Run(before, w.runOptions(args.Augment, logger.With("source", source.Path))...)

		diffs, err := DiffRecords(source.Path, before, after)
		if err != nil {
			return report, err
		}

		mu.Lock()
		perSource[source.Path] = diffs
		mu.Unlock()

		return report, nil
	})
	if err != nil {
		return err
	}

	var diffs []m.RecordDiff
	for _, source := range sources {
		diffs = append(diffs, perSource[source.Path]...)
	}

	if err := w.Start(ctx, controller.WithDiffMode(), controller.WithColor(args.Color)); err != nil {
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayDiffs(ctx, diffs); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) discover(ctx context.Context, paths []m.Path, include, exclude []string) ([]m.Source, error) {
	sources, err := w.Sources(ctx, paths, include, exclude)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoInputs, paths)
	}

	return sources, nil
}

func (w *workflow) run(ctx context.Context, source m.Source, augment bool, logger *slog.Logger) ([]m.Doclet, m.Report, error) {
	records, err := w.Load(ctx, source.Path)
	if err != nil {
		return nil, m.Report{Source: source.Path}, fmt.Errorf("load: %w", err)
	}

	out, report := w.pipeline.Run(records, w.runOptions(augment, logger.With("source", source.Path))...)
	report.Source = source.Path

	return out, report, nil
}

func (w *workflow) runOptions(augment bool, logger *slog.Logger) []RunOption {
	opts := []RunOption{WithLogger(logger)}
	if augment && w.Augmenter != nil {
		opts = append(opts, WithAugmenter(w.Augment))
	}

	return opts
}

// forEachSource runs fn for every source with bounded parallelism. A failing source does not
// stop the others; reports of successful sources are returned in input order together with
// the joined errors.
func forEachSource(
	ctx context.Context,
	sources []m.Source,
	parallel int,
	fn func(context.Context, m.Source) (m.Report, error),
) ([]m.Report, error) {
	results := make([]m.Report, len(sources))
	failed := make([]error, len(sources))

	var group errgroup.Group
	group.SetLimit(parallel)

	for i, source := range sources {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed[i] = err
				return nil
			}

			report, err := fn(ctx, source)
			if err != nil {
				failed[i] = fmt.Errorf("%s: %w", source.Path, err)
				return nil
			}

			results[i] = report

			return nil
		})
	}

	_ = group.Wait()

	reports := make([]m.Report, 0, len(sources))
	for i := range sources {
		if failed[i] == nil {
			reports = append(reports, results[i])
		}
	}

	return reports, errors.Join(failed...)
}

func outputPaths(sources []m.Source, outputDir m.Path, format m.Format) (map[m.Path]m.Path, error) {
	outputs := make(map[m.Path]m.Path, len(sources))
	owners := make(map[m.Path]m.Path, len(sources))

	for _, source := range sources {
		target := format
		if target == "" {
			target = source.Format
		}

		output := adapter.NormalizedPath(source.Path, outputDir, target)
		if other, taken := owners[output]; taken {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, other, source.Path, output)
		}

		owners[output] = source.Path
		outputs[source.Path] = output
	}

	return outputs, nil
}
