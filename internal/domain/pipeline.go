// Package domain contains the doclet normalization pipeline and the CLI workflows built on it.
package domain

import (
	"errors"
	"fmt"
	"log/slog"

	"classdoc.dev/pkg/classdoc/internal/domain/rules"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

// Event is a lifecycle point of the host extractor at which stages run.
type Event string

const (
	// EventNewDoclet fires once per discovered symbol, before the record set is complete.
	EventNewDoclet Event = "newDoclet"
	// EventParseComplete fires once the full record set has been collected.
	EventParseComplete Event = "parseComplete"
	// EventProcessingComplete fires after the host's augmentation and inheritance step.
	EventProcessingComplete Event = "processingComplete"
)

var eventOrder = map[Event]int{
	EventNewDoclet:          0,
	EventParseComplete:      1,
	EventProcessingComplete: 2,
}

// Stage names of the default pipeline.
const (
	StageClassify       = "classify"
	StagePrivateMembers = "private-members"
	StageStaticScope    = "static-scope"
	StageDefaultExports = "default-exports"
	StagePostAugment    = "post-augment"

	// StageAugment labels the host augmentation step in reports.
	StageAugment = "augment"
)

// ErrInvalidPipeline is returned when stages are declared out of lifecycle or dependency order.
var ErrInvalidPipeline = errors.New("invalid pipeline")

// Pass maps a record snapshot to its corrected successor. It must not modify its input and
// must return the same number of records in the same order.
type Pass func(records []m.Doclet) []m.Doclet

// Stage is one named step bound to a lifecycle event. Discovery stages provide Each,
// all others provide Run.
type Stage struct {
	Name  string
	Event Event
	After []string
	Each  func(m.Doclet) m.Doclet
	Run   Pass
}

// Augmenter is the host's augmentation step run between parse-complete and
// processing-complete. It may append records.
type Augmenter func(records []m.Doclet) []m.Doclet

// RunOption configures a single Run.
type RunOption func(*runConfig)

type runConfig struct {
	augment Augmenter
	logger  *slog.Logger
}

// WithAugmenter installs the host augmentation step.
func WithAugmenter(augment Augmenter) RunOption {
	return func(c *runConfig) {
		c.augment = augment
	}
}

// WithLogger routes stage logging to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Pipeline is a validated, ordered list of stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline validates that stages are listed in lifecycle order, that names are unique
// and that every dependency names an earlier stage.
func NewPipeline(stages ...Stage) (*Pipeline, error) {
	seen := make(map[string]Event, len(stages))
	last := 0

	for _, stage := range stages {
		if stage.Name == "" {
			return nil, fmt.Errorf("%w: stage without name", ErrInvalidPipeline)
		}

		if _, dup := seen[stage.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrInvalidPipeline, stage.Name)
		}

		order, ok := eventOrder[stage.Event]
		if !ok {
			return nil, fmt.Errorf("%w: stage %q bound to unknown event %q", ErrInvalidPipeline, stage.Name, stage.Event)
		}

		if order < last {
			return nil, fmt.Errorf("%w: stage %q on %s listed after a later event", ErrInvalidPipeline, stage.Name, stage.Event)
		}

		if err := checkBody(stage); err != nil {
			return nil, err
		}

		for _, dep := range stage.After {
			if _, ok := seen[dep]; !ok {
				return nil, fmt.Errorf("%w: stage %q must run after %q, which is not declared before it", ErrInvalidPipeline, stage.Name, dep)
			}
		}

		seen[stage.Name] = stage.Event
		last = order
	}

	return &Pipeline{stages: append([]Stage(nil), stages...)}, nil
}

func checkBody(stage Stage) error {
	if stage.Event == EventNewDoclet && stage.Each == nil {
		return fmt.Errorf("%w: discovery stage %q has no per-doclet function", ErrInvalidPipeline, stage.Name)
	}

	if stage.Event != EventNewDoclet && stage.Run == nil {
		return fmt.Errorf("%w: stage %q has no pass", ErrInvalidPipeline, stage.Name)
	}

	return nil
}

// DefaultPipeline returns the classification and normalization stages in their required order.
func DefaultPipeline() *Pipeline {
	p, err := NewPipeline(
		Stage{Name: StageClassify, Event: EventNewDoclet, Each: rules.Classify},
		Stage{Name: StagePrivateMembers, Event: EventParseComplete, After: []string{StageClassify}, Run: FinalizePrivateMembers},
		Stage{Name: StageStaticScope, Event: EventParseComplete, After: []string{StagePrivateMembers}, Run: NormalizeStaticScope},
		Stage{Name: StageDefaultExports, Event: EventParseComplete, After: []string{StagePrivateMembers, StageStaticScope}, Run: ResolveDefaultExports},
		Stage{Name: StagePostAugment, Event: EventProcessingComplete, After: []string{StageStaticScope}, Run: FinalizeAfterAugmentation},
	)
	if err != nil {
		panic(err)
	}

	return p
}

// Stages returns a copy of the stage list.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Discover applies the discovery stages to a single newly extracted doclet.
func (p *Pipeline) Discover(d m.Doclet) m.Doclet {
	out := d.Clone()

	for _, stage := range p.stages {
		if stage.Event == EventNewDoclet {
			out = stage.Each(out)
		}
	}

	return out
}

// Fire runs every stage bound to event over records and returns the new record set.
func (p *Pipeline) Fire(event Event, records []m.Doclet, opts ...RunOption) []m.Doclet {
	out, _ := p.fire(event, records, newRunConfig(opts))
	return out
}

// Run drives a full documentation run: discovery, parse-complete stages, the host
// augmentation step and processing-complete stages.
func (p *Pipeline) Run(records []m.Doclet, opts ...RunOption) ([]m.Doclet, m.Report) {
	cfg := newRunConfig(opts)

	var report m.Report

	out, stages := p.fire(EventNewDoclet, records, cfg)
	report.Stages = append(report.Stages, stages...)

	out, stages = p.fire(EventParseComplete, out, cfg)
	report.Stages = append(report.Stages, stages...)

	if cfg.augment != nil {
		before := len(out)
		out = cfg.augment(m.CloneAll(out))
		report.Stages = append(report.Stages, m.StageReport{Name: StageAugment, Event: string(EventProcessingComplete), Changed: len(out) - before})
		cfg.logger.Debug("host augmentation finished", "before", before, "after", len(out))
	}

	out, stages = p.fire(EventProcessingComplete, out, cfg)
	report.Stages = append(report.Stages, stages...)
	report.Records = len(out)

	return out, report
}

func newRunConfig(opts []RunOption) runConfig {
	cfg := runConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return cfg
}

func (p *Pipeline) fire(event Event, records []m.Doclet, cfg runConfig) ([]m.Doclet, []m.StageReport) {
	current := records
	reports := make([]m.StageReport, 0)

	for _, stage := range p.stages {
		if stage.Event != event {
			continue
		}

		next := p.apply(stage, current)
		if len(next) != len(current) {
			cfg.logger.Error("stage changed record count, result discarded",
				"stage", stage.Name, "before", len(current), "after", len(next))

			next = current
		}

		reports = append(reports, m.StageReport{
			Name:    stage.Name,
			Event:   string(stage.Event),
			Changed: logChanges(cfg.logger, stage.Name, current, next),
		})
		current = next
	}

	return current, reports
}

func (p *Pipeline) apply(stage Stage, records []m.Doclet) []m.Doclet {
	if stage.Event == EventNewDoclet {
		out := make([]m.Doclet, len(records))
		for i, d := range records {
			out[i] = stage.Each(d.Clone())
		}

		return out
	}

	return stage.Run(records)
}

func logChanges(logger *slog.Logger, stage string, before, after []m.Doclet) int {
	changed := 0

	for i := range after {
		if before[i].Equal(after[i]) {
			continue
		}

		changed++

		logger.Debug("doclet normalized",
			"stage", stage,
			"index", i,
			"name", after[i].Name,
			"longname_before", before[i].Longname,
			"longname", after[i].Longname,
			"scope", after[i].Scope,
			"kind", after[i].Kind,
		)
	}

	return changed
}
