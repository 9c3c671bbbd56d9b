package model

// StageReport counts how many records one pipeline stage changed.
type StageReport struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Event   string `json:"event" yaml:"event" msgpack:"event"`
	Changed int    `json:"changed" yaml:"changed" msgpack:"changed"`
}

// Report summarises one documentation run over a single source.
type Report struct {
	Source  Path          `json:"source" yaml:"source" msgpack:"source"`
	Output  Path          `json:"output,omitempty" yaml:"output,omitempty" msgpack:"output,omitempty"`
	RunID   string        `json:"run_id,omitempty" yaml:"run_id,omitempty" msgpack:"run_id,omitempty"`
	Records int           `json:"records" yaml:"records" msgpack:"records"`
	Stages  []StageReport `json:"stages" yaml:"stages" msgpack:"stages"`
}

// Changed returns the total number of record changes across stages.
func (r Report) Changed() int {
	total := 0
	for _, s := range r.Stages {
		total += s.Changed
	}

	return total
}

// ChangedBy returns the change count recorded for the named stage.
func (r Report) ChangedBy(stage string) int {
	for _, s := range r.Stages {
		if s.Name == stage {
			return s.Changed
		}
	}

	return 0
}

// RecordDiff is the unified diff of one record between its input and normalized form.
type RecordDiff struct {
	Source   Path
	Index    int
	Longname string
	Unified  string
}
