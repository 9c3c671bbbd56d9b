// Package controller provides output adapters for displaying normalization runs and records.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeNormalize StartMode = iota
	ModeView
	ModeDiff
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	color bool
}

// Mode returns the selected mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// Color reports whether colored output was requested.
func (c StartConfig) Color() bool {
	return c.color
}

// WithNormalizeMode sets the UI to normalization summary mode.
func WithNormalizeMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeNormalize
	}
}

// WithViewMode sets the UI to record browsing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithDiffMode sets the UI to record diff mode.
func WithDiffMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDiff
	}
}

// WithColor toggles colored output.
func WithColor(enabled bool) StartOption {
	return func(c *StartConfig) {
		c.color = enabled
	}
}

// NewStartConfig applies options over the defaults.
func NewStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying normalization runs.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, runID string, sources int, parallel int)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayDoclets(ctx context.Context, source m.Path, records []m.Doclet) error
	DisplayDiffs(ctx context.Context, diffs []m.RecordDiff) error
}

// NewUI selects the interactive TUI when output is a terminal and the plain UI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
