package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"

	"classdoc.dev/pkg/classdoc/internal/domain"
)

type mockWorkflow struct {
	mock.Mock
}

func (w *mockWorkflow) Normalize(ctx context.Context, args domain.NormalizeArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) Diff(ctx context.Context, args domain.DiffArgs) error {
	return w.Called(ctx, args).Error(0)
}

// withMockWorkflow swaps the package workflow for a mock for the duration of the test.
func withMockWorkflow(t *testing.T) *mockWorkflow {
	t.Helper()

	mw := new(mockWorkflow)
	original := workflow
	workflow = mw

	t.Cleanup(func() {
		workflow = original
		mw.AssertExpectations(t)
	})

	return mw
}

// newTestRootCmd builds a root command with its persistent flags and the given subcommand.
// Log output goes to a temp file so tests never write into the working directory.
func newTestRootCmd(t *testing.T, sub *cobra.Command, args ...string) *cobra.Command {
	t.Helper()

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(sub)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "classdoc.log")))

	return cmd
}
