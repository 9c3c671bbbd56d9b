package domain_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	"classdoc.dev/pkg/classdoc/internal/controller"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

type mockUI struct {
	mock.Mock
}

func (u *mockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	args := u.Called(ctx, controller.NewStartConfig(options...))
	return args.Error(0)
}

func (u *mockUI) Close(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) Wait(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) DisplayRunInfo(ctx context.Context, runID string, sources int, parallel int) {
	u.Called(ctx, runID, sources, parallel)
}

func (u *mockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	args := u.Called(ctx, reports)
	return args.Error(0)
}

func (u *mockUI) DisplayDoclets(ctx context.Context, source m.Path, records []m.Doclet) error {
	args := u.Called(ctx, source, records)
	return args.Error(0)
}

func (u *mockUI) DisplayDiffs(ctx context.Context, diffs []m.RecordDiff) error {
	args := u.Called(ctx, diffs)
	return args.Error(0)
}

type mockDocletStore struct {
	mock.Mock
}

func (s *mockDocletStore) Load(ctx context.Context, path m.Path) ([]m.Doclet, error) {
	args := s.Called(ctx, path)

	records, _ := args.Get(0).([]m.Doclet)

	return records, args.Error(1)
}

func (s *mockDocletStore) Save(ctx context.Context, path m.Path, records []m.Doclet) error {
	args := s.Called(ctx, path, records)
	return args.Error(0)
}

// stubSources serves a fixed source list; the remaining filesystem methods are never reached.
type stubSources struct {
	adapter.SourceFSAdapter

	sources []m.Source
	err     error
}

func (s *stubSources) Sources(context.Context, []m.Path, []string, []string) ([]m.Source, error) {
	return s.sources, s.err
}
