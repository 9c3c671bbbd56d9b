package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

// DiffRecords compares each input record with its normalized successor by index and returns a
// unified diff of the YAML rendering for every record that changed. Records appended by
// augmentation are diffed against an empty input.
func DiffRecords(source m.Path, before, after []m.Doclet) ([]m.RecordDiff, error) {
	var diffs []m.RecordDiff

	for i, next := range after {
		var (
			previous []string
			fromFile = "added"
		)

		if i < len(before) {
			if before[i].Equal(next) {
				continue
			}

			previous = difflib.SplitLines(adapter.RenderDoclet(before[i]))
			fromFile = "input"
		}

		unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        previous,
			B:        difflib.SplitLines(adapter.RenderDoclet(next)),
			FromFile: fromFile,
			ToFile:   "normalized",
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("diff record %d: %w", i, err)
		}

		if unified == "" {
			continue
		}

		longname := next.Longname
		if longname == "" {
			longname = next.Name
		}

		diffs = append(diffs, m.RecordDiff{Source: source, Index: i, Longname: longname, Unified: unified})
	}

	return diffs, nil
}
