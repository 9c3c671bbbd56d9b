package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

func TestTUI_DisplayReports_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.DisplayReports(context.Background(), nil))
	assert.Contains(t, buf.String(), "No doclet files normalized")
}

func TestTUI_DisplayReports_SmallList(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(context.Background(), WithNormalizeMode()))
	require.NoError(t, tui.DisplayReports(context.Background(), sampleReports()))

	out := buf.String()
	assert.Contains(t, out, "Normalization summary")
	assert.Contains(t, out, "docs/a.json")
	assert.Contains(t, out, "Total Files 2")
}

func TestTUI_DisplayDoclets_PrintsWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	records := []m.Doclet{
		{Name: "Foo", Longname: "Foo", Kind: m.KindClass, Scope: m.ScopeGlobal},
		{Name: "make", Longname: "Foo.make", Memberof: "Foo", Kind: m.KindFunction, Scope: m.ScopeStatic},
	}

	require.NoError(t, tui.DisplayDoclets(context.Background(), "api.json", records))

	out := buf.String()
	assert.Contains(t, out, "api.json (2 records)")
	assert.Contains(t, out, "Foo.make")
	assert.Contains(t, out, "static")
}

func TestTUI_DisplayDiffs(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.DisplayDiffs(context.Background(), nil))
	assert.Contains(t, buf.String(), "No records changed")

	buf.Reset()

	diffs := []m.RecordDiff{{Source: "a.json", Longname: "Foo#x", Unified: "-a\n+b\n"}}
	require.NoError(t, tui.DisplayDiffs(context.Background(), diffs))
	assert.Contains(t, buf.String(), "1 record(s) changed")
	assert.Contains(t, buf.String(), "+b")
}

func TestRenderDocletLines_Truncates(t *testing.T) {
	records := []m.Doclet{{Name: "x", Longname: "module:very/long/path.Klass#" + strings.Repeat("x", 80), Kind: m.KindMember}}

	out := renderDocletLines(records, 40)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 80))
}

func TestPagerModel(t *testing.T) {
	content := strings.Repeat("line\n", 50)

	t.Run("short content needs no paging", func(t *testing.T) {
		pm := newPagerModel("title", "a\nb\n", 80, 24)
		assert.False(t, pm.needsPaging())
	})

	t.Run("unknown height never pages", func(t *testing.T) {
		pm := newPagerModel("title", content, 0, 0)
		assert.False(t, pm.needsPaging())
	})

	t.Run("long content pages", func(t *testing.T) {
		pm := newPagerModel("title", content, 80, 24)
		assert.True(t, pm.needsPaging())
		assert.Equal(t, 20, pm.bodyHeight())
	})

	t.Run("window resize updates viewport", func(t *testing.T) {
		pm := newPagerModel("title", content, 80, 24)

		next, _ := pm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
		resized := next.(pagerModel)

		assert.Equal(t, 100, resized.viewport.Width)
		assert.Equal(t, 26, resized.viewport.Height)
	})

	t.Run("navigation keys", func(t *testing.T) {
		pm := newPagerModel("title", content, 80, 24)

		next, _ := pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
		bottom := next.(pagerModel)
		assert.True(t, bottom.viewport.AtBottom())

		next, _ = bottom.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
		assert.True(t, next.(pagerModel).viewport.AtTop())
	})

	t.Run("quit", func(t *testing.T) {
		pm := newPagerModel("title", content, 80, 24)

		next, cmd := pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

		require.NotNil(t, cmd)
		assert.True(t, next.(pagerModel).quitting)
		assert.Empty(t, next.View())
	})
}
