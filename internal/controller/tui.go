package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

const (
	pagerHeaderHeight = 2
	pagerFooterHeight = 2
	defaultWidth      = 100
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	config StartConfig
	width  int
	height int
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start records the options and measures the terminal.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.config = NewStartConfig(options...)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			p.width = width
			p.height = height
		}
	}

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait returns immediately; pagers block inside the Display calls until the user quits.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayRunInfo shows the run header.
func (p *TUI) DisplayRunInfo(ctx context.Context, runID string, sources int, parallel int) {
	if err := ctx.Err(); err != nil {
		return
	}

	header := titleStyle.Render(fmt.Sprintf("classdoc: normalizing %d file(s) with %d worker(s)", sources, parallel))
	_, _ = fmt.Fprintf(p.output, "%s\n%s\n", header, mutedStyle.Render("run "+runID))
}

// DisplayReports renders the per-stage change summary.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintln(p.output, mutedStyle.Render("  No doclet files normalized"))
		return err
	}

	return p.page("Normalization summary", renderReportTable(reports))
}

// DisplayDoclets opens a scrollable browser over the records of one file.
func (p *TUI) DisplayDoclets(ctx context.Context, source m.Path, records []m.Doclet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("%s (%d records)", source, len(records))

	return p.page(title, renderDocletLines(records, p.contentWidth()))
}

// DisplayDiffs opens a scrollable view of the colored record diffs.
func (p *TUI) DisplayDiffs(ctx context.Context, diffs []m.RecordDiff) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(diffs) == 0 {
		_, err := fmt.Fprintln(p.output, mutedStyle.Render("  No records changed"))
		return err
	}

	palette := newDiffPalette(p.config.Color())

	var b strings.Builder
	for _, diff := range diffs {
		b.WriteString(renderDiff(diff, palette))
		b.WriteString("\n")
	}

	return p.page(fmt.Sprintf("%d record(s) changed", len(diffs)), b.String())
}

func (p *TUI) contentWidth() int {
	if p.width <= 0 {
		return defaultWidth
	}

	return p.width
}

// page prints content directly when it fits the terminal and opens a pager otherwise.
func (p *TUI) page(title, content string) error {
	model := newPagerModel(title, content, p.width, p.height)

	if !model.needsPaging() {
		_, err := fmt.Fprint(p.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderDocletLines(records []m.Doclet, width int) string {
	var b strings.Builder

	for i, d := range records {
		longname := d.Longname
		if longname == "" {
			longname = d.Name
		}

		line := fmt.Sprintf("%5d  %-8s %-8s %-7s %s", i, d.Kind, d.Scope, d.Access, longname)
		line = runewidth.Truncate(line, width-2, "…")

		if d.IsPlaceholder() {
			line = mutedStyle.Render(line)
		} else {
			line = scopeStyle(d.Scope).Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func scopeStyle(scope m.Scope) lipgloss.Style {
	switch scope {
	case m.ScopeStatic:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case m.ScopeInner:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case m.ScopeGlobal:
		return lipgloss.NewStyle().Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}

// pagerModel is the Bubble Tea model for scrolling through rendered content.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	width    int
	height   int
	quitting bool
}

func newPagerModel(title, content string, width, height int) pagerModel {
	pm := pagerModel{title: title, content: content, width: width, height: height}
	pm.viewport = viewport.New(width, pm.bodyHeight())
	pm.viewport.SetContent(content)

	return pm
}

func (pm pagerModel) bodyHeight() int {
	body := pm.height - pagerHeaderHeight - pagerFooterHeight
	if body < 1 {
		return 1
	}

	return body
}

// needsPaging returns true if the content is too long to fit on screen.
func (pm pagerModel) needsPaging() bool {
	if pm.height <= 0 {
		return false
	}

	return strings.Count(pm.content, "\n") > pm.bodyHeight()
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.height = msg.Height
		pm.viewport.Width = msg.Width
		pm.viewport.Height = pm.bodyHeight()

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")
	b.WriteString(pm.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %3.f%% | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		pm.viewport.ScrollPercent()*100)))

	return b.String()
}

// staticView renders the whole content without scrolling chrome.
func (pm pagerModel) staticView() string {
	return titleStyle.Render(pm.title) + "\n\n" + pm.content
}
