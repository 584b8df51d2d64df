// Package tui is the interactive front-end: pick an image, send it
// for analysis, watch the pattern draw itself, export the result.
//
// The animation contract is "at most one pending tick, cancelable":
// every tick carries a generation number, and pause/reset/screen
// changes bump the generation so a stale tick scheduled before the
// transition is dropped instead of resuming drawing.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kolam/internal/anim"
	"github.com/san-kum/kolam/internal/client"
	"github.com/san-kum/kolam/internal/config"
	"github.com/san-kum/kolam/internal/export"
	"github.com/san-kum/kolam/internal/pattern"
	"github.com/san-kum/kolam/internal/render"
)

const (
	minSpeed  = 0.25
	maxSpeed  = 8.0
	speedStep = 0.25
)

type screen int

const (
	screenUpload screen = iota
	screenResults
)

type tickMsg struct{ gen int }

type analyzedMsg struct{ rec *pattern.Record }

type uploadErrMsg struct{ err error }

type exportedMsg struct{ file string }

type exportErrMsg struct{ err error }

// Model owns all application state: the live pattern record, the
// playback cursors, and the screens around them.
type Model struct {
	cfg      *config.Config
	api      *client.Client
	screen   screen
	files    []string
	cursor   int
	busy     bool
	busyText string
	rec      *pattern.Record
	player   *anim.Player
	renderer *render.Renderer
	gen      int
	errText  string
	notice   string
}

// NewModel builds the app. A non-nil record skips the upload screen
// (used for offline replay of stored analyses).
func NewModel(cfg *config.Config, rec *pattern.Record) Model {
	SetTheme(cfg.Theme)

	m := Model{
		cfg:   cfg,
		api:   client.New(cfg.ServerURL),
		files: listImages(),
	}
	if rec != nil {
		m.present(rec)
	}
	return m
}

// Run starts the interactive app on the upload screen.
func Run(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg, nil)).Run()
	return err
}

// RunRecord replays an already-analyzed record.
func RunRecord(cfg *config.Config, rec *pattern.Record) error {
	_, err := tea.NewProgram(NewModel(cfg, rec)).Run()
	return err
}

func listImages() []string {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && pattern.IsImageFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

// present installs a freshly analyzed record and switches to the
// results screen. The record is assigned before anything renders it.
func (m *Model) present(rec *pattern.Record) {
	m.rec = rec
	m.player = anim.NewPlayer(rec.Paths)
	m.player.SetSpeed(m.cfg.Speed)
	m.renderer = render.New(m.cfg.Canvas.Width, m.cfg.Canvas.Height)
	m.renderer.Redraw(rec)
	m.gen++
	m.screen = screenResults
	m.notice = ""
}

func (m Model) Init() tea.Cmd { return nil }

// tick schedules the next animation frame, tagged with the current
// generation so transitions can cancel it.
func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg { return tickMsg{gen} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A visible error is modal: any key dismisses it.
		if m.errText != "" {
			m.errText = ""
			return m, nil
		}
		return m.handleKey(msg)

	case tickMsg:
		if msg.gen != m.gen || m.player == nil {
			return m, nil
		}
		if step, ok := m.player.Frame(time.Now()); ok && step.Segment {
			m.renderer.DrawSegment(step.From, step.To)
		}
		if m.player.Playing() {
			return m, m.tick()
		}
		return m, nil

	case analyzedMsg:
		m.busy = false
		m.present(msg.rec)
		return m, nil

	case uploadErrMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, client.ErrNotImage):
			// Non-image input is ignored, not reported.
		default:
			var apiErr *client.APIError
			if errors.As(msg.err, &apiErr) {
				m.errText = "Analysis failed: " + apiErr.Message
			} else {
				m.errText = "Error connecting to the analysis service. Is it running?"
			}
		}
		return m, nil

	case exportedMsg:
		m.busy = false
		m.notice = "saved " + msg.file
		return m, nil

	case exportErrMsg:
		m.busy = false
		m.errText = "Export failed: " + msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenUpload:
		return m.uploadKey(msg)
	case screenResults:
		return m.resultsKey(msg)
	}
	return m, nil
}

func (m Model) uploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case "enter":
		if m.busy || len(m.files) == 0 {
			return m, nil
		}
		path := m.files[m.cursor]
		if !pattern.IsImageFile(path) {
			return m, nil
		}
		m.busy = true
		m.busyText = "analyzing " + path + "..."
		return m, m.analyzeCmd(path)
	}
	return m, nil
}

func (m Model) resultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.gen++ // cancel any pending frame before changing state
		m.player.Toggle()
		if m.player.Playing() {
			return m, m.tick()
		}
	case "r":
		m.gen++
		m.player.Reset()
		m.renderer.Redraw(m.rec)
	case "+", "=":
		m.setSpeed(m.player.Speed() + speedStep)
	case "-", "_":
		m.setSpeed(m.player.Speed() - speedStep)
	case "s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.busyText = "rendering svg..."
		return m, m.exportSVGCmd()
	case "e":
		m.exportEquations()
	case "u":
		m.gen++
		m.rec = nil
		m.player = nil
		m.renderer = nil
		m.files = listImages()
		m.cursor = 0
		m.screen = screenUpload
	case "t":
		NextTheme()
	}
	return m, nil
}

func (m *Model) setSpeed(v float64) {
	if v < minSpeed {
		v = minSpeed
	}
	if v > maxSpeed {
		v = maxSpeed
	}
	m.player.SetSpeed(v)
}

func (m Model) analyzeCmd(path string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		rec, err := api.Analyze(ctx, path)
		if err != nil {
			return uploadErrMsg{err}
		}
		return analyzedMsg{rec}
	}
}

func (m Model) exportSVGCmd() tea.Cmd {
	api, rec := m.api, m.rec
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		svg, err := api.ExportSVG(ctx, rec.Paths, rec.Grid.Dots)
		if err != nil {
			return exportErrMsg{err}
		}
		name := export.SVGFilename(rec.ID)
		if err := export.WriteFile(name, svg); err != nil {
			return exportErrMsg{err}
		}
		return exportedMsg{file: name}
	}
}

// exportEquations is purely local: no network call, just the text
// report written next to the binary.
func (m *Model) exportEquations() {
	name := export.EquationsFilename(m.rec.ID)
	if err := export.WriteFile(name, export.EquationsReport(m.rec)); err != nil {
		m.errText = "Export failed: " + err.Error()
		return
	}
	m.notice = "saved " + name
}

func (m Model) View() string {
	var view string
	switch m.screen {
	case screenUpload:
		view = m.uploadView()
	case screenResults:
		view = m.resultsView()
	}

	if m.errText != "" {
		box := errorBoxStyle.
			BorderForeground(CurrentTheme.Error).
			Foreground(CurrentTheme.Error).
			Render(m.errText + "\n\n" + helpStyle.Render("press any key"))
		return box + "\n\n" + view
	}
	return view
}

func (m Model) uploadView() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("KOLAM ANALYZER") + "\n")
	s.WriteString(labelStyle.Render("Service") + valueStyle.Render(m.cfg.ServerURL) + "\n\n")

	if len(m.files) == 0 {
		s.WriteString(valueStyle.Render("no image files in this directory") + "\n")
	} else {
		s.WriteString("UPLOAD AN IMAGE\n")
		for i, f := range m.files {
			if i == m.cursor {
				s.WriteString(selectedStyle.Render("> "+f) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(f) + "\n")
			}
		}
	}

	if m.busy {
		s.WriteString("\n" + themed(CurrentTheme.Secondary).Render("⏳ "+m.busyText) + "\n")
	}

	s.WriteString(helpStyle.Render("↑↓:Select Enter:Analyze Q:Quit"))
	return canvasStyle.Render(s.String())
}

func (m Model) resultsView() string {
	canvasView := canvasStyle.Render(themed(CurrentTheme.Primary).Render(m.renderer.String()))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.rec.Type)) + "\n")
	s.WriteString(m.playbackLine() + "\n\n")

	s.WriteString(labelStyle.Render("Symmetry") + valueStyle.Render(m.rec.Symmetry) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%d x %d %s",
		m.rec.Grid.Dimensions[0], m.rec.Grid.Dimensions[1], m.rec.Grid.Type)) + "\n")
	s.WriteString(labelStyle.Render("Complexity") + valueStyle.Render(m.rec.Complexity) + "\n")
	s.WriteString(labelStyle.Render("Dots") + valueStyle.Render(fmt.Sprintf("%d", len(m.rec.Grid.Dots))) + "\n")

	s.WriteString("\nEQUATIONS\n")
	s.WriteString(labelStyle.Render("x(t)") + valueStyle.Render(m.rec.Equations.XFunction) + "\n")
	s.WriteString(labelStyle.Render("y(t)") + valueStyle.Render(m.rec.Equations.YFunction) + "\n")
	s.WriteString(labelStyle.Render("Domain") + valueStyle.Render(fmt.Sprintf("[%g, %g]",
		m.rec.Equations.Domain[0], m.rec.Equations.Domain[1])) + "\n")
	s.WriteString(labelStyle.Render("Fit (r²)") + valueStyle.Render(fmt.Sprintf("%.3f", m.rec.Equations.RSquared)) + "\n")

	if chart := m.strokeChart(); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}
	if m.busy {
		s.WriteString("\n" + themed(CurrentTheme.Secondary).Render("⏳ "+m.busyText) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Play/Pause R:Reset +/-:Speed\nS:Export-SVG E:Export-Eq\nU:New-Image T:Theme Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// playbackLine shows the play indicator and progress. Paused and
// complete share the same glyph; only the label differs.
func (m Model) playbackLine() string {
	glyph := "▶"
	label := "PAUSED"
	if m.player.Playing() {
		glyph = "⏸"
		label = "PLAYING"
	} else if m.player.Done() {
		label = "COMPLETE"
	}

	pathIdx, pointIdx := m.player.Cursor()
	shown := pathIdx
	if shown >= len(m.rec.Paths) {
		shown = len(m.rec.Paths) - 1
	}
	if shown < 0 {
		shown = 0
	}
	return fmt.Sprintf("%s %s  %.2fx  path %d/%d pt %d",
		glyph, label, m.player.Speed(), shown+1, len(m.rec.Paths), pointIdx)
}

// strokeChart plots the coordinate series of the current path, a
// rough terminal stand-in for the parametric curve preview.
func (m Model) strokeChart() string {
	pathIdx, _ := m.player.Cursor()
	if pathIdx >= len(m.rec.Paths) {
		pathIdx = len(m.rec.Paths) - 1
	}
	if pathIdx < 0 || len(m.rec.Paths[pathIdx]) < 2 {
		return ""
	}

	path := m.rec.Paths[pathIdx]
	xs := make([]float64, len(path))
	ys := make([]float64, len(path))
	for i, p := range path {
		xs[i] = p.X()
		ys[i] = p.Y()
	}

	xChart := asciigraph.Plot(xs, asciigraph.Height(3), asciigraph.Width(30), asciigraph.Caption("x along stroke"))
	yChart := asciigraph.Plot(ys, asciigraph.Height(3), asciigraph.Width(30), asciigraph.Caption("y along stroke"))
	return xChart + "\n\n" + yChart
}
