package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jsmin/internal/driver"
)

// share of a file's work that is behind it once a stage starts
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:    0.05,
	driver.StageParse:   0.2,
	driver.StageBind:    0.5,
	driver.StageRewrite: 0.7,
	driver.StageCrunch:  0.8,
	driver.StageEmit:    0.9,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:    "loading",
	driver.StageParse:   "parsing",
	driver.StageBind:    "binding",
	driver.StageRewrite: "rewriting",
	driver.StageCrunch:  "crunching",
	driver.StageEmit:    "emitting",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusCol  = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)

	statusColor = map[driver.Status]lipgloss.Color{
		driver.StatusQueued:  "8",
		driver.StatusWorking: "6",
		driver.StatusDone:    "2",
		driver.StatusCached:  "4",
		driver.StatusError:   "1",
	}
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	files   []fileState
	byPath  map[string]int
	width   int
	closed  bool
}

type fileState struct {
	path   string
	stage  driver.Stage
	status driver.Status
	err    error
}

// finished reports whether the file reached a final status; a load failure
// arrives with its stage still set.
func (f fileState) finished() bool {
	switch f.status {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	return false
}

func (f fileState) label() string {
	if f.status == driver.StatusWorking {
		if verb, ok := stageVerb[f.stage]; ok {
			return verb
		}
	}
	return string(f.status)
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file pipeline
// progress until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(statusColor[driver.StatusWorking])

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		files:   make([]fileState, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.files[i] = fileState{path: path, status: driver.StatusQueued}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one driver event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	f := &m.files[i]
	f.stage, f.status = ev.Stage, ev.Status
	if ev.Err != nil {
		f.err = ev.Err
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.files) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range m.files {
		if f.finished() {
			total++
			continue
		}
		total += stageWeight[f.stage]
	}
	return total / float64(len(m.files))
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	finished := 0
	for _, f := range m.files {
		if f.finished() {
			finished++
		}
	}

	mark := m.spinner.View()
	if m.closed {
		mark = "✔"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s [%d/%d]", mark, m.title, finished, len(m.files))))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusCol.GetWidth()-4, 20)
	for _, f := range m.files {
		status := statusCol.Foreground(statusColor[f.status]).Render(f.label())
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(f.path, nameWidth))
		if f.err != nil {
			// ошибка под строкой файла, с отступом по колонке статуса
			indent := strings.Repeat(" ", statusCol.GetWidth()+3)
			b.WriteString(indent + errStyle.Render(truncate(f.err.Error(), nameWidth)) + "\n")
		}
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
