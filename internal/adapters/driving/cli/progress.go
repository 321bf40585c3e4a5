package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/custodia-labs/patristic/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/logger"
)

var _ driven.ProgressReporter = (*progressReporter)(nil)

const progressWidth = 40

// stepMsg reports one finished batch.
type stepMsg struct {
	failed bool
}

// finishMsg ends the stage.
type finishMsg struct{}

// progressModel renders a single stage as a bar with counts.
type progressModel struct {
	styles *styles.Styles
	bar    progress.Model
	stage  string
	total  int
	done   int
	failed int
}

func newProgressModel(s *styles.Styles, stage string, total int) progressModel {
	return progressModel{
		styles: s,
		bar:    s.ProgressBar(progressWidth),
		stage:  stage,
		total:  total,
	}
}

// Init implements tea.Model.
func (m progressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.done++
		if msg.failed {
			m.failed++
		}
	case finishMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m progressModel) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}

	line := fmt.Sprintf("%s %s %d/%d", m.stage, m.bar.ViewAs(percent), m.done, m.total)
	if m.failed > 0 {
		line += " " + m.styles.Warning.Render(fmt.Sprintf("(%d failed)", m.failed))
	}
	return line
}

// linePrinter prints whole lines above a running program's view.
type linePrinter interface {
	Println(args ...any)
}

// programWriter forwards log lines to a running program so they are printed
// above the bar instead of through it.
type programWriter struct {
	printer linePrinter
}

func (w programWriter) Write(b []byte) (int, error) {
	w.printer.Println(strings.TrimRight(string(b), "\n"))
	return len(b), nil
}

// progressReporter shows embedding progress. On a terminal a Bubble Tea
// program redraws the bar in place and log output is routed through it;
// otherwise one line is printed per step.
type progressReporter struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	styles      *styles.Styles
	log         *logger.Logger
	logOut      io.Writer
	model       progressModel
	program     *tea.Program
	done        chan struct{}
}

func newProgressReporter(out io.Writer) *progressReporter {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &progressReporter{
		out:         out,
		interactive: interactive,
		styles:      styles.DefaultStyles(),
		log:         logger.Default(),
	}
}

func (p *progressReporter) Start(stage string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.model = newProgressModel(p.styles, stage, total)
	if !p.interactive {
		fmt.Fprintln(p.out, p.model.View())
		return
	}

	p.program = tea.NewProgram(p.model,
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	p.done = make(chan struct{})
	go func(prog *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = prog.Run() //nolint:errcheck // display only
	}(p.program, p.done)

	p.logOut = p.log.Output()
	p.log.SetOutput(programWriter{printer: p.program})
}

func (p *progressReporter) Step(_ int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := stepMsg{failed: err != nil}
	if p.program != nil {
		p.program.Send(msg)
		return
	}
	next, _ := p.model.Update(msg)
	p.model = next.(progressModel)
	fmt.Fprintln(p.out, p.model.View())
}

func (p *progressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.program == nil {
		return
	}
	p.program.Send(finishMsg{})
	<-p.done
	p.program = nil
	p.log.SetOutput(p.logOut)
}
