// Package linear provides a synchronous, line-buffered renderer for build progress.
package linear

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/vario/internal/ui/output"
	"go.trai.ch/vario/internal/ui/style"
)

var (
	_ ports.Renderer = (*Renderer)(nil)
	_ ports.Console  = (*Renderer)(nil)
)

// Renderer prints chronological progress lines to stderr and size reports to stdout.
// Output of a stage is prefixed with its build, e.g. "[full-dev → bundle]".
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	errOut *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	label     string
	startTime time.Time
	buffer    bytes.Buffer
}

// NewRenderer creates a new Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		out:    output.New(stdout),
		errOut: output.New(stderr),
		tasks:  make(map[string]*taskState),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial lines of builds that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		r.flushLocked(task)
	}
	return nil
}

// Wait is a no-op; the renderer writes synchronously.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the builds about to run.
func (r *Renderer) OnPlanEmit(targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Building %d target(s): %s\n", len(targets), strings.Join(targets, ", "))
}

// OnTaskStart registers the span and prints a start line for builds.
// Stages only print their output and completion.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := name
	if parent, ok := r.tasks[parentID]; ok {
		label = parent.label + " " + style.Arrow + " " + name
	}
	r.tasks[spanID] = &taskState{label: label, startTime: startTime}

	if parentID == "" {
		_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(label))
	}
}

// OnTaskLog buffers data and prints complete lines with the task prefix.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	task.buffer.Write(data)
	for {
		idx := bytes.IndexByte(task.buffer.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := task.buffer.Next(idx + 1)
		r.printLineLocked(task.label, line)
	}
}

// OnTaskComplete flushes the remaining partial line and prints the outcome.
// A finished build also shows its raw size and digest when they were recorded.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, outcome domain.SpanOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	r.flushLocked(task)
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	if outcome.Err != nil {
		symbol := r.errOut.String(style.Cross).Foreground(r.errOut.Color(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", r.prefix(task.label), symbol, duration, outcome.Err)
		return
	}
	symbol := r.errOut.String(style.Check).Foreground(r.errOut.Color(string(style.Green))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v%s\n", r.prefix(task.label), symbol, duration, r.details(outcome))
}

func (r *Renderer) details(outcome domain.SpanOutcome) string {
	var parts []string
	if outcome.Size != nil {
		parts = append(parts, fmt.Sprintf("%dB", outcome.Size.Raw))
	}
	if outcome.Digest != "" {
		parts = append(parts, "xxh64 "+outcome.Digest)
	}
	if len(parts) == 0 {
		return ""
	}
	return r.errOut.String(" (" + strings.Join(parts, ", ") + ")").Faint().String()
}

// PrintSize prints the size line of an artifact to stdout.
func (r *Renderer) PrintSize(outputFile string, report domain.SizeReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cyan := r.out.Color(string(style.Cyan))
	raw := r.out.String(fmt.Sprintf("%dB", report.Raw)).Foreground(cyan).String()
	zipped := r.out.String(fmt.Sprintf("%dB", report.Compressed)).Foreground(cyan).String()
	_, _ = fmt.Fprintf(r.stdout, "Size of %s: raw: %s zipped: %s, compression ratio: %.2f%%\n",
		outputFile, raw, zipped, report.Ratio)
}

// ReportError prints every located diagnostic of err to stderr. Errors without
// diagnostics are printed as a single line.
func (r *Renderer) ReportError(err error) {
	if err == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var buildErr *domain.BuildError
	if !errors.As(err, &buildErr) || len(buildErr.Diagnostics) == 0 {
		_, _ = fmt.Fprintln(r.stderr, err.Error())
		return
	}
	for _, d := range buildErr.Diagnostics {
		_, _ = fmt.Fprintln(r.stderr, d.String())
	}
}

func (r *Renderer) flushLocked(task *taskState) {
	if task.buffer.Len() > 0 {
		r.printLineLocked(task.label, task.buffer.Bytes())
		task.buffer.Reset()
	}
}

func (r *Renderer) printLineLocked(label string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", r.prefix(label), line)
}

func (r *Renderer) prefix(label string) string {
	return r.errOut.String("[" + label + "]").Faint().String()
}
