// Package runner drives an extraction run across the pages of one document:
// it owns the run state machine, progress reporting, cooperative cancellation
// and the final bulk write.
package runner

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jmendezr85/pdf-extractor-excel/internal/pdf"
	"github.com/jmendezr85/pdf-extractor-excel/internal/pipeline"
	"github.com/jmendezr85/pdf-extractor-excel/internal/rules"
)

// DefaultMaxPages caps how many pages a run processes when the caller does
// not set a limit.
const DefaultMaxPages = 2000

// State is the run lifecycle: Idle until started, Running during the page
// loop, then exactly one terminal state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrCancelled is the terminal error of a run stopped by the user.
var ErrCancelled = errors.New("proceso cancelado por el usuario")

// Options configure one run.
type Options struct {
	SheetName             string
	UseTemplateHeuristics bool
	MaxPages              int
	IncludePDFPage        bool
}

// DefaultOptions mirror the defaults of the interactive front end.
func DefaultOptions() Options {
	return Options{
		SheetName:             "Datos",
		UseTemplateHeuristics: true,
		MaxPages:              DefaultMaxPages,
		IncludePDFPage:        true,
	}
}

// ProgressFunc receives one-way progress notifications: a new integer
// percentage (each value delivered at most once per run) and a status line.
type ProgressFunc func(percent int, message string)

// RowWriter is the tabular sink rows are handed to after the page loop.
type RowWriter interface {
	WriteRows(rows []pipeline.Row, path, sheetName string) error
}

// Summary describes a finished run.
type Summary struct {
	RunID         uuid.UUID
	State         State
	TotalPages    int
	Rows          int
	TextlessPages int
	Elapsed       time.Duration
	OutputPath    string
}

// Runner executes extraction runs. A Runner is meant to live on one worker
// goroutine; the only value shared with the controlling side is the cancel
// flag, plus the one-way progress callback.
type Runner struct {
	writer     RowWriter
	onProgress ProgressFunc
	cancel     atomic.Bool
	state      atomic.Int32
}

// New creates a Runner writing through w. onProgress may be nil.
func New(w RowWriter, onProgress ProgressFunc) *Runner {
	return &Runner{writer: w, onProgress: onProgress}
}

// Cancel requests cooperative cancellation. It is safe to call from any
// goroutine; the run notices it between pages, never mid-page.
func (r *Runner) Cancel() {
	r.cancel.Store(true)
}

// State returns the current run state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}

func (r *Runner) emit(percent int, message string) {
	if r.onProgress != nil {
		r.onProgress(percent, message)
	}
}

// RunFile opens the document at pdfPath and executes the run against it.
func (r *Runner) RunFile(pdfPath, outPath string, fields []rules.FieldRule, opts Options) (*Summary, error) {
	doc, err := pdf.Open(pdfPath)
	if err != nil {
		r.setState(StateFailed)
		return &Summary{RunID: uuid.New(), State: StateFailed, OutputPath: outPath}, err
	}
	defer doc.Close()
	return r.Run(doc, outPath, fields, opts)
}

// Run executes the extraction across src's pages and hands the assembled
// rows to the writer. It returns a terminal error for setup failures,
// cancellation and write failures; per-field misses never fail a run.
func (r *Runner) Run(src pdf.PageSource, outPath string, fields []rules.FieldRule, opts Options) (*Summary, error) {
	runID := uuid.New()
	start := time.Now()
	summary := &Summary{RunID: runID, OutputPath: outPath}

	fail := func(err error) (*Summary, error) {
		r.setState(StateFailed)
		summary.State = StateFailed
		summary.Elapsed = time.Since(start)
		return summary, err
	}

	r.cancel.Store(false)
	r.setState(StateRunning)

	// All user patterns compile before any page is touched; one bad pattern
	// is fatal to the whole run.
	processor, err := pipeline.NewProcessor(fields, opts.UseTemplateHeuristics, opts.IncludePDFPage)
	if err != nil {
		return fail(err)
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	totalPages := src.PageCount()
	if totalPages > maxPages {
		totalPages = maxPages
	}
	summary.TotalPages = totalPages

	log.Printf("run %s: %d page(s), %d field(s)", runID, totalPages, processor.FieldCount())

	rows := make([]pipeline.Row, 0, totalPages)
	textless := 0
	lastEmit := 0

	for i := 0; i < totalPages; i++ {
		if r.cancel.Load() {
			r.setState(StateCancelled)
			summary.State = StateCancelled
			summary.Elapsed = time.Since(start)
			return summary, ErrCancelled
		}

		pageNum := i + 1
		text := src.PageText(pageNum)
		if strings.TrimSpace(text) == "" {
			textless++
		}

		rows = append(rows, processor.ProcessPage(text, pageNum))

		pct := pageNum * 100 / totalPages
		if pct != lastEmit {
			lastEmit = pct
			r.emit(pct, fmt.Sprintf("Procesando página %d/%d", pageNum, totalPages))
		}
	}
	summary.TextlessPages = textless

	if textless > textlessWarningThreshold(totalPages) {
		r.emit(100, fmt.Sprintf("Advertencia: %d/%d páginas sin texto (PDF escaneado)", textless, totalPages))
	}

	if err := r.writer.WriteRows(rows, outPath, opts.SheetName); err != nil {
		return fail(err)
	}

	r.setState(StateCompleted)
	summary.State = StateCompleted
	summary.Rows = len(rows)
	summary.Elapsed = time.Since(start)
	r.emit(100, fmt.Sprintf("Completado en %.1fs. Filas: %d", summary.Elapsed.Seconds(), summary.Rows))
	return summary, nil
}

// textlessWarningThreshold is the page count above which a run warns that
// the source is probably a scanned document: more than 60% of the processed
// pages, and always more than 3.
func textlessWarningThreshold(totalPages int) int {
	t := int(float64(totalPages) * 0.6)
	if t < 3 {
		t = 3
	}
	return t
}
