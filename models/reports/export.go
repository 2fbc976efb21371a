package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/mmdatafocus/vendor_briefing/config"
	"github.com/mmdatafocus/vendor_briefing/models"
	"github.com/mmdatafocus/vendor_briefing/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DocumentFileName = "CDG70_Vendor_Briefing_Checklist.pdf"
	WorkbookFileName = "CDG70_Vendor_Briefing_Checklist.xlsx"
)

var tracer = otel.Tracer("vendor-briefing/reports")

var ErrExportInProgress = errors.New("document export already in progress")

// ExportError is the single user-facing failure of an export. Nothing is left on disk when it
// is returned, so the export can simply be retried.
type ExportError struct {
	Op  string
	Err error
}

func (e *ExportError) Error() string {
	return "export " + e.Op + ": " + e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ExportOptions configures an Exporter.
type ExportOptions struct {
	OutputDir string
	// Workbook also writes the record as a spreadsheet next to the document.
	Workbook bool
	PDF      PDFOptions
	Render   RenderOptions
	// NewSurface overrides the drawing surface; defaults to a PDFSurface built from PDF.
	NewSurface func() (Surface, error)
}

// ExportOptionsFromSettings maps environment settings onto export options.
func ExportOptionsFromSettings(s config.Settings) ExportOptions {
	return ExportOptions{
		OutputDir: s.OutputDir,
		PDF:       PDFOptions{UTF8FontPath: s.UTF8FontPath},
		Render: RenderOptions{
			Timezone:               s.Timezone,
			IncludeAdditionalPages: s.IncludeAdditionalPages,
		},
	}
}

type ExportResult struct {
	Path         string
	WorkbookPath string
	RenderResult
}

// Exporter renders validated records to files. A second Export while one is running is rejected.
type Exporter struct {
	opts     ExportOptions
	renderer *Renderer
	running  atomic.Bool
}

func NewExporter(opts ExportOptions) *Exporter {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.NewSurface == nil {
		pdfOpts := opts.PDF
		opts.NewSurface = func() (Surface, error) { return NewPDFSurface(pdfOpts) }
	}
	return &Exporter{opts: opts, renderer: NewRenderer(opts.Render)}
}

// Export validates the record, renders it and writes the artifacts.
func (e *Exporter) Export(ctx context.Context, rec *models.ChecklistRecord) (result *ExportResult, err error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, &ExportError{Op: "start", Err: ErrExportInProgress}
	}
	defer e.running.Store(false)

	ctx, span := tracer.Start(ctx, "reports.Export")
	defer span.End()
	start := time.Now()
	defer func() {
		finishExportSpan(span, err)
		logExport(ctx, result, err, time.Since(start))
	}()

	if _, err := models.ValidateRecord(rec); err != nil {
		return nil, &ExportError{Op: "validate", Err: err}
	}
	snapshot := rec.Clone()

	surface, err := e.opts.NewSurface()
	if err != nil {
		return nil, &ExportError{Op: "surface", Err: err}
	}
	rendered := e.renderer.Render(ctx, snapshot, surface)

	result = &ExportResult{RenderResult: rendered}
	result.Path, err = writeAtomically(e.opts.OutputDir, DocumentFileName, surface.Save)
	if err != nil {
		return nil, &ExportError{Op: "write document", Err: err}
	}

	if e.opts.Workbook {
		result.WorkbookPath, err = writeAtomically(e.opts.OutputDir, WorkbookFileName, func(w io.Writer) error {
			return WriteWorkbook(w, snapshot)
		})
		if err != nil {
			// keep the pair consistent: no half export
			_ = os.Remove(result.Path)
			return nil, &ExportError{Op: "write workbook", Err: err}
		}
	}
	return result, nil
}

// writeAtomically writes through a temp file in dir and renames it into place.
func writeAtomically(dir, name string, write func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := write(tmp); err != nil {
		tmp.Close()
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", err
	}
	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", err
	}
	return final, nil
}

func finishExportSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.String("document.name", DocumentFileName))
}

func logExport(ctx context.Context, result *ExportResult, err error, elapsed time.Duration) {
	logger := config.GetLogger()
	fields := logrus.Fields{"elapsed_ms": elapsed.Milliseconds()}
	if sessionID, ok := utils.GetSessionIdFromContext(ctx); ok {
		fields["session_id"] = sessionID
	}
	if err != nil {
		config.LogError(logger, "reports", "Export", "export checklist document", fields, err)
		return
	}
	fields["path"] = result.Path
	fields["pages"] = result.Pages
	logger.WithFields(fields).Info("[export.complete]")
}

// String renders a short human summary, used by the CLI.
func (r *ExportResult) String() string {
	s := fmt.Sprintf("wrote %s (%d pages)", r.Path, r.Pages)
	if r.WorkbookPath != "" {
		s += fmt.Sprintf(", %s", r.WorkbookPath)
	}
	if !r.SignatureEmbedded {
		s += ", signature not embedded"
	}
	return s
}
