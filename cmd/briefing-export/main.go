package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mmdatafocus/vendor_briefing/config"
	"github.com/mmdatafocus/vendor_briefing/models"
	"github.com/mmdatafocus/vendor_briefing/models/reports"
	"github.com/mmdatafocus/vendor_briefing/utils"
)

func main() {
	recordPath := flag.String("record", "", "Path to the checklist record JSON.")
	signaturePath := flag.String("signature", "", "Optional: signature image to upload (png, jpeg, gif, bmp, tiff).")
	outDir := flag.String("out", "", "Optional: output directory. Defaults to OUTPUT_DIR or the working directory.")
	workbook := flag.Bool("workbook", false, "Also write the record as an .xlsx workbook.")
	includePages := flag.Bool("include-pages", false, "Render additional pages (same as RENDER_ADDITIONAL_PAGES=true).")
	preview := flag.Bool("preview", false, "Print a text preview of the document instead of writing files.")
	steps := flag.Bool("steps", false, "Print the form steps for the record and exit.")
	flag.Parse()

	if strings.TrimSpace(*recordPath) == "" {
		fmt.Fprintln(os.Stderr, "-record is required")
		flag.Usage()
		os.Exit(2)
	}

	rec, err := loadRecord(*recordPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read record: %v\n", err)
		os.Exit(1)
	}
	form := models.NewFormFromRecord(rec)
	ctx := utils.SetSessionIdInContext(context.Background(), form.SessionID())

	if *steps {
		printSteps(os.Stdout, form)
		return
	}

	if *signaturePath != "" {
		if err := uploadSignature(ctx, form, *signaturePath); err != nil {
			fmt.Fprintf(os.Stderr, "signature rejected: %v\n", err)
			os.Exit(1)
		}
	}

	settings := config.LoadSettings()
	if *outDir != "" {
		settings.OutputDir = *outDir
	}
	if *includePages {
		settings.IncludeAdditionalPages = true
	}
	opts := reports.ExportOptionsFromSettings(settings)
	opts.Workbook = *workbook

	if *preview {
		if err := printPreview(ctx, os.Stdout, form, opts.Render); err != nil {
			fmt.Fprintf(os.Stderr, "preview failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result, err := reports.NewExporter(opts).Export(ctx, form.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate PDF: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result)
}

func loadRecord(path string) (*models.ChecklistRecord, error) {
	rec := models.NewChecklistRecord(time.Now())
	if err := utils.ReadJSONFile(path, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func uploadSignature(ctx context.Context, form *models.Form, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return err
	}
	capture := models.NewSignatureCapture(models.SignatureMethodUploaded)
	err = capture.Upload(ctx, models.SignatureFile{
		Name:      filepath.Base(path),
		MediaType: mtype.String(),
		Size:      info.Size(),
		Open:      func() (io.ReadCloser, error) { return os.Open(path) },
	})
	if err != nil {
		return err
	}
	capture.Apply(form)
	return nil
}

func printSteps(w io.Writer, form *models.Form) {
	seq := models.NewStepSequencer(form)
	for {
		fmt.Fprintf(w, "Step %d of %d: %s (%.0f%%)\n", seq.CurrentStep(), seq.TotalSteps(), seq.Title(), seq.Progress())
		if seq.IsLast() {
			return
		}
		seq.Next()
	}
}

func printPreview(ctx context.Context, w io.Writer, form *models.Form, opts reports.RenderOptions) error {
	rec, err := models.ValidateRecord(form.Snapshot())
	if err != nil {
		return err
	}
	surface := reports.NewRecordingSurface()
	result := reports.NewRenderer(opts).Render(ctx, rec, surface)
	for _, recovered := range result.Recovered {
		fmt.Fprintf(os.Stderr, "warning: %v\n", recovered)
	}
	return surface.Save(w)
}
