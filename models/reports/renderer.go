package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/vendor_briefing/config"
	"github.com/mmdatafocus/vendor_briefing/models"
	"github.com/mmdatafocus/vendor_briefing/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DocumentTitle = "CDG70 Vendor Briefing Checklist"
	FooterText    = "CDG70 Vendor Briefing Checklist - CONFIDENTIAL"

	ApprovalStatement = "I hereby confirm that all items in this vendor briefing checklist have been thoroughly reviewed and properly addressed according to company policies and procedures. By signing below, I acknowledge my understanding and acceptance of all the information provided in this document."

	NoPreBriefText     = "No pre-brief information provided"
	NoPostBriefText    = "No post-brief information provided"
	SignatureErrorText = "Signature could not be processed"
	NoAnswerText       = "No answer provided"

	CheckedGlyph   = "☑"
	UncheckedGlyph = "☐"
	SelectedGlyph  = "◉"
	OptionGlyph    = "○"
)

var (
	colorBrand   = RGB{35, 47, 62}
	colorAccent  = RGB{255, 153, 0}
	colorText    = RGB{33, 33, 33}
	colorSubtext = RGB{97, 97, 97}
	colorWhite   = RGB{255, 255, 255}
)

const (
	fontTitle      = 20.0
	fontHeading    = 14.0
	fontSubheading = 12.0
	fontNormal     = 10.0
	fontSmall      = 8.0

	contentTop  = 40.0
	lineHeight  = 6.0
	labelOffset = 40.0
	wrapWidth   = UsableWidth - 20
	bandHeight  = 30.0
	footerTop   = 277.0
)

// RenderOptions controls the renderer. Zero values are usable.
type RenderOptions struct {
	// Now supplies the date printed on the cover and signature page.
	Now func() time.Time
	// Timezone for printed dates; empty means UTC.
	Timezone string
	// IncludeAdditionalPages renders user-created pages after the checklists.
	IncludeAdditionalPages bool
}

// RenderResult summarizes one render.
type RenderResult struct {
	Pages             int
	SignatureEmbedded bool
	// Recovered holds errors the renderer worked around, such as an *ImageEmbedError.
	Recovered []error
}

// Renderer lays a checklist record out as fixed A4 pages.
type Renderer struct {
	opts RenderOptions
}

func NewRenderer(opts RenderOptions) *Renderer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}
	return &Renderer{opts: opts}
}

// Render draws the record onto the surface. The record is expected to be validated already; the
// only failure it can meet is a bad signature image, which is replaced by a note.
func (r *Renderer) Render(ctx context.Context, rec *models.ChecklistRecord, s Surface) RenderResult {
	ctx, span := tracer.Start(ctx, "reports.Render")
	defer span.End()

	p := &pageWriter{s: s}
	printed := formatDocumentDate(utils.ConvertToLocalTime(r.opts.Now(), r.opts.Timezone))
	result := RenderResult{}

	p.coverBand(printed)
	p.y = contentTop
	p.vendorInformation(rec)
	p.jobDetails(rec, r.opts.Timezone)
	p.pageBreak()

	p.briefing(rec)
	p.pageBreak()

	p.checklists(rec)
	p.pageBreak()

	if r.opts.IncludeAdditionalPages {
		for i, page := range rec.AdditionalPages {
			p.additionalPage(i, page)
			p.pageBreak()
		}
	}

	embedded, err := p.signaturePage(rec, printed)
	if err != nil {
		result.Recovered = append(result.Recovered, err)
		logRecovered(ctx, err)
	}
	p.footer()

	result.Pages = s.PageCount()
	result.SignatureEmbedded = embedded
	span.SetAttributes(
		attribute.Int("document.pages", result.Pages),
		attribute.Bool("document.signature_embedded", embedded),
	)
	return result
}

func logRecovered(ctx context.Context, err error) {
	fields := logrus.Fields{"module": "reports", "funcName": "Render"}
	if sessionID, ok := utils.GetSessionIdFromContext(ctx); ok {
		fields["session_id"] = sessionID
	}
	config.GetLogger().WithFields(fields).Warn(err.Error())
}

// pageWriter carries the vertical cursor; every element is placed relative to what came before.
type pageWriter struct {
	s Surface
	y float64
}

func (p *pageWriter) coverBand(printed string) {
	p.s.SetFillColor(colorBrand)
	p.s.DrawFilledRect(0, 0, PageWidth, bandHeight)
	p.s.SetTextColor(colorWhite)
	p.s.SetFont(fontTitle, FontBold)
	p.s.DrawText(DocumentTitle, PageWidth/2, 15, AlignCenter)
	p.s.SetFont(fontSmall, FontNormal)
	p.s.DrawText(printed, PageWidth/2, 22, AlignCenter)
}

func (p *pageWriter) footer() {
	p.s.SetFillColor(colorBrand)
	p.s.DrawFilledRect(0, footerTop, PageWidth, PageHeight-footerTop)
	p.s.SetTextColor(colorWhite)
	p.s.SetFont(fontSmall, FontNormal)
	p.s.DrawText(FooterText, PageWidth/2, 287, AlignCenter)
}

func (p *pageWriter) pageBreak() {
	p.footer()
	p.s.AddPage()
	p.y = contentTop
}

func (p *pageWriter) heading(title string) {
	p.s.SetTextColor(colorBrand)
	p.s.SetFont(fontHeading, FontBold)
	p.s.DrawText(title, Margin, p.y, AlignLeft)
	p.y += 8
	p.s.SetDrawColor(colorAccent)
	p.s.SetLineWidth(0.5)
	p.s.DrawLine(Margin, p.y, Margin+40, p.y)
	p.y += 8
	p.s.SetTextColor(colorText)
	p.s.SetFont(fontNormal, FontNormal)
}

func (p *pageWriter) field(label, value string) {
	p.s.SetFont(fontNormal, FontBold)
	p.s.DrawText(label+":", Margin, p.y, AlignLeft)
	p.s.SetFont(fontNormal, FontNormal)
	p.s.DrawText(value, Margin+labelOffset, p.y, AlignLeft)
	p.y += 7
}

// paragraph draws wrapped text; the line count decides how far the cursor moves.
func (p *pageWriter) paragraph(text string, x float64) {
	lines := p.s.WrapText(text, wrapWidth)
	for i, line := range lines {
		p.s.DrawText(line, x, p.y+float64(i)*lineHeight, AlignLeft)
	}
	p.y += float64(len(lines))*lineHeight + 8
}

func (p *pageWriter) label(text string, size float64) {
	p.s.SetFont(size, FontBold)
	p.s.DrawText(text, Margin, p.y, AlignLeft)
	p.y += lineHeight
}

func (p *pageWriter) vendorInformation(rec *models.ChecklistRecord) {
	p.heading("Vendor Information")
	p.field("Vendor Name", rec.VendorName)
	p.field("Equipment", rec.Equipment)
	p.field("MCM/SIM-T No.", rec.ReferenceNumber)
	p.y += 5
}

func (p *pageWriter) jobDetails(rec *models.ChecklistRecord, timezone string) {
	p.heading("Job Details")

	p.label("Job Description:", fontNormal)
	p.s.SetFont(fontNormal, FontNormal)
	p.paragraph(rec.JobDescription, Margin)

	p.label("Vendor/DCEO Engineers:", fontNormal)
	p.s.SetFont(fontNormal, FontNormal)
	for i, e := range rec.Engineers {
		p.s.DrawText(EngineerLine(i, e), Margin+5, p.y, AlignLeft)
		p.y += lineHeight
	}
	p.y += 2

	p.field("Date of Visit", formatDocumentDate(utils.ConvertToLocalTime(rec.VisitDate, timezone)))
}

// EngineerLine formats one personnel entry as "1. Name (Role)".
func EngineerLine(index int, e models.Engineer) string {
	line := fmt.Sprintf("%d. %s", index+1, e.Name)
	if e.Role != "" {
		line += " (" + e.Role + ")"
	}
	return line
}

func (p *pageWriter) briefing(rec *models.ChecklistRecord) {
	p.heading("Briefing Information")
	p.s.SetTextColor(colorText)
	p.briefingBlock("Pre-Brief Information:", rec.PreBrief, NoPreBriefText)
	p.briefingBlock("Post-Brief Information:", rec.PostBrief, NoPostBriefText)
}

func (p *pageWriter) briefingBlock(title, text, placeholder string) {
	p.label(title, fontSubheading)
	if text == "" {
		p.s.SetFont(fontSubheading, FontItalic)
		p.s.DrawText(placeholder, Margin, p.y, AlignLeft)
		p.y += 8
		return
	}
	p.s.SetFont(fontSubheading, FontNormal)
	p.paragraph(text, Margin)
}

func (p *pageWriter) checklists(rec *models.ChecklistRecord) {
	for _, group := range models.ChecklistCatalog {
		p.heading(group.Title)
		for _, item := range group.Items {
			// catalog and struct are kept in sync by tests; an unknown key renders unchecked
			checked, _ := rec.Checklists.Flag(group.Key, item.Key)
			p.s.DrawText(CheckLine(checked, item.Label), Margin+5, p.y, AlignLeft)
			p.y += lineHeight
		}
		p.y += 5
	}
}

// CheckLine formats a checklist entry as a check glyph followed by its label.
func CheckLine(checked bool, label string) string {
	if checked {
		return CheckedGlyph + " " + label
	}
	return UncheckedGlyph + " " + label
}

func (p *pageWriter) additionalPage(index int, page models.AdditionalPage) {
	title := page.Title
	if title == "" {
		title = fmt.Sprintf("Additional Page %d", index+1)
	}
	p.heading(title)
	for _, block := range page.ContentBlocks {
		p.paragraph(block, Margin)
	}
	for _, q := range page.Questions {
		p.question(q)
	}
}

func (p *pageWriter) question(q models.Question) {
	p.s.SetFont(fontNormal, FontBold)
	for _, line := range p.s.WrapText(q.Text, wrapWidth) {
		p.s.DrawText(line, Margin, p.y, AlignLeft)
		p.y += lineHeight
	}
	p.s.SetFont(fontNormal, FontNormal)

	switch q.Kind {
	case models.QuestionKindText:
		if q.Answer == nil || q.Answer.Text == "" {
			p.placeholder(NoAnswerText)
		} else {
			p.paragraph(q.Answer.Text, Margin+5)
			return
		}
	case models.QuestionKindCheckbox:
		p.options(q, CheckedGlyph, UncheckedGlyph)
	case models.QuestionKindRadio:
		p.options(q, SelectedGlyph, OptionGlyph)
	default:
		panic(fmt.Sprintf("reports: unhandled question kind %q", q.Kind))
	}
	p.y += 4
}

func (p *pageWriter) options(q models.Question, on, off string) {
	selected := map[string]bool{}
	if q.Answer != nil {
		for _, s := range q.Answer.Selected {
			selected[s] = true
		}
	}
	for _, opt := range q.Options {
		glyph := off
		if selected[opt] {
			glyph = on
		}
		p.s.DrawText(glyph+" "+opt, Margin+5, p.y, AlignLeft)
		p.y += lineHeight
	}
}

func (p *pageWriter) placeholder(text string) {
	p.s.SetFont(fontNormal, FontItalic)
	p.s.SetTextColor(colorSubtext)
	p.s.DrawText(text, Margin+5, p.y, AlignLeft)
	p.s.SetTextColor(colorText)
	p.s.SetFont(fontNormal, FontNormal)
	p.y += lineHeight
}

// signaturePage returns whether the signature image made it onto the page.
func (p *pageWriter) signaturePage(rec *models.ChecklistRecord, printed string) (bool, error) {
	p.s.SetFillColor(colorBrand)
	p.s.DrawFilledRect(0, 0, PageWidth, bandHeight)
	p.s.SetTextColor(colorWhite)
	p.s.SetFont(fontHeading, FontBold)
	p.s.DrawText("Approval & Signature", PageWidth/2, 20, AlignCenter)

	p.s.SetTextColor(colorText)
	p.s.SetFont(fontNormal, FontNormal)
	lines := p.s.WrapText(ApprovalStatement, wrapWidth)
	for i, line := range lines {
		p.s.DrawText(line, Margin, p.y+float64(i)*lineHeight, AlignLeft)
	}
	p.y += float64(len(lines))*lineHeight + 15

	var embedErr error
	embedded := false
	if len(rec.Signature.ImageData) > 0 {
		p.s.SetFont(fontNormal, FontBold)
		p.s.DrawText("Authorized Signature:", Margin, p.y, AlignLeft)
		p.y += 10
		if err := p.s.DrawImage(rec.Signature.ImageData, Margin, p.y, 60, 30); err != nil {
			embedErr = err
			var ie *ImageEmbedError
			if !errors.As(err, &ie) {
				embedErr = &ImageEmbedError{Err: err}
			}
			p.s.SetFont(fontNormal, FontItalic)
			p.s.DrawText(SignatureErrorText, Margin, p.y, AlignLeft)
			p.y += 10
		} else {
			embedded = true
			p.y += 35
		}
	}

	p.s.SetFont(fontNormal, FontBold)
	p.s.DrawText("Date:", Margin, p.y, AlignLeft)
	p.s.SetFont(fontNormal, FontNormal)
	p.s.DrawText(printed, Margin+20, p.y, AlignLeft)
	return embedded, embedErr
}

// formatDocumentDate prints dates as "May 6th, 2024".
func formatDocumentDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
