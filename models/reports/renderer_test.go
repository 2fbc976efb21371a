package reports

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/mmdatafocus/vendor_briefing/models"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC) }

func validRecord() *models.ChecklistRecord {
	r := models.NewChecklistRecord(fixedNow())
	r.VendorName = "Acme Cooling"
	r.Equipment = "CRAH unit 4"
	r.ReferenceNumber = "MCM-1234"
	r.JobDescription = "Replace compressor"
	r.Engineers = []models.Engineer{{Name: "Jane Doe", Role: "Lead"}, {Name: "Sam Lee"}}
	return r
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func render(t *testing.T, rec *models.ChecklistRecord, opts RenderOptions) (*RecordingSurface, RenderResult) {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	s := NewRecordingSurface()
	return s, NewRenderer(opts).Render(context.Background(), rec, s)
}

func indexOf(texts []string, want string) int {
	for i, t := range texts {
		if t == want {
			return i
		}
	}
	return -1
}

func TestRender_MinimalRecordHasFixedPages(t *testing.T) {
	s, result := render(t, validRecord(), RenderOptions{})
	if result.Pages != 4 {
		t.Fatalf("expected 4 pages, got %d", result.Pages)
	}
	if result.SignatureEmbedded {
		t.Fatalf("expected no signature embedded for an unsigned record")
	}
	if len(result.Recovered) != 0 {
		t.Fatalf("expected no recovered errors, got %v", result.Recovered)
	}
	for page := 1; page <= 4; page++ {
		if indexOf(s.Texts(page), FooterText) < 0 {
			t.Fatalf("expected footer on page %d", page)
		}
	}
}

func TestRender_CoverAndVendorInformation(t *testing.T) {
	s, _ := render(t, validRecord(), RenderOptions{})
	texts := s.Texts(1)
	for _, want := range []string{DocumentTitle, "May 6th, 2024", "Vendor Information", "Acme Cooling", "MCM/SIM-T No.:", "MCM-1234", "Job Details", "1. Jane Doe (Lead)", "2. Sam Lee", "Date of Visit:"} {
		if indexOf(texts, want) < 0 {
			t.Fatalf("expected %q on the first page, got %v", want, texts)
		}
	}
	if indexOf(texts, "Vendor Information") > indexOf(texts, "Job Details") {
		t.Fatalf("expected vendor information before job details")
	}
}

func TestRender_BriefingPlaceholders(t *testing.T) {
	rec := validRecord()
	rec.PostBrief = "All work completed"
	s, _ := render(t, rec, RenderOptions{})
	texts := s.Texts(2)
	if indexOf(texts, NoPreBriefText) < 0 {
		t.Fatalf("expected pre-brief placeholder, got %v", texts)
	}
	if indexOf(texts, NoPostBriefText) >= 0 {
		t.Fatalf("expected no post-brief placeholder when text is present")
	}
	if indexOf(texts, "All work completed") < 0 {
		t.Fatalf("expected post-brief text, got %v", texts)
	}
	for _, op := range s.Ops {
		if op.Kind == OpText && op.Text == NoPreBriefText && op.Style != FontItalic {
			t.Fatalf("expected placeholder in italics, got %q", op.Style)
		}
	}
}

func TestRender_SecurityChecklistOrder(t *testing.T) {
	rec := validRecord()
	rec.Checklists.Security.CameraApproval = true
	s, _ := render(t, rec, RenderOptions{})
	texts := s.Texts(3)

	start := indexOf(texts, "Security Checklist")
	if start < 0 {
		t.Fatalf("expected security heading, got %v", texts)
	}
	expected := []string{
		UncheckedGlyph + " Identity Verified",
		UncheckedGlyph + " Access Arrangements",
		CheckedGlyph + " Camera Approval",
		UncheckedGlyph + " Escort Arrangements",
		UncheckedGlyph + " Confidentiality Agreement",
	}
	got := texts[start+1 : start+1+len(expected)]
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected line %d to be %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestRender_AllChecklistGroupsInCatalogOrder(t *testing.T) {
	s, _ := render(t, validRecord(), RenderOptions{})
	texts := s.Texts(3)
	last := -1
	items := 0
	for _, group := range models.ChecklistCatalog {
		i := indexOf(texts, group.Title)
		if i <= last {
			t.Fatalf("expected %q after previous group", group.Title)
		}
		last = i
		items += len(group.Items)
	}
	lines := 0
	for _, text := range texts {
		if strings.HasPrefix(text, UncheckedGlyph+" ") || strings.HasPrefix(text, CheckedGlyph+" ") {
			lines++
		}
	}
	if lines != items {
		t.Fatalf("expected %d checklist lines, got %d", items, lines)
	}
}

func TestRender_SignatureEmbedded(t *testing.T) {
	rec := validRecord()
	rec.Signature.ImageData = pngBytes(t, 50, 20)
	s, result := render(t, rec, RenderOptions{})
	if !result.SignatureEmbedded {
		t.Fatalf("expected signature embedded, recovered %v", result.Recovered)
	}
	found := false
	for _, op := range s.Ops {
		if op.Kind == OpImage {
			found = true
			if op.Page != result.Pages || op.W != 60 || op.H != 30 {
				t.Fatalf("expected 60x30 image on last page, got %+v", op)
			}
		}
	}
	if !found {
		t.Fatalf("expected an image op")
	}
	if indexOf(s.Texts(result.Pages), ApprovalStatement) >= 0 {
		t.Fatalf("expected approval statement to be wrapped")
	}
}

func TestRender_SignatureEmbedFailureIsRecovered(t *testing.T) {
	rec := validRecord()
	rec.Signature.ImageData = []byte("not an image")
	s, result := render(t, rec, RenderOptions{})
	if result.SignatureEmbedded {
		t.Fatalf("expected signature not embedded")
	}
	if len(result.Recovered) != 1 {
		t.Fatalf("expected one recovered error, got %v", result.Recovered)
	}
	var ie *ImageEmbedError
	if !errors.As(result.Recovered[0], &ie) {
		t.Fatalf("expected ImageEmbedError, got %T", result.Recovered[0])
	}
	texts := s.Texts(result.Pages)
	if indexOf(texts, SignatureErrorText) < 0 {
		t.Fatalf("expected signature placeholder, got %v", texts)
	}
	if indexOf(texts, "Date:") < 0 {
		t.Fatalf("expected the page to be completed after the failure")
	}
}

func additionalPagesRecord(t *testing.T) *models.ChecklistRecord {
	t.Helper()
	f := models.NewFormFromRecord(validRecord())
	id := f.AddPage("Site Notes")
	if err := f.AddContent(id, "Loading bay closes at 17:00"); err != nil {
		t.Fatalf("add content: %v", err)
	}
	text, _ := models.NewQuestion("Any damage observed?", models.QuestionKindText)
	radio, _ := models.NewQuestion("Area left clean?", models.QuestionKindRadio, "Yes", "No")
	boxes, _ := models.NewQuestion("Tools used", models.QuestionKindCheckbox, "Ladder", "Drill", "Lift")
	for _, q := range []models.Question{text, radio, boxes} {
		if err := f.AddQuestion(id, q); err != nil {
			t.Fatalf("add question: %v", err)
		}
	}
	if err := f.AnswerQuestion(id, 1, models.RadioAnswer("Yes")); err != nil {
		t.Fatalf("answer radio: %v", err)
	}
	if err := f.AnswerQuestion(id, 2, models.CheckboxAnswer("Drill", "Lift")); err != nil {
		t.Fatalf("answer checkbox: %v", err)
	}
	return f.Snapshot()
}

func TestRender_AdditionalPagesExcludedByDefault(t *testing.T) {
	s, result := render(t, additionalPagesRecord(t), RenderOptions{})
	if result.Pages != 4 {
		t.Fatalf("expected 4 pages, got %d", result.Pages)
	}
	if indexOf(s.Texts(0), "Site Notes") >= 0 {
		t.Fatalf("expected additional page not to be rendered")
	}
}

func TestRender_AdditionalPagesIncluded(t *testing.T) {
	s, result := render(t, additionalPagesRecord(t), RenderOptions{IncludeAdditionalPages: true})
	if result.Pages != 5 {
		t.Fatalf("expected 5 pages, got %d", result.Pages)
	}
	texts := s.Texts(4)
	for _, want := range []string{
		"Site Notes",
		"Loading bay closes at 17:00",
		"Any damage observed?",
		NoAnswerText,
		SelectedGlyph + " Yes",
		OptionGlyph + " No",
		UncheckedGlyph + " Ladder",
		CheckedGlyph + " Drill",
		CheckedGlyph + " Lift",
	} {
		if indexOf(texts, want) < 0 {
			t.Fatalf("expected %q on the additional page, got %v", want, texts)
		}
	}
}

func TestEngineerLine(t *testing.T) {
	if got := EngineerLine(0, models.Engineer{Name: "Jane", Role: "Lead"}); got != "1. Jane (Lead)" {
		t.Fatalf("expected role suffix, got %q", got)
	}
	if got := EngineerLine(2, models.Engineer{Name: "Sam"}); got != "3. Sam" {
		t.Fatalf("expected no role suffix, got %q", got)
	}
}

func TestFormatDocumentDate(t *testing.T) {
	cases := map[int]string{
		1:  "January 1st, 2024",
		2:  "January 2nd, 2024",
		3:  "January 3rd, 2024",
		4:  "January 4th, 2024",
		11: "January 11th, 2024",
		12: "January 12th, 2024",
		13: "January 13th, 2024",
		21: "January 21st, 2024",
		22: "January 22nd, 2024",
		31: "January 31st, 2024",
	}
	for day, expected := range cases {
		got := formatDocumentDate(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC))
		if got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	}
}

func TestRender_TimezoneShiftsPrintedDate(t *testing.T) {
	late := func() time.Time { return time.Date(2024, 5, 6, 23, 30, 0, 0, time.UTC) }
	s, _ := render(t, validRecord(), RenderOptions{Now: late, Timezone: "Asia/Singapore"})
	if indexOf(s.Texts(1), "May 7th, 2024") < 0 {
		t.Fatalf("expected local date on the cover, got %v", s.Texts(1))
	}
}
