package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestPDFSurface_RendersDocument(t *testing.T) {
	s, err := NewPDFSurface(PDFOptions{CreatedAt: fixedNow()})
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	rec := validRecord()
	rec.Signature.ImageData = pngBytes(t, 100, 40)
	result := NewRenderer(RenderOptions{Now: fixedNow}).Render(context.Background(), rec, s)
	if result.Pages != 4 {
		t.Fatalf("expected 4 pages, got %d", result.Pages)
	}
	if !result.SignatureEmbedded {
		t.Fatalf("expected signature embedded, recovered %v", result.Recovered)
	}

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF header")
	}
}

func TestPDFSurface_BadImage(t *testing.T) {
	s, err := NewPDFSurface(PDFOptions{})
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	err = s.DrawImage([]byte("garbage"), Margin, Margin, 60, 30)
	var ie *ImageEmbedError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImageEmbedError, got %v", err)
	}

	// the document stays usable after a failed embed
	s.DrawText(CheckLine(true, "Identity Verified"), Margin, 50, AlignLeft)
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
}

func TestPDFSurface_MissingFontFails(t *testing.T) {
	_, err := NewPDFSurface(PDFOptions{UTF8FontPath: "/nonexistent/font.ttf"})
	if err == nil {
		t.Fatalf("expected error for missing font")
	}
}
