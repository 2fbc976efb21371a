package reports

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

const utf8Family = "body"

// core fonts cannot show these glyphs, so they are spelled out in cp1252
var glyphFallbacks = strings.NewReplacer(
	CheckedGlyph, "[X]",
	UncheckedGlyph, "[  ]",
	SelectedGlyph, "(X)",
	OptionGlyph, "(  )",
)

// PDFOptions configures a PDFSurface.
type PDFOptions struct {
	// UTF8FontPath is an optional TrueType font used for every style. Without it the core
	// Helvetica font is used and check glyphs are transliterated.
	UTF8FontPath string
	// CreatedAt pins the document creation date; zero means now.
	CreatedAt time.Time
}

// PDFSurface draws onto an A4 portrait document.
type PDFSurface struct {
	pdf       *fpdf.Fpdf
	family    string
	utf8      bool
	translate func(string) string
	imageSeq  int
}

func NewPDFSurface(opts PDFOptions) (*PDFSurface, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetSubject("Vendor Briefing", true)
	pdf.SetAuthor("CDG70", true)
	pdf.SetCreator("CDG70 Vendor Briefing System", true)
	if !opts.CreatedAt.IsZero() {
		pdf.SetCreationDate(opts.CreatedAt)
	}

	s := &PDFSurface{pdf: pdf, family: "Helvetica"}
	if opts.UTF8FontPath != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(utf8Family, style, opts.UTF8FontPath)
		}
		s.family = utf8Family
		s.utf8 = true
		s.translate = func(text string) string { return text }
	} else {
		cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
		s.translate = func(text string) string { return cp1252(glyphFallbacks.Replace(text)) }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("init pdf surface: %w", err)
	}
	pdf.AddPage()
	pdf.SetFont(s.family, "", fontNormal)
	return s, nil
}

func (s *PDFSurface) SetFillColor(c RGB) { s.pdf.SetFillColor(c.R, c.G, c.B) }

func (s *PDFSurface) SetTextColor(c RGB) { s.pdf.SetTextColor(c.R, c.G, c.B) }

func (s *PDFSurface) SetDrawColor(c RGB) { s.pdf.SetDrawColor(c.R, c.G, c.B) }

func (s *PDFSurface) SetLineWidth(w float64) { s.pdf.SetLineWidth(w) }

func (s *PDFSurface) SetFont(size float64, style FontStyle) {
	s.pdf.SetFont(s.family, string(style), size)
}

func (s *PDFSurface) DrawText(text string, x, y float64, align Align) {
	encoded := s.translate(text)
	switch align {
	case AlignCenter:
		x -= s.pdf.GetStringWidth(encoded) / 2
	case AlignRight:
		x -= s.pdf.GetStringWidth(encoded)
	}
	s.pdf.Text(x, y, encoded)
}

// WrapText measures with the current font; the returned lines are not yet encoded.
func (s *PDFSurface) WrapText(text string, maxWidth float64) []string {
	return wrapText(text, maxWidth, func(line string) float64 {
		return s.pdf.GetStringWidth(s.translate(line))
	})
}

func (s *PDFSurface) DrawLine(x1, y1, x2, y2 float64) { s.pdf.Line(x1, y1, x2, y2) }

func (s *PDFSurface) DrawFilledRect(x, y, w, h float64) { s.pdf.Rect(x, y, w, h, "F") }

// DrawImage re-encodes the image as 8-bit PNG first so any decodable input embeds the same way.
func (s *PDFSurface) DrawImage(data []byte, x, y, w, h float64) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return &ImageEmbedError{Err: err}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return &ImageEmbedError{Err: err}
	}

	s.imageSeq++
	name := fmt.Sprintf("image-%d", s.imageSeq)
	options := fpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, options, &buf)
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		return &ImageEmbedError{Err: err}
	}
	s.pdf.ImageOptions(name, x, y, w, h, false, options, 0, "")
	return nil
}

func (s *PDFSurface) AddPage() { s.pdf.AddPage() }

func (s *PDFSurface) PageCount() int { return s.pdf.PageCount() }

func (s *PDFSurface) Save(w io.Writer) error {
	return s.pdf.Output(w)
}
