package reports

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"unicode/utf8"

	// registered for image.DecodeConfig
	_ "image/jpeg"
	_ "image/png"
)

type OpKind string

const (
	OpFillColor  OpKind = "fillColor"
	OpTextColor  OpKind = "textColor"
	OpDrawColor  OpKind = "drawColor"
	OpLineWidth  OpKind = "lineWidth"
	OpFont       OpKind = "font"
	OpText       OpKind = "text"
	OpLine       OpKind = "line"
	OpFilledRect OpKind = "filledRect"
	OpImage      OpKind = "image"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  OpKind
	Page  int
	Text  string
	X, Y  float64
	W, H  float64
	Align Align
	Size  float64
	Style FontStyle
	Color RGB
}

// RecordingSurface keeps every drawing call in memory. It backs previews and tests, and measures
// text with a fixed average glyph width so wrapping is deterministic.
type RecordingSurface struct {
	Ops   []Op
	pages int
	size  float64
	style FontStyle
}

func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{pages: 1, size: 10}
}

func (s *RecordingSurface) record(op Op) {
	op.Page = s.pages
	s.Ops = append(s.Ops, op)
}

func (s *RecordingSurface) SetFillColor(c RGB) { s.record(Op{Kind: OpFillColor, Color: c}) }

func (s *RecordingSurface) SetTextColor(c RGB) { s.record(Op{Kind: OpTextColor, Color: c}) }

func (s *RecordingSurface) SetDrawColor(c RGB) { s.record(Op{Kind: OpDrawColor, Color: c}) }

func (s *RecordingSurface) SetLineWidth(w float64) { s.record(Op{Kind: OpLineWidth, W: w}) }

func (s *RecordingSurface) SetFont(size float64, style FontStyle) {
	s.size, s.style = size, style
	s.record(Op{Kind: OpFont, Size: size, Style: style})
}

func (s *RecordingSurface) DrawText(text string, x, y float64, align Align) {
	s.record(Op{Kind: OpText, Text: text, X: x, Y: y, Align: align, Size: s.size, Style: s.style})
}

// roughly half an em per glyph, converted from points to millimetres
func (s *RecordingSurface) measure(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * s.size * 0.5 * 0.3528
}

func (s *RecordingSurface) WrapText(text string, maxWidth float64) []string {
	return wrapText(text, maxWidth, s.measure)
}

func (s *RecordingSurface) DrawLine(x1, y1, x2, y2 float64) {
	s.record(Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (s *RecordingSurface) DrawFilledRect(x, y, w, h float64) {
	s.record(Op{Kind: OpFilledRect, X: x, Y: y, W: w, H: h})
}

func (s *RecordingSurface) DrawImage(data []byte, x, y, w, h float64) error {
	if len(data) == 0 {
		return &ImageEmbedError{Err: errors.New("empty image data")}
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return &ImageEmbedError{Err: err}
	}
	s.record(Op{Kind: OpImage, X: x, Y: y, W: w, H: h})
	return nil
}

func (s *RecordingSurface) AddPage() { s.pages++ }

func (s *RecordingSurface) PageCount() int { return s.pages }

// Save writes a plain-text dump of the drawn text, one page after another.
func (s *RecordingSurface) Save(w io.Writer) error {
	var b strings.Builder
	page := 0
	for _, op := range s.Ops {
		if op.Page != page {
			page = op.Page
			fmt.Fprintf(&b, "--- page %d ---\n", page)
		}
		if op.Kind == OpText {
			b.WriteString(op.Text)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Texts returns the drawn strings, optionally limited to one page (page <= 0 means all pages).
func (s *RecordingSurface) Texts(page int) []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == OpText && (page <= 0 || op.Page == page) {
			out = append(out, op.Text)
		}
	}
	return out
}
