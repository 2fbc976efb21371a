package reports

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth   = 210.0
	PageHeight  = 297.0
	Margin      = 20.0
	UsableWidth = PageWidth - 2*Margin
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type FontStyle string

const (
	FontNormal FontStyle = ""
	FontBold   FontStyle = "B"
	FontItalic FontStyle = "I"
)

type RGB struct {
	R, G, B int
}

// Surface is the drawing target of the renderer. Coordinates are millimetres from the top-left
// corner of the current page.
type Surface interface {
	SetFillColor(c RGB)
	SetTextColor(c RGB)
	SetDrawColor(c RGB)
	SetLineWidth(w float64)
	SetFont(size float64, style FontStyle)
	DrawText(text string, x, y float64, align Align)
	// WrapText breaks text into lines no wider than maxWidth using the current font.
	WrapText(text string, maxWidth float64) []string
	DrawLine(x1, y1, x2, y2 float64)
	DrawFilledRect(x, y, w, h float64)
	// DrawImage embeds an encoded image; malformed data yields an *ImageEmbedError.
	DrawImage(data []byte, x, y, w, h float64) error
	AddPage()
	PageCount() int
	Save(w io.Writer) error
}

// ImageEmbedError means an image could not be placed on the page. The renderer recovers from it.
type ImageEmbedError struct {
	Err error
}

func (e *ImageEmbedError) Error() string {
	return "embed image: " + e.Err.Error()
}

func (e *ImageEmbedError) Unwrap() error {
	return e.Err
}

// wrapText greedily fills lines word by word. Explicit newlines always break, and a single word
// wider than maxWidth is split between runes.
func wrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
			for measure(current) > maxWidth && utf8.RuneCountInString(current) > 1 {
				head, tail := splitToWidth(current, maxWidth, measure)
				lines = append(lines, head)
				current = tail
			}
		}
		lines = append(lines, current)
	}
	return lines
}

func splitToWidth(word string, maxWidth float64, measure func(string) float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
