package config

import (
	"os"
	"strings"
)

const (
	defaultOutputDir = "."
	defaultTimezone  = "UTC"
)

// Settings holds the environment driven knobs of the exporter.
type Settings struct {
	// OutputDir is where exported artifacts are written.
	OutputDir string
	// Timezone is used for the dates printed on the document.
	Timezone string
	// UTF8FontPath optionally points at a TTF font; when empty the core Helvetica font is used
	// and check glyphs are transliterated.
	UTF8FontPath string
	// IncludeAdditionalPages mirrors the RENDER_ADDITIONAL_PAGES flag.
	IncludeAdditionalPages bool
}

// LoadSettings reads Settings from the environment.
//
// Env:
// - OUTPUT_DIR (default ".")
// - TIMEZONE (default "UTC")
// - PDF_UTF8_FONT (optional)
// - RENDER_ADDITIONAL_PAGES (optional)
func LoadSettings() Settings {
	return Settings{
		OutputDir:              envOrDefault("OUTPUT_DIR", defaultOutputDir),
		Timezone:               envOrDefault("TIMEZONE", defaultTimezone),
		UTF8FontPath:           strings.TrimSpace(os.Getenv("PDF_UTF8_FONT")),
		IncludeAdditionalPages: RenderAdditionalPages(),
	}
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
