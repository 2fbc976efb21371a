package config

import (
	"os"
	"strings"
)

// RenderAdditionalPages appends user-created additional pages to the exported document.
// Off by default: the exported checklist historically covers the built-in sections only.
//
// Set via env:
// - RENDER_ADDITIONAL_PAGES=true
func RenderAdditionalPages() bool {
	return envBool("RENDER_ADDITIONAL_PAGES")
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
