package httpserver

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"progress-tracker/internal/difficulty"
)

// requestLocale resolves the label locale from Accept-Language, falling
// back when the header is missing or unparseable.
func requestLocale(r *http.Request, fallback language.Tag) language.Tag {
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return difficulty.MatchLocale(tags...)
		}
	}
	return fallback
}
