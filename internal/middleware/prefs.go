package middleware

import (
	"context"
	"net/http"

	"github.com/woodworkpro/woodwork-server/internal/i18n"
)

type langKey struct{}

// LangFrom returns the language resolved for the request, defaulting when
// the middleware did not run.
func LangFrom(r *http.Request) string {
	if lang, ok := r.Context().Value(langKey{}).(string); ok {
		return lang
	}
	return i18n.DefaultLang
}

// Language resolves the request language and stores it in the context.
// Precedence: explicit ?lang= > lang cookie > stored app preference >
// Accept-Language header.
func Language(stored func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
				lang = q
			}
			if lang == "" {
				if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
					lang = c.Value
				}
			}
			if lang == "" && stored != nil {
				if s := stored(); i18n.Supported(s) {
					lang = s
				}
			}
			if lang == "" {
				lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
			}
			ctx := context.WithValue(r.Context(), langKey{}, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
