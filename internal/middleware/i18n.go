package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

var supportedLocales = []language.Tag{
	language.English,
	language.Spanish,
	language.BrazilianPortuguese,
	language.Indonesian,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// countryLocale maps countries without an Accept-Language hint onto a locale.
var countryLocale = map[string]string{
	"BR": "pt",
	"ES": "es",
	"MX": "es",
	"AR": "es",
	"ID": "id",
}

// I18N negotiates the request locale from the X-Locale header, the
// Accept-Language header, and finally the request country.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, defaultLocale, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, country string) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return matchLocale(v)
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			tag, _, conf := localeMatcher.Match(tags...)
			if conf > language.No {
				base, _ := tag.Base()
				return base.String()
			}
		}
	}
	if v, ok := countryLocale[strings.ToUpper(country)]; ok {
		return v
	}
	if fallback != "" {
		return matchLocale(fallback)
	}
	return "en"
}

func matchLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	matched, _, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	base, _ := matched.Base()
	return base.String()
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		for _, part := range parts {
			ip := strings.TrimSpace(part)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}
	return ""
}

// ResolveCountry looks up the request country, preferring the CDN-set header.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if v := r.Header.Get("CF-IPCountry"); v != "" && v != "XX" {
		return strings.ToUpper(v)
	}
	if lookup == nil {
		return ""
	}
	ip := ClientIP(r)
	if ip == "" {
		return ""
	}
	country, err := lookup(ip)
	if err != nil {
		return ""
	}
	return strings.ToUpper(country)
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return "en"
}

func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}
