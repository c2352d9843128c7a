package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam selects a language for one request and stores it in the
	// cookie.
	LangParam = "lang"
	// LangCookieName remembers the selected language.
	LangCookieName = "bb_lang"

	langCookieMaxAge = 365 * 24 * time.Hour
)

// supportedTags lists the catalog languages; the first is the default.
var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var acceptMatcher = language.NewMatcher(supportedTags)

// Supported returns the languages the UI is translated to.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// Default returns the language used when a request states no preference.
func Default() language.Tag {
	return supportedTags[0]
}

// ResolveTag picks the request language from the lang query parameter, then
// the cookie, then Accept-Language. The bool is true when the choice came
// from the query parameter and should be stored with SetLanguageCookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if tag, ok := exactTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := exactTag(cookie.Value); ok {
			return tag, false
		}
	}
	return negotiate(r.Header.Get("Accept-Language")), false
}

// SetLanguageCookie stores tag as the language of later requests.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// exactTag accepts value only when it names a supported language.
func exactTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	for _, tag := range supportedTags {
		if tag == parsed {
			return tag, true
		}
	}
	return language.Tag{}, false
}

// negotiate matches an Accept-Language header against the catalog languages.
func negotiate(header string) language.Tag {
	header = strings.TrimSpace(header)
	if header == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, confidence := acceptMatcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}
