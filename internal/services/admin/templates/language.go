package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	admini18n "github.com/louisbranch/beveragebuddy/internal/services/admin/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption represents a supported language option in the admin UI.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// LanguageOptions returns supported language options with active selection.
// Labels use each language's own name.
func LanguageOptions(page PageContext) []LanguageOption {
	active := normalizeTag(page.Lang)
	supported := admini18n.Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  display.Self.Name(tag),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL returns a relative URL selecting tag on the current page.
func LanguageURL(tag string) string {
	return "?" + url.Values{admini18n.LangParam: {tag}}.Encode()
}

// LanguageSwitcher renders links for every supported language.
func LanguageSwitcher(page PageContext) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<nav class="languages"`)
		h.attr("aria-label", T(page.Loc, admini18n.KeyLanguage))
		h.raw(">")
		for _, option := range LanguageOptions(page) {
			h.raw("<a")
			h.attr("href", LanguageURL(option.Tag))
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</nav>")
	})
}

func normalizeTag(value string) language.Tag {
	tag, err := language.Parse(value)
	if err != nil {
		return admini18n.Default()
	}
	for _, supported := range admini18n.Supported() {
		if supported == tag {
			return supported
		}
	}
	return admini18n.Default()
}
