package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/loadsim"
	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	ptBR := language.MustParse("pt-BR")

	tests := []struct {
		name        string
		query       string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", want: language.English},
		{name: "query", query: "?lang=pt-BR", want: ptBR, wantPersist: true},
		{name: "unsupported query falls through", query: "?lang=de", cookie: "pt-BR", want: ptBR},
		{name: "cookie", cookie: "pt-BR", want: ptBR},
		{name: "accept language", accept: "pt-BR,pt;q=0.9", want: ptBR},
		{name: "accept language unmatched", accept: "ja", want: language.English},
		{name: "accept language malformed", accept: ";;;", want: language.English},
		{name: "query case insensitive", query: "?lang=PT-br", want: ptBR, wantPersist: true},
		{name: "query wins over cookie", query: "?lang=en", cookie: "pt-BR", want: language.English, wantPersist: true},
		{name: "unsupported cookie falls through", cookie: "de", accept: "pt-BR", want: ptBR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/categories"+tc.query, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req)
			if got != tc.want || persist != tc.wantPersist {
				t.Fatalf("ResolveTag = %v, %v; want %v, %v", got, persist, tc.want, tc.wantPersist)
			}
		})
	}
}

func TestResolveTagNilRequest(t *testing.T) {
	if got, _ := ResolveTag(nil); got != Default() {
		t.Fatalf("ResolveTag(nil) = %v", got)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.MustParse("pt-BR"))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v", cookies)
	}
	SetLanguageCookie(nil, language.English)
}

func TestPrinterTranslates(t *testing.T) {
	pt := Printer(language.MustParse("pt-BR"))
	if got := pt.Sprintf(KeySearchHeader, "chá"); got != "Busca por “chá”" {
		t.Fatalf("pt-BR header = %q", got)
	}
	if got := pt.Sprintf(loadsim.StepFormat, 2); got != "Carregando a categoria 2 ..." {
		t.Fatalf("pt-BR step = %q", got)
	}

	en := Printer(language.English)
	if got := en.Sprintf(KeySearchHeader, "tea"); got != "Search for “tea”" {
		t.Fatalf("en header = %q", got)
	}
	if got := en.Sprintf(KeyHeader); got != "Categories" {
		t.Fatalf("en header = %q", got)
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	tags := Supported()
	tags[0] = language.Japanese
	if Supported()[0] != language.English {
		t.Fatal("Supported should return a copy")
	}
}
