// Package htmx renders templ components for full-page and HTMX partial
// requests from the same handlers.
package htmx

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// ResponseHeaderKey is the HTMX request header used to detect partial updates.
	ResponseHeaderKey = "HX-Request"
	// TriggerHeaderKey asks the browser to dispatch a client-side event.
	TriggerHeaderKey = "HX-Trigger"
	// RetargetHeaderKey overrides the element that receives the response.
	RetargetHeaderKey = "HX-Retarget"
	// ReswapHeaderKey overrides the swap strategy for the response.
	ReswapHeaderKey = "HX-Reswap"
)

// responseBuffer captures component rendering for HTMX responses.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(ResponseHeaderKey), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage renders a page for normal or HTMX requests.
//
// HTMX requests receive the `<main>` content of full (or fragment when full is
// nil) prefixed with htmxTitle unless the body already carries a title.
// Other requests receive full, falling back to fragment.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	if !IsHTMXRequest(r) {
		if full == nil {
			full = fragment
		}
		if full == nil {
			return
		}
		templ.Handler(full).ServeHTTP(w, r)
		return
	}

	target := fragment
	fromFull := full != nil
	if fromFull {
		target = full
	}
	if target == nil {
		return
	}
	capture := newResponseBuffer()
	templ.Handler(target).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if fromFull {
		if mainContent, ok := extractMainContent(body); ok {
			body = mainContent
		}
	}
	body = addTitleIfMissing(body, htmxTitle)
	copyHeaders(w.Header(), capture.Header())
	if capture.headerWrote && capture.statusCode != http.StatusOK {
		w.WriteHeader(capture.statusCode)
	}
	_, _ = w.Write(body)
}

// RenderFragments writes status and the concatenated output of components.
// Components after the first are expected to carry hx-swap-oob attributes.
func RenderFragments(ctx context.Context, w http.ResponseWriter, status int, components ...templ.Component) error {
	var body bytes.Buffer
	for _, component := range components {
		if component == nil {
			continue
		}
		if err := component.Render(ctx, &body); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status <= 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(body.Bytes())
	return err
}

// Retarget points the response at selector using the swap strategy swap.
func Retarget(w http.ResponseWriter, selector string, swap string) {
	if w == nil {
		return
	}
	if selector = strings.TrimSpace(selector); selector != "" {
		w.Header().Set(RetargetHeaderKey, selector)
	}
	if swap = strings.TrimSpace(swap); swap != "" {
		w.Header().Set(ReswapHeaderKey, swap)
	}
}

// Trigger asks the browser to dispatch event after the swap.
func Trigger(w http.ResponseWriter, event string) {
	if w == nil {
		return
	}
	event = strings.TrimSpace(event)
	if event == "" {
		return
	}
	w.Header().Set(TriggerHeaderKey, event)
}

func addTitleIfMissing(responseBody []byte, title string) []byte {
	if strings.TrimSpace(title) == "" {
		return responseBody
	}
	if bytes.Contains(bytes.ToLower(responseBody), []byte("<title")) {
		return responseBody
	}
	return append([]byte(title), responseBody...)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		// Single-valued headers should not accumulate duplicates when copied from
		// a temporary response buffer.
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.Index(body[start:], []byte(">"))
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
