package templates

import (
	"context"

	"github.com/a-h/templ"
)

const (
	// HTMXScriptURL loads htmx.
	HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"
	// HTMXWebSocketURL loads the htmx websocket extension.
	HTMXWebSocketURL = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"

	// ModalID is the container editor dialogs are swapped into.
	ModalID = "modal"
	// ToastsID is the container notifications are appended to.
	ToastsID = "toasts"
)

// htmxConfig lets 422 responses replace the editor dialog.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

const toastScript = `htmx.onLoad(function(root){
var items=root.matches&&root.matches("[data-toast]")?[root]:Array.prototype.slice.call(root.querySelectorAll("[data-toast]"));
items.forEach(function(t){setTimeout(function(){t.remove()},parseInt(t.dataset.toast,10)||3000)});
});`

const layoutStyle = `body{font-family:system-ui,sans-serif;margin:0 auto;max-width:56rem;padding:1rem}
table{border-collapse:collapse;width:100%}th,td{border-bottom:1px solid #ddd;padding:.4rem;text-align:left}
.toolbar{display:flex;gap:.5rem;margin-bottom:1rem}.field-error{color:#b00020;margin:.25rem 0}
.toasts{position:fixed;bottom:1rem;left:1rem;display:flex;flex-direction:column;gap:.5rem}
.toast{background:#333;color:#fff;padding:.6rem 1rem;border-radius:.3rem}
dialog{border:1px solid #ccc;border-radius:.4rem}
.languages{display:flex;gap:.75rem;justify-content:flex-end}.languages a[aria-current]{font-weight:bold}`

// Layout renders a full document around body. head components are appended
// to the document head.
func Layout(page PageContext, body templ.Component, head ...templ.Component) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<meta name="htmx-config"`)
		h.attr("content", htmxConfig)
		h.raw(">")
		h.raw("<title>")
		h.text(T(page.Loc, page.Title))
		h.raw("</title>")
		h.raw(`<script`)
		h.attr("src", HTMXScriptURL)
		h.raw(`></script><script`)
		h.attr("src", HTMXWebSocketURL)
		h.raw("></script><style>", layoutStyle, "</style>")
		for _, component := range head {
			h.component(ctx, component)
		}
		h.raw("</head><body>")
		h.component(ctx, LanguageSwitcher(page))
		h.raw(`<main id="main">`)
		h.component(ctx, body)
		h.raw(`</main><div`)
		h.attr("id", ModalID)
		h.raw(`></div><div class="toasts"`)
		h.attr("id", ToastsID)
		h.raw("></div><script>", toastScript, "</script></body></html>")
	})
}

// Toast renders a notification appended to the toast region out of band.
func Toast(message string, durationMillis int) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div hx-swap-oob="beforeend"`)
		h.attr("id", ToastsID)
		h.raw(`><div class="toast" role="status"`)
		h.attr("data-toast", itoa(durationMillis))
		h.raw(">")
		h.text(message)
		h.raw("</div></div>")
	})
}

// EmptyModal clears the modal container.
func EmptyModal() templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {})
}
