package admin

import (
	"net/http"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/jsdialog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
	sharedhtmx "github.com/louisbranch/beveragebuddy/internal/services/shared/htmx"
)

// HandleDialogPage renders the JsDialog demo. Only a full page load opens
// the widget; HTMX re-renders leave it untouched.
func (h *Handler) HandleDialogPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, dialogPageTitle)
	body := jsdialog.Component(jsdialog.Options{
		CloseURL:      routepath.DialogClose,
		InitialAttach: !sharedhtmx.IsHTMXRequest(r),
	})
	renderPage(w, r, page, body, h.dependencies.Head())
}

// HandleDialogClose answers a click on the dialog content with the close
// snippet.
func (h *Handler) HandleDialogClose(w http.ResponseWriter, r *http.Request) {
	renderFragments(w, r, http.StatusOK, jsdialog.Close())
}
