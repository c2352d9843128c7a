package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/beveragebuddy/internal/platform/timeouts"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/editor"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/i18n"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/jsdialog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/loadsim"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/module/categories"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/module/dialog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/push"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/templates"
	sharedhtmx "github.com/louisbranch/beveragebuddy/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

const (
	// crudToastMillis is how long save and delete notifications stay visible.
	crudToastMillis = 3000
	// loadToastMillis is how long load sequence notifications stay visible.
	loadToastMillis = 2000
	// dialogPageTitle titles the JsDialog demo page.
	dialogPageTitle = "JsDialog"
)

// HandlerConfig holds the collaborators of the admin handler.
type HandlerConfig struct {
	Catalog *catalog.Catalog
	// LoadSequence drives the pushed load sequence of each attached view.
	LoadSequence loadsim.Sequence
	// Dependencies locates the JsDialog widget sources.
	Dependencies jsdialog.Dependencies
	// PushWriteTimeout caps each websocket write.
	PushWriteTimeout time.Duration
}

// Handler routes admin requests.
type Handler struct {
	catalog      *catalog.Catalog
	editor       *editor.Dialog[storage.Category]
	load         loadsim.Sequence
	dependencies jsdialog.Dependencies
	pushTimeout  time.Duration
	sessions     *push.Tracker
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(config HandlerConfig) (http.Handler, error) {
	h, err := newHandler(config)
	if err != nil {
		return nil, err
	}
	return h.routes(), nil
}

func newHandler(config HandlerConfig) (*Handler, error) {
	if config.Catalog == nil {
		return nil, errors.New("admin catalog is required")
	}
	pushTimeout := config.PushWriteTimeout
	if pushTimeout <= 0 {
		pushTimeout = timeouts.PushWrite
	}
	h := &Handler{
		catalog:      config.Catalog,
		load:         config.LoadSequence,
		dependencies: config.Dependencies,
		pushTimeout:  pushTimeout,
		sessions:     &push.Tracker{},
	}
	h.editor = &editor.Dialog[storage.Category]{
		Kind:          "category",
		Name:          func(category storage.Category) string { return category.Name },
		OnSave:        h.saveCategory,
		OnDelete:      h.catalog.Categories.DeleteCategory,
		DeleteWarning: h.deleteWarning,
	}
	return h, nil
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(routepath.Up, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routepath.Root {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, routepath.Categories, http.StatusFound)
	})
	categories.RegisterRoutes(mux, h)
	dialog.RegisterRoutes(mux, h)
	return mux
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(lang string, loc *message.Printer, title string) templates.PageContext {
	return templates.PageContext{Lang: lang, Loc: loc, Title: title}
}

// storeContext bounds storage work done for one request.
func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.StoreRequest)
}

// renderPage renders page components with consistent HTMX and non-HTMX behavior.
func renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, body templ.Component, head ...templ.Component) {
	full := templates.Layout(page, body, head...)
	sharedhtmx.RenderPage(w, r, body, full, sharedhtmx.TitleTag(templates.T(page.Loc, page.Title)))
}

// renderFragments writes components as an HTMX response.
func renderFragments(w http.ResponseWriter, r *http.Request, status int, components ...templ.Component) {
	if err := sharedhtmx.RenderFragments(r.Context(), w, status, components...); err != nil {
		log.Printf("admin: render %s: %v", r.URL.Path, err)
	}
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, loc *message.Printer, err error) {
	status := http.StatusInternalServerError
	text := templates.T(loc, i18n.KeyUnexpectedError)
	switch {
	case errors.Is(err, catalog.ErrUndefinedCategory):
		status = http.StatusForbidden
		text = templates.T(loc, i18n.KeyUndefinedProtected)
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
		text = http.StatusText(status)
	case errors.Is(err, storage.ErrAlreadyExists), errors.Is(err, storage.ErrCategoryInUse):
		status = http.StatusConflict
		text = http.StatusText(status)
	case errors.Is(err, editor.ErrDeleteDisabled):
		status = http.StatusBadRequest
		text = http.StatusText(status)
	default:
		log.Printf("admin: %s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, text, status)
}

func searchFilter(r *http.Request) string {
	if r == nil {
		return ""
	}
	if value := r.URL.Query().Get(routepath.SearchParam); value != "" {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(r.PostFormValue(routepath.SearchParam))
}
