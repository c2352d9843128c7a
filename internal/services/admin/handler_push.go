package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/loadsim"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/push"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/templates"
	"golang.org/x/text/message"
)

// HandleCategoriesPush attaches a view over a websocket and runs one load
// sequence for it. Disconnecting or stopping the server cancels the sequence.
func (h *Handler) HandleCategoriesPush(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	filter := searchFilter(r)
	push.Handler(h.pushTimeout, h.sessions, func(ctx context.Context, session *push.Session) {
		reporter := &loadReporter{handler: h, session: session, loc: loc, filter: filter}
		err := h.load.Run(ctx, reporter)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, push.ErrClosed) {
			log.Printf("admin: load sequence: %v", err)
		}
	}).ServeHTTP(w, r)
}

// loadReporter turns load sequence progress into pushed fragments.
type loadReporter struct {
	handler *Handler
	session *push.Session
	loc     *message.Printer
	filter  string
}

func (r *loadReporter) Started(ctx context.Context) error {
	return r.session.Send(ctx, templates.Toast(templates.T(r.loc, loadsim.StartedMessage), loadToastMillis))
}

func (r *loadReporter) Step(ctx context.Context, step int) error {
	return r.session.Send(ctx, templates.Header(templates.T(r.loc, loadsim.StepFormat, step), true))
}

// Finished refreshes the view for the search the browser shows now, which
// may have changed since the view attached.
func (r *loadReporter) Finished(ctx context.Context) error {
	filter := r.filter
	if value, ok := r.session.Value(routepath.SearchParam); ok {
		filter = strings.TrimSpace(value)
	}
	view, err := r.handler.categoriesView(ctx, filter)
	if err != nil {
		return err
	}
	return r.session.Send(ctx,
		templates.Toast(templates.T(r.loc, loadsim.FinishedMessage), loadToastMillis),
		templates.ViewRefresh(r.loc, view),
	)
}
