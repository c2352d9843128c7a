package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/i18n"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
)

const (
	// HeaderID identifies the categories header.
	HeaderID = "categories-header"
	// GridID identifies the categories grid.
	GridID = "categories-grid"
	// SearchID identifies the search field.
	SearchID = "categories-search"
)

// CategoryRow is one grid row.
type CategoryRow struct {
	ID        string
	Name      string
	Beverages int
	Editable  bool
}

// CategoriesView is the state of the categories list.
type CategoriesView struct {
	Filter     string
	Rows       []CategoryRow
	Suggestion string
	// Loading renders an empty grid until the load sequence pushes content.
	Loading bool
}

// HeaderText returns the header for filter.
func HeaderText(loc Localizer, filter string) string {
	if filter == "" {
		return T(loc, i18n.KeyHeader)
	}
	return T(loc, i18n.KeySearchHeader, filter)
}

// CategoriesPage renders the full categories view.
func CategoriesPage(page PageContext, view CategoriesView) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section hx-ext="ws"`)
		h.attr("ws-connect", pushURL(view.Filter))
		h.raw(">")
		h.component(ctx, Header(HeaderText(page.Loc, view.Filter), false))
		h.raw(`<div class="toolbar"><input type="search"`)
		h.attr("id", SearchID)
		h.attr("name", routepath.SearchParam)
		h.attr("value", view.Filter)
		h.attr("placeholder", T(page.Loc, i18n.KeySearchPlaceholder))
		h.attr("hx-get", routepath.CategoriesGrid)
		h.attr("hx-trigger", "input changed, search")
		h.attr("hx-target", "#"+GridID)
		h.attr("hx-swap", "outerHTML")
		h.flag("ws-send", true)
		h.raw("><button")
		h.attr("hx-get", routepath.CategoriesNew)
		h.attr("hx-target", "#"+ModalID)
		h.raw(">")
		h.text(T(page.Loc, i18n.KeyNewCategory))
		h.raw("</button></div>")
		h.component(ctx, Grid(page.Loc, view, false))
		h.raw("</section>")
	})
}

// Header renders the categories header, optionally as an out-of-band swap.
func Header(text string, oob bool) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw("<h2")
		h.attr("id", HeaderID)
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		h.raw(">")
		h.text(text)
		h.raw("</h2>")
	})
}

// Grid renders the categories table. The edit button of a non-editable row
// is disabled.
func Grid(loc Localizer, view CategoriesView, oob bool) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw("<table")
		h.attr("id", GridID)
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		h.raw("><thead><tr><th>")
		h.text(T(loc, i18n.KeyColumnName))
		h.raw("</th><th>")
		h.text(T(loc, i18n.KeyColumnBeverages))
		h.raw("</th><th></th></tr></thead><tbody")
		h.flag("aria-busy", view.Loading)
		h.raw(">")
		for _, row := range view.Rows {
			h.raw("<tr><td>")
			h.text(row.Name)
			h.raw("</td><td>")
			h.text(itoa(row.Beverages))
			h.raw("</td><td><button")
			h.attr("hx-get", routepath.CategoryEdit(row.ID))
			h.attr("hx-target", "#"+ModalID)
			h.flag("disabled", !row.Editable)
			h.raw(">")
			h.text(T(loc, i18n.KeyEdit))
			h.raw("</button></td></tr>")
		}
		if len(view.Rows) == 0 && !view.Loading {
			h.raw(`<tr><td colspan="3">`)
			h.text(T(loc, i18n.KeyNoCategories))
			if view.Suggestion != "" {
				h.raw(` <a href="#"`)
				h.attr("hx-get", routepath.CategoriesSearch(view.Suggestion))
				h.attr("hx-target", "#"+GridID)
				h.attr("hx-swap", "outerHTML")
				h.raw(">")
				h.text(T(loc, i18n.KeyDidYouMean, view.Suggestion))
				h.raw("</a>")
			}
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
	})
}

// GridUpdate renders the grid as the primary response with the header
// swapped out of band.
func GridUpdate(loc Localizer, view CategoriesView) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.component(ctx, Grid(loc, view, false))
		h.component(ctx, Header(HeaderText(loc, view.Filter), true))
	})
}

// ViewRefresh renders grid and header as out-of-band swaps, for pushed
// updates and responses targeting the modal.
func ViewRefresh(loc Localizer, view CategoriesView) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.component(ctx, Grid(loc, view, true))
		h.component(ctx, Header(HeaderText(loc, view.Filter), true))
	})
}

func pushURL(filter string) string {
	if filter == "" {
		return routepath.CategoriesPush
	}
	return routepath.CategoriesPush + "?" + url.Values{routepath.SearchParam: {filter}}.Encode()
}
