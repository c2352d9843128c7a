package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/editor"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/i18n"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
)

const closeModalScript = `document.getElementById("modal").innerHTML=""`

// EditorDialog renders the add/edit category dialog.
func EditorDialog(loc Localizer, state editor.State[storage.Category]) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<dialog id="category-editor" open><form`)
		h.attr("hx-post", routepath.CategoriesSave)
		h.attr("hx-target", "#"+ModalID)
		h.attr("hx-include", "#"+SearchID)
		h.raw("><h3>")
		h.text(T(loc, state.Title))
		h.raw(`</h3><input type="hidden" name="id"`)
		h.attr("value", state.Entity.ID)
		h.raw(`><input type="hidden" name="operation"`)
		h.attr("value", state.Operation.TextName())
		h.raw(`><label>`)
		h.text(T(loc, i18n.KeyColumnName))
		h.raw(` <input type="text" name="name" required autofocus`)
		h.attr("value", state.Entity.Name)
		if state.FieldError("name") != "" {
			h.attr("aria-invalid", "true")
		}
		h.raw("></label>")
		if message := state.FieldError("name"); message != "" {
			h.raw(`<p class="field-error">`)
			h.text(T(loc, message))
			h.raw("</p>")
		}
		h.raw(`<footer><button type="submit">`)
		h.text(T(loc, i18n.KeySave))
		h.raw(`</button><button type="button"`)
		h.attr("onclick", closeModalScript)
		h.raw(">")
		h.text(T(loc, i18n.KeyCancel))
		h.raw("</button>")
		if state.Operation.DeleteEnabled() {
			h.raw(`<button type="button"`)
			h.attr("hx-get", routepath.CategoryDelete(state.Entity.ID))
			h.attr("hx-target", "#"+ModalID)
			h.raw(">")
			h.text(T(loc, i18n.KeyDelete))
			h.raw("</button>")
		}
		h.raw("</footer></form></dialog>")
	})
}

// DeleteConfirmation renders the delete prompt for category.
func DeleteConfirmation(loc Localizer, category storage.Category, confirmation editor.Confirmation) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<dialog id="category-delete" open><h3>`)
		h.text(T(loc, i18n.KeyDeleteTitle, confirmation.Name))
		h.raw("</h3>")
		if confirmation.Message != "" {
			h.raw("<p>")
			h.text(T(loc, confirmation.Message))
			h.raw("</p>")
		}
		h.raw("<form")
		h.attr("hx-post", routepath.CategoryDelete(category.ID))
		h.attr("hx-target", "#"+ModalID)
		h.attr("hx-include", "#"+SearchID)
		h.raw(`><button type="submit">`)
		h.text(T(loc, i18n.KeyDelete))
		h.raw(`</button><button type="button"`)
		h.attr("onclick", closeModalScript)
		h.raw(">")
		h.text(T(loc, i18n.KeyCancel))
		h.raw("</button></form></dialog>")
	})
}
