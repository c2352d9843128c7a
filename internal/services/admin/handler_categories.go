package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/editor"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/i18n"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/storage"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/templates"
	"golang.org/x/text/message"
)

// HandleCategoriesPage renders the categories view. The grid starts empty and
// is filled by the load sequence pushed over the websocket.
func (h *Handler) HandleCategoriesPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, i18n.KeyPageTitle)
	view := templates.CategoriesView{Filter: searchFilter(r), Loading: true}
	renderPage(w, r, page, templates.CategoriesPage(page, view))
}

// HandleCategoriesGrid renders the grid for the current search with the
// header swapped out of band.
func (h *Handler) HandleCategoriesGrid(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	ctx, cancel := storeContext(r)
	defer cancel()

	view, err := h.categoriesView(ctx, searchFilter(r))
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	renderFragments(w, r, http.StatusOK, templates.GridUpdate(loc, view))
}

// HandleCategoryNew opens the editor for a new category.
func (h *Handler) HandleCategoryNew(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	state := h.editor.Open(storage.Category{}, editor.OperationAdd)
	renderFragments(w, r, http.StatusOK, templates.EditorDialog(loc, state))
}

// HandleCategoryEdit opens the editor for an existing category.
func (h *Handler) HandleCategoryEdit(w http.ResponseWriter, r *http.Request, categoryID string) {
	loc, _ := h.localizer(w, r)
	ctx, cancel := storeContext(r)
	defer cancel()

	category, err := h.editableCategory(ctx, categoryID)
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	state := h.editor.Open(category, editor.OperationEdit)
	renderFragments(w, r, http.StatusOK, templates.EditorDialog(loc, state))
}

// HandleCategorySave runs the editor save action.
func (h *Handler) HandleCategorySave(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.localizer(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	op, ok := editor.ParseOperation(r.PostFormValue("operation"))
	if !ok {
		http.Error(w, "invalid operation", http.StatusBadRequest)
		return
	}
	category := storage.Category{
		ID:   strings.TrimSpace(r.PostFormValue("id")),
		Name: r.PostFormValue("name"),
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	state, err := h.editor.Save(ctx, category, op)
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	if !state.Valid() {
		renderFragments(w, r, http.StatusUnprocessableEntity, templates.EditorDialog(loc, state))
		return
	}

	notice := i18n.KeyCategoryAdded
	if op == editor.OperationEdit {
		notice = i18n.KeyCategoryEdited
	}
	h.renderMutation(ctx, w, r, loc, notice)
}

// HandleCategoryDeleteConfirm renders the delete confirmation prompt.
func (h *Handler) HandleCategoryDeleteConfirm(w http.ResponseWriter, r *http.Request, categoryID string) {
	loc, _ := h.localizer(w, r)
	ctx, cancel := storeContext(r)
	defer cancel()

	category, err := h.editableCategory(ctx, categoryID)
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	confirmation, err := h.editor.ConfirmDelete(ctx, category)
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	renderFragments(w, r, http.StatusOK, templates.DeleteConfirmation(loc, category, confirmation))
}

// HandleCategoryDelete runs the editor delete action.
func (h *Handler) HandleCategoryDelete(w http.ResponseWriter, r *http.Request, categoryID string) {
	loc, _ := h.localizer(w, r)
	ctx, cancel := storeContext(r)
	defer cancel()

	category, err := h.editableCategory(ctx, categoryID)
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	if err := h.editor.Delete(ctx, category, editor.OperationEdit); err != nil {
		writeError(w, r, loc, err)
		return
	}
	h.renderMutation(ctx, w, r, loc, i18n.KeyCategoryDeleted)
}

// renderMutation closes the modal, refreshes the view and shows notice.
func (h *Handler) renderMutation(ctx context.Context, w http.ResponseWriter, r *http.Request, loc *message.Printer, notice string) {
	view, err := h.categoriesView(ctx, searchFilter(r))
	if err != nil {
		writeError(w, r, loc, err)
		return
	}
	renderFragments(w, r, http.StatusOK,
		templates.EmptyModal(),
		templates.ViewRefresh(loc, view),
		templates.Toast(templates.T(loc, notice), crudToastMillis),
	)
}

func (h *Handler) editableCategory(ctx context.Context, categoryID string) (storage.Category, error) {
	if strings.TrimSpace(categoryID) == storage.UndefinedCategoryID {
		return storage.Category{}, catalog.ErrUndefinedCategory
	}
	return h.catalog.Categories.Category(ctx, categoryID)
}

func (h *Handler) saveCategory(ctx context.Context, category storage.Category, op editor.Operation) (storage.Category, error) {
	if op == editor.OperationAdd {
		category.ID = ""
	} else if strings.TrimSpace(category.ID) == "" {
		return storage.Category{}, storage.ErrNotFound
	}
	return h.catalog.Categories.SaveCategory(ctx, category)
}

func (h *Handler) deleteWarning(ctx context.Context, category storage.Category) (string, error) {
	entries, err := h.catalog.Reviews.ReviewEntries(ctx, category.Name)
	if err != nil {
		return "", err
	}
	if entries == 0 {
		return "", nil
	}
	return i18n.KeyDeleteReviewsNote, nil
}

// categoriesView loads the grid rows for filter.
func (h *Handler) categoriesView(ctx context.Context, filter string) (templates.CategoriesView, error) {
	view := templates.CategoriesView{Filter: filter}
	found, err := h.catalog.Categories.FindCategories(ctx, filter)
	if err != nil {
		return view, err
	}
	view.Rows = make([]templates.CategoryRow, 0, len(found))
	for _, category := range found {
		total, err := h.catalog.Reviews.ReviewCount(ctx, category.Name)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, templates.CategoryRow{
			ID:        category.ID,
			Name:      category.Name,
			Beverages: total,
			Editable:  !catalog.IsUndefined(category),
		})
	}
	if len(view.Rows) == 0 && filter != "" {
		suggestion, ok, err := h.catalog.Categories.Suggest(ctx, filter)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("admin: suggest category for %q: %v", filter, err)
		}
		if ok {
			view.Suggestion = suggestion
		}
	}
	return view, nil
}
