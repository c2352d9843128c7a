package categories

import (
	"net/http"
	"strings"

	routepath "github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
	sharedroute "github.com/louisbranch/beveragebuddy/internal/services/shared/route"
)

// Service defines category route handlers consumed by this route module.
type Service interface {
	HandleCategoriesPage(w http.ResponseWriter, r *http.Request)
	HandleCategoriesGrid(w http.ResponseWriter, r *http.Request)
	HandleCategoriesPush(w http.ResponseWriter, r *http.Request)
	HandleCategoryNew(w http.ResponseWriter, r *http.Request)
	HandleCategorySave(w http.ResponseWriter, r *http.Request)
	HandleCategoryEdit(w http.ResponseWriter, r *http.Request, categoryID string)
	HandleCategoryDeleteConfirm(w http.ResponseWriter, r *http.Request, categoryID string)
	HandleCategoryDelete(w http.ResponseWriter, r *http.Request, categoryID string)
}

// RegisterRoutes wires category routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Categories, allow(http.MethodGet, service.HandleCategoriesPage))
	mux.HandleFunc(routepath.CategoriesGrid, allow(http.MethodGet, service.HandleCategoriesGrid))
	mux.HandleFunc(routepath.CategoriesPush, allow(http.MethodGet, service.HandleCategoriesPush))
	mux.HandleFunc(routepath.CategoriesNew, allow(http.MethodGet, service.HandleCategoryNew))
	mux.HandleFunc(routepath.CategoriesSave, allow(http.MethodPost, service.HandleCategorySave))
	mux.HandleFunc(routepath.CategoriesPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleCategoryPath(w, r, service)
	})
}

// HandleCategoryPath parses category subroutes and dispatches to service handlers.
func HandleCategoryPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, routepath.CategoriesPrefix)
	parts := sharedroute.SplitPathParts(path)
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	categoryID := parts[0]
	switch parts[1] {
	case "edit":
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		service.HandleCategoryEdit(w, r, categoryID)
	case "delete":
		switch r.Method {
		case http.MethodGet:
			service.HandleCategoryDeleteConfirm(w, r, categoryID)
		case http.MethodPost:
			service.HandleCategoryDelete(w, r, categoryID)
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}

func allow(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, method) {
			return
		}
		next(w, r)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}
