package dialog

import (
	"net/http"

	routepath "github.com/louisbranch/beveragebuddy/internal/services/admin/routepath"
)

// Service defines dialog demo handlers consumed by this route module.
type Service interface {
	HandleDialogPage(w http.ResponseWriter, r *http.Request)
	HandleDialogClose(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the dialog demo routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Dialog, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		service.HandleDialogPage(w, r)
	})
	mux.HandleFunc(routepath.DialogClose, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		service.HandleDialogClose(w, r)
	})
}
