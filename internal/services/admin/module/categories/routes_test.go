package categories

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall     string
	lastCategory string
}

func (f *fakeService) HandleCategoriesPage(http.ResponseWriter, *http.Request) {
	f.lastCall = "page"
}

func (f *fakeService) HandleCategoriesGrid(http.ResponseWriter, *http.Request) {
	f.lastCall = "grid"
}

func (f *fakeService) HandleCategoriesPush(http.ResponseWriter, *http.Request) {
	f.lastCall = "push"
}

func (f *fakeService) HandleCategoryNew(http.ResponseWriter, *http.Request) {
	f.lastCall = "new"
}

func (f *fakeService) HandleCategorySave(http.ResponseWriter, *http.Request) {
	f.lastCall = "save"
}

func (f *fakeService) HandleCategoryEdit(_ http.ResponseWriter, _ *http.Request, categoryID string) {
	f.lastCall = "edit"
	f.lastCategory = categoryID
}

func (f *fakeService) HandleCategoryDeleteConfirm(_ http.ResponseWriter, _ *http.Request, categoryID string) {
	f.lastCall = "delete_confirm"
	f.lastCategory = categoryID
}

func (f *fakeService) HandleCategoryDelete(_ http.ResponseWriter, _ *http.Request, categoryID string) {
	f.lastCall = "delete"
	f.lastCategory = categoryID
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, svc)

	tests := []struct {
		method       string
		path         string
		wantCode     int
		wantCall     string
		wantCategory string
	}{
		{method: http.MethodGet, path: "/categories", wantCode: http.StatusOK, wantCall: "page"},
		{method: http.MethodGet, path: "/categories/grid?q=tea", wantCode: http.StatusOK, wantCall: "grid"},
		{method: http.MethodGet, path: "/categories/push", wantCode: http.StatusOK, wantCall: "push"},
		{method: http.MethodGet, path: "/categories/new", wantCode: http.StatusOK, wantCall: "new"},
		{method: http.MethodPost, path: "/categories/save", wantCode: http.StatusOK, wantCall: "save"},
		{method: http.MethodGet, path: "/categories/save", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodPost, path: "/categories", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/categories/cat-1/edit", wantCode: http.StatusOK, wantCall: "edit", wantCategory: "cat-1"},
		{method: http.MethodPost, path: "/categories/cat-1/edit", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/categories/cat-1/delete", wantCode: http.StatusOK, wantCall: "delete_confirm", wantCategory: "cat-1"},
		{method: http.MethodPost, path: "/categories/cat-1/delete", wantCode: http.StatusOK, wantCall: "delete", wantCategory: "cat-1"},
		{method: http.MethodPut, path: "/categories/cat-1/delete", wantCode: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/categories/cat-1", wantCode: http.StatusNotFound},
		{method: http.MethodGet, path: "/categories/cat-1/other", wantCode: http.StatusNotFound},
		{method: http.MethodGet, path: "/categories/cat-1/edit/extra", wantCode: http.StatusNotFound},
		{method: http.MethodGet, path: "/categories/cat-1/edit/", wantCode: http.StatusMovedPermanently},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			svc.lastCall = ""
			svc.lastCategory = ""

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if svc.lastCall != tc.wantCall {
				t.Fatalf("lastCall = %q, want %q", svc.lastCall, tc.wantCall)
			}
			if svc.lastCategory != tc.wantCategory {
				t.Fatalf("lastCategory = %q, want %q", svc.lastCategory, tc.wantCategory)
			}
		})
	}
}

func TestRegisterRoutesNilInputs(t *testing.T) {
	t.Parallel()

	RegisterRoutes(nil, &fakeService{})
	mux := http.NewServeMux()
	RegisterRoutes(mux, nil)

	rec := httptest.NewRecorder()
	HandleCategoryPath(rec, httptest.NewRequest(http.MethodGet, "/categories/x/edit", nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
