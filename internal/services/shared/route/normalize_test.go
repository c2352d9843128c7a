package route

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRedirectTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantOK   bool
		wantCode int
		wantLoc  string
	}{
		{
			name:     "no trailing slash",
			path:     "/categories",
			wantOK:   false,
			wantCode: 200,
		},
		{
			name:     "trailing slash",
			path:     "/categories/",
			wantOK:   true,
			wantCode: http.StatusMovedPermanently,
			wantLoc:  "/categories",
		},
		{
			name:     "category detail trailing slash",
			path:     "/categories/cat-1/",
			wantOK:   true,
			wantCode: http.StatusMovedPermanently,
			wantLoc:  "/categories/cat-1",
		},
		{
			name:     "query preserved",
			path:     "/categories/?q=tea",
			wantOK:   true,
			wantCode: http.StatusMovedPermanently,
			wantLoc:  "/categories?q=tea",
		},
		{
			name:     "root path",
			path:     "/",
			wantOK:   false,
			wantCode: 200,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()

			got := RedirectTrailingSlash(rec, req)
			if got != tc.wantOK {
				t.Fatalf("RedirectTrailingSlash = %v, want %v", got, tc.wantOK)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if got {
				if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
					t.Fatalf("location = %q, want %q", loc, tc.wantLoc)
				}
				return
			}
		})
	}
}

func TestSplitPathParts(t *testing.T) {
	t.Parallel()

	got := SplitPathParts("/cat-1//edit/ ")
	if len(got) != 2 || got[0] != "cat-1" || got[1] != "edit" {
		t.Fatalf("SplitPathParts = %v, want [cat-1 edit]", got)
	}
	if got := SplitPathParts(""); len(got) != 0 {
		t.Fatalf("SplitPathParts(empty) = %v, want none", got)
	}
}
