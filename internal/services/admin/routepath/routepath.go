package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
	Up   = "/up"
)

const (
	Categories       = "/categories"
	CategoriesGrid   = "/categories/grid"
	CategoriesNew    = "/categories/new"
	CategoriesSave   = "/categories/save"
	CategoriesPush   = "/categories/push"
	CategoriesPrefix = "/categories/"
)

const (
	Dialog      = "/dialog"
	DialogClose = "/dialog/close"
)

// SearchParam carries the categories search filter.
const SearchParam = "q"

func CategoriesSearch(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return CategoriesGrid
	}
	return CategoriesGrid + "?" + url.Values{SearchParam: {filter}}.Encode()
}

func CategoryEdit(categoryID string) string {
	return Categories + "/" + escapeSegment(categoryID) + "/edit"
}

func CategoryDelete(categoryID string) string {
	return Categories + "/" + escapeSegment(categoryID) + "/delete"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
