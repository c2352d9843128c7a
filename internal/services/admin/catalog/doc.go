// Package catalog implements the category and review services behind the
// categories view.
//
// Deleting a category first moves its reviews to the undefined category, so
// no review is ever left pointing at a missing category.
package catalog
