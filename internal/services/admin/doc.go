// Package admin serves the beverage catalog admin surface: the categories
// list with its editor dialogs and pushed load sequence, and the JsDialog
// demo page.
package admin
