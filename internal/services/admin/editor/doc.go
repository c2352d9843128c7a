// Package editor holds the state of add/edit dialogs and routes their save
// and delete actions to callbacks supplied by the owning view.
package editor
