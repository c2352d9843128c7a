package editor

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNoCallback is returned when the dialog has no handler for an action.
	ErrNoCallback = errors.New("editor callback is not configured")
	// ErrDeleteDisabled is returned when deleting from an add dialog.
	ErrDeleteDisabled = errors.New("delete is not available for this operation")
)

// Operation is the action an editor dialog was opened for.
type Operation int

const (
	OperationAdd Operation = iota + 1
	OperationEdit
)

// ParseOperation reads the text name of an operation.
func ParseOperation(value string) (Operation, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "add":
		return OperationAdd, true
	case "edit":
		return OperationEdit, true
	default:
		return 0, false
	}
}

// TitleName is the word used in the dialog title.
func (o Operation) TitleName() string {
	switch o {
	case OperationAdd:
		return "New"
	case OperationEdit:
		return "Edit"
	default:
		return ""
	}
}

// TextName is the verb used in form values and notifications.
func (o Operation) TextName() string {
	switch o {
	case OperationAdd:
		return "add"
	case OperationEdit:
		return "edit"
	default:
		return ""
	}
}

// DeleteEnabled reports whether the dialog offers a delete button.
func (o Operation) DeleteEnabled() bool {
	return o == OperationEdit
}

func (o Operation) String() string {
	return o.TextName()
}

// FieldError is implemented by save errors that point at one form field.
type FieldError interface {
	error
	FieldName() string
	FieldMessage() string
}

// State is what a dialog renders.
type State[T any] struct {
	Entity    T
	Operation Operation
	Title     string
	Errors    map[string]string
}

// Valid reports whether the last save produced no field errors.
func (s State[T]) Valid() bool {
	return len(s.Errors) == 0
}

// FieldError returns the message for field, if any.
func (s State[T]) FieldError(field string) string {
	return s.Errors[field]
}

// Confirmation describes the delete confirmation prompt.
type Confirmation struct {
	Kind    string
	Name    string
	Message string
}

// Dialog edits entities of one kind.
type Dialog[T any] struct {
	// Kind names the entity in titles, e.g. "category".
	Kind string
	// Name returns the display name used in the delete confirmation.
	Name func(T) string
	// OnSave stores entity and returns the stored copy.
	OnSave func(ctx context.Context, entity T, op Operation) (T, error)
	// OnDelete removes entity.
	OnDelete func(ctx context.Context, entity T) error
	// DeleteWarning returns an extra message for the confirmation prompt.
	DeleteWarning func(ctx context.Context, entity T) (string, error)
}

// Open returns the initial state for editing entity.
func (d *Dialog[T]) Open(entity T, op Operation) State[T] {
	return State[T]{
		Entity:    entity,
		Operation: op,
		Title:     strings.TrimSpace(op.TitleName() + " " + d.Kind),
	}
}

// Save runs the save callback. Field errors are reported through the
// returned state with a nil error; other failures are returned as errors.
func (d *Dialog[T]) Save(ctx context.Context, entity T, op Operation) (State[T], error) {
	state := d.Open(entity, op)
	if d.OnSave == nil {
		return state, ErrNoCallback
	}
	saved, err := d.OnSave(ctx, entity, op)
	if err != nil {
		var fieldErr FieldError
		if errors.As(err, &fieldErr) {
			state.Errors = map[string]string{fieldErr.FieldName(): fieldErr.FieldMessage()}
			return state, nil
		}
		return state, err
	}
	state.Entity = saved
	return state, nil
}

// ConfirmDelete builds the confirmation prompt for entity.
func (d *Dialog[T]) ConfirmDelete(ctx context.Context, entity T) (Confirmation, error) {
	confirmation := Confirmation{Kind: d.Kind}
	if d.Name != nil {
		confirmation.Name = d.Name(entity)
	}
	if d.DeleteWarning != nil {
		message, err := d.DeleteWarning(ctx, entity)
		if err != nil {
			return Confirmation{}, err
		}
		confirmation.Message = message
	}
	return confirmation, nil
}

// Delete runs the delete callback for an entity opened with op.
func (d *Dialog[T]) Delete(ctx context.Context, entity T, op Operation) error {
	if !op.DeleteEnabled() {
		return ErrDeleteDisabled
	}
	if d.OnDelete == nil {
		return ErrNoCallback
	}
	return d.OnDelete(ctx, entity)
}
