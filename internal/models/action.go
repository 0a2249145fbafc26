package models

type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionRemove ActionKind = "remove"
	ActionUpdate ActionKind = "update"
)

// Action describes the last successful mutation applied by a store.
// Object is set for add and remove, Old and New for update.
type Action struct {
	Kind   ActionKind
	Table  string
	Object any
	Old    any
	New    any
}

// IsZero reports whether no mutation has been recorded yet.
func (a Action) IsZero() bool {
	return a.Kind == ""
}
