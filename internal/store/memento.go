package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/resort-catalog/internal/models"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

const mementoDateLayout = "Mon Jan _2 15:04:05 2006"

// ResortMemento is an immutable snapshot of the last action applied by a
// ResortStore.
type ResortMemento struct {
	id      uuid.UUID
	state   models.Action
	takenAt time.Time
}

func (m ResortMemento) ID() uuid.UUID {
	return m.id
}

func (m ResortMemento) State() models.Action {
	return cloneAction(m.state)
}

func (m ResortMemento) Date() time.Time {
	return m.takenAt
}

func (m ResortMemento) Name() string {
	return fmt.Sprintf("%s @ %s", describe(m.state), m.takenAt.Format(mementoDateLayout))
}

func (m ResortMemento) String() string {
	return m.Name()
}

// Save captures the current last action.
func (s *ResortStore) Save() ResortMemento {
	return ResortMemento{
		id:      uuid.New(),
		state:   cloneAction(s.lastAction),
		takenAt: time.Now(),
	}
}

// Restore reverts an update memento by applying the update in reverse.
// Other action kinds cannot be restored.
func (s *ResortStore) Restore(ctx context.Context, m ResortMemento) error {
	if m.state.Kind != models.ActionUpdate {
		return srvErrors.NewUnsupportedRestoreError(string(m.state.Kind))
	}

	oldResort, ok := m.state.Old.(models.Resort)
	if !ok {
		return fmt.Errorf("memento %s does not hold a resort", m.id)
	}
	newResort, ok := m.state.New.(models.Resort)
	if !ok {
		return fmt.Errorf("memento %s does not hold a resort", m.id)
	}

	return s.Update(ctx, newResort, oldResort)
}

func cloneAction(a models.Action) models.Action {
	c := a
	if r, ok := a.Object.(models.Resort); ok {
		c.Object = r.Clone()
	}
	if r, ok := a.Old.(models.Resort); ok {
		c.Old = r.Clone()
	}
	if r, ok := a.New.(models.Resort); ok {
		c.New = r.Clone()
	}
	return c
}

func describe(a models.Action) string {
	switch a.Kind {
	case models.ActionAdd, models.ActionRemove:
		return fmt.Sprintf("%s %v", a.Kind, a.Object)
	case models.ActionUpdate:
		return fmt.Sprintf("update %v -> %v", a.Old, a.New)
	default:
		return "none"
	}
}
