package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Originator produces mementos of its state and can be restored from them.
type Originator[M any] interface {
	Save() M
	Restore(ctx context.Context, m M) error
}

// History is a stack of mementos taken from one originator.
// It is not safe for concurrent use.
type History[M any] struct {
	originator Originator[M]
	mementos   []M
	logger     *zap.SugaredLogger
}

func New[M any](o Originator[M]) *History[M] {
	return &History[M]{
		originator: o,
		logger:     zap.S().Named("history"),
	}
}

// Backup pushes a snapshot of the originator's current state.
func (h *History[M]) Backup() {
	h.mementos = append(h.mementos, h.originator.Save())
}

// Undo pops the newest memento and restores it. A memento that fails to
// restore is dropped and the next older one is tried, until one succeeds or
// the stack is empty. Failures are logged, never returned.
func (h *History[M]) Undo(ctx context.Context) bool {
	for len(h.mementos) > 0 {
		last := len(h.mementos) - 1
		m := h.mementos[last]
		h.mementos = h.mementos[:last]

		if err := h.originator.Restore(ctx, m); err != nil {
			h.logger.Warnw("skipping memento", "memento", fmt.Sprint(m), "error", err)
			continue
		}
		return true
	}
	return false
}

// Entries returns the stored mementos, oldest first.
func (h *History[M]) Entries() []M {
	return append([]M(nil), h.mementos...)
}

func (h *History[M]) Len() int {
	return len(h.mementos)
}
