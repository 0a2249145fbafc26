package store

import (
	"context"

	"github.com/kubev2v/resort-catalog/internal/models"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

type Queryable[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Filter(ctx context.Context, conds ...Condition) ([]T, error)
}

type Mutable[T any] interface {
	Add(ctx context.Context, entity T) error
	Remove(ctx context.Context, entity T) error
	Update(ctx context.Context, oldEntity, newEntity T) error
}

// DAO is the full data access contract implemented by every entity store.
type DAO[T any] interface {
	Queryable[T]
	Mutable[T]
}

// Subject is what observers receive after a mutation.
type Subject interface {
	Table() string
	LastAction() models.Action
}

// Observer is notified synchronously after every successful mutation.
// Implementations must be comparable for Detach to find them.
type Observer interface {
	OnChange(ctx context.Context, subject Subject) error
}

type Notifier interface {
	Attach(o Observer)
	Detach(o Observer) error
}

type subject struct {
	observers []Observer
}

func (s *subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *subject) Detach(o Observer) error {
	for i, registered := range s.observers {
		if registered == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return nil
		}
	}
	return srvErrors.NewObserverNotAttachedError()
}

// notify stops at the first failing observer.
func (s *subject) notify(ctx context.Context, src Subject) error {
	for _, o := range s.observers {
		if err := o.OnChange(ctx, src); err != nil {
			return err
		}
	}
	return nil
}
