package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/resort-catalog/internal/models"
)

// mapping describes how an entity type is laid out in the database.
type mapping[T any] struct {
	table   string
	from    string
	columns []string
	filters columnSet
	orderBy string
	scan    func(rows *sql.Rows) (T, error)
	id      func(T) int64
	key     func(T) []Condition
	// values returns the column values written on insert and update.
	values func(ctx context.Context, q QueryInterceptor, entity T) (map[string]any, error)
	// afterWrite runs inside the same transaction once the base row is written.
	afterWrite func(ctx context.Context, q QueryInterceptor, id int64, entity T, inserted bool) error
	// enrich decorates selected rows with data from other tables.
	enrich func(ctx context.Context, q QueryInterceptor, entities []T) error
}

// entityStore implements DAO[T] for any mapping. Mutations run in a single
// transaction, then record the last action and notify observers.
type entityStore[T any] struct {
	subject
	conn       *Connection
	m          mapping[T]
	lastAction models.Action
}

func newEntityStore[T any](conn *Connection, m mapping[T], observers ...Observer) entityStore[T] {
	s := entityStore[T]{conn: conn, m: m}
	for _, o := range observers {
		s.Attach(o)
	}
	return s
}

func (s *entityStore[T]) Table() string {
	return s.m.table
}

func (s *entityStore[T]) LastAction() models.Action {
	return s.lastAction
}

func (s *entityStore[T]) GetAll(ctx context.Context) ([]T, error) {
	q, err := s.conn.Interceptor()
	if err != nil {
		return nil, err
	}
	return s.selectWhere(ctx, q, nil)
}

func (s *entityStore[T]) Filter(ctx context.Context, conds ...Condition) ([]T, error) {
	if len(conds) == 0 {
		return s.GetAll(ctx)
	}
	q, err := s.conn.Interceptor()
	if err != nil {
		return nil, err
	}
	return s.selectWhere(ctx, q, conds)
}

func (s *entityStore[T]) Add(ctx context.Context, entity T) error {
	err := s.conn.RunInTx(ctx, func(q QueryInterceptor) error {
		values, err := s.m.values(ctx, q, entity)
		if err != nil {
			return err
		}

		query, args, err := sq.Insert(s.m.table).SetMap(values).ToSql()
		if err != nil {
			return err
		}
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", s.m.table, err)
		}

		if s.m.afterWrite == nil {
			return nil
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return s.m.afterWrite(ctx, q, id, entity, true)
	})
	if err != nil {
		return err
	}

	return s.record(ctx, models.Action{Kind: models.ActionAdd, Table: s.m.table, Object: entity})
}

func (s *entityStore[T]) Remove(ctx context.Context, entity T) error {
	err := s.conn.RunInTx(ctx, func(q QueryInterceptor) error {
		matched, err := s.selectWhere(ctx, q, s.m.key(entity))
		if err != nil {
			return err
		}

		for _, row := range matched {
			query, args, err := sq.Delete(s.m.table).Where(sq.Eq{"id": s.m.id(row)}).ToSql()
			if err != nil {
				return err
			}
			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", s.m.table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.record(ctx, models.Action{Kind: models.ActionRemove, Table: s.m.table, Object: entity})
}

func (s *entityStore[T]) Update(ctx context.Context, oldEntity, newEntity T) error {
	err := s.conn.RunInTx(ctx, func(q QueryInterceptor) error {
		values, err := s.m.values(ctx, q, newEntity)
		if err != nil {
			return err
		}

		matched, err := s.selectWhere(ctx, q, s.m.key(oldEntity))
		if err != nil {
			return err
		}

		for _, row := range matched {
			id := s.m.id(row)
			query, args, err := sq.Update(s.m.table).SetMap(values).Where(sq.Eq{"id": id}).ToSql()
			if err != nil {
				return err
			}
			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to update %s: %w", s.m.table, err)
			}
			if s.m.afterWrite != nil {
				if err := s.m.afterWrite(ctx, q, id, newEntity, false); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.record(ctx, models.Action{Kind: models.ActionUpdate, Table: s.m.table, Old: oldEntity, New: newEntity})
}

func (s *entityStore[T]) record(ctx context.Context, action models.Action) error {
	s.lastAction = action
	return s.notify(ctx, s)
}

func (s *entityStore[T]) selectWhere(ctx context.Context, q QueryInterceptor, conds []Condition) ([]T, error) {
	builder := sq.Select(s.m.columns...).From(s.m.from).OrderBy(s.m.orderBy)

	if len(conds) > 0 {
		pred, err := s.m.filters.where(conds)
		if err != nil {
			return nil, err
		}
		builder = builder.Where(pred)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.m.table, err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		entity, err := s.m.scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.m.enrich != nil && len(result) > 0 {
		if err := s.m.enrich(ctx, q, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// nameIndex loads a whole reference table into a name to id map.
func nameIndex(ctx context.Context, q QueryInterceptor, table string) (map[string]int64, error) {
	query, args, err := sq.Select("id", "name").From(table).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		index[name] = id
	}
	return index, rows.Err()
}
