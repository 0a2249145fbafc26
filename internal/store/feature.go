package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/resort-catalog/internal/models"
)

type FeatureStore struct {
	entityStore[models.Feature]
}

func NewFeatureStore(conn *Connection, observers ...Observer) *FeatureStore {
	return &FeatureStore{entityStore: newEntityStore(conn, namedMapping(tableFeatures,
		func(id int64, name string) models.Feature { return models.Feature{ID: id, Name: name} },
		func(f models.Feature) (int64, string) { return f.ID, f.Name },
	), observers...)}
}

type EnvironmentStore struct {
	entityStore[models.Environment]
}

func NewEnvironmentStore(conn *Connection, observers ...Observer) *EnvironmentStore {
	return &EnvironmentStore{entityStore: newEntityStore(conn, namedMapping(tableEnvironments,
		func(id int64, name string) models.Environment { return models.Environment{ID: id, Name: name} },
		func(e models.Environment) (int64, string) { return e.ID, e.Name },
	), observers...)}
}

type RoleStore struct {
	entityStore[models.Role]
}

func NewRoleStore(conn *Connection, observers ...Observer) *RoleStore {
	return &RoleStore{entityStore: newEntityStore(conn, namedMapping(tableRoles,
		func(id int64, name string) models.Role { return models.Role{ID: id, Name: name} },
		func(r models.Role) (int64, string) { return r.ID, r.Name },
	), observers...)}
}

// namedMapping covers the (id, name) reference tables, keyed by name.
func namedMapping[T any](table string, build func(int64, string) T, split func(T) (int64, string)) mapping[T] {
	return mapping[T]{
		table:   table,
		from:    table,
		columns: []string{"id", "name"},
		filters: columnSet{"id": "id", "name": "name"},
		orderBy: "id",
		scan: func(rows *sql.Rows) (T, error) {
			var id int64
			var name string
			err := rows.Scan(&id, &name)
			return build(id, name), err
		},
		id: func(e T) int64 {
			id, _ := split(e)
			return id
		},
		key: func(e T) []Condition {
			_, name := split(e)
			return []Condition{Eq("name", name)}
		},
		values: func(_ context.Context, _ QueryInterceptor, e T) (map[string]any, error) {
			_, name := split(e)
			return map[string]any{"name": name}, nil
		},
	}
}
