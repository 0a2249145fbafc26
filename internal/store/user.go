package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/resort-catalog/internal/models"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

// UserStore persists users. The role name of a user is resolved to a role id
// on every write.
type UserStore struct {
	entityStore[models.User]
}

func NewUserStore(conn *Connection, observers ...Observer) *UserStore {
	return &UserStore{entityStore: newEntityStore(conn, userMapping(), observers...)}
}

func userMapping() mapping[models.User] {
	return mapping[models.User]{
		table:   tableUsers,
		from:    usersFrom,
		columns: []string{"u.id", "u.role_id", "u.login", "u.phash", "r.name"},
		filters: columnSet{
			"id":      "u.id",
			"role_id": "u.role_id",
			"login":   "u.login",
			"phash":   "u.phash",
			"role":    "r.name",
		},
		orderBy: "u.id",
		scan: func(rows *sql.Rows) (models.User, error) {
			var u models.User
			err := rows.Scan(&u.ID, &u.RoleID, &u.Login, &u.PasswordHash, &u.Role)
			return u, err
		},
		id: func(u models.User) int64 { return u.ID },
		key: func(u models.User) []Condition {
			return []Condition{Eq("login", u.Login)}
		},
		values: func(ctx context.Context, q QueryInterceptor, u models.User) (map[string]any, error) {
			roles, err := nameIndex(ctx, q, tableRoles)
			if err != nil {
				return nil, err
			}
			roleID, ok := roles[u.Role]
			if !ok {
				return nil, srvErrors.NewIntegrityError(tableRoles, u.Role)
			}
			return map[string]any{
				"role_id": roleID,
				"login":   u.Login,
				"phash":   u.PasswordHash,
			}, nil
		},
	}
}
