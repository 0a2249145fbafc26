package access

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"

	"github.com/kubev2v/resort-catalog/internal/models"
	"github.com/kubev2v/resort-catalog/internal/store"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

// Privileges maps a role name to its level. Lower levels are more privileged.
type Privileges map[string]int

const (
	LevelAdmin = -1
	LevelUser  = 0
)

func DefaultPrivileges() Privileges {
	return Privileges{
		models.RoleAdmin: LevelAdmin,
		models.RoleUser:  LevelUser,
	}
}

func (p Privileges) level(role string, fallback int) int {
	if l, ok := p[role]; ok {
		return l
	}
	return fallback
}

type session struct {
	login string
	role  string
	level int
}

// Proxy guards a DAO behind a login. Reads need user level, writes need
// admin level. It is not safe for concurrent use.
type Proxy[T any] struct {
	target     store.DAO[T]
	users      store.Queryable[models.User]
	privileges Privileges
	readLevel  int
	writeLevel int
	session    *session
	logger     *zap.SugaredLogger
}

func NewProxy[T any](target store.DAO[T], users store.Queryable[models.User], privileges Privileges) *Proxy[T] {
	if privileges == nil {
		privileges = DefaultPrivileges()
	}
	return &Proxy[T]{
		target:     target,
		users:      users,
		privileges: privileges,
		readLevel:  privileges.level(models.RoleUser, LevelUser),
		writeLevel: privileges.level(models.RoleAdmin, LevelAdmin),
		logger:     zap.S().Named("access_proxy"),
	}
}

// Login authenticates login with password. On failure any previous session
// is dropped and false is returned.
func (p *Proxy[T]) Login(ctx context.Context, login, password string) (bool, error) {
	p.session = nil

	users, err := p.users.Filter(ctx, store.Eq("login", login))
	if err != nil {
		return false, err
	}
	if len(users) == 0 {
		p.logger.Infow("login failed: unknown user", "login", login)
		return false, nil
	}

	user := users[0]
	hash := models.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		p.logger.Infow("login failed: wrong password", "login", login)
		return false, nil
	}

	level, ok := p.privileges[user.Role]
	if !ok {
		p.logger.Warnw("login failed: role has no privilege level", "login", login, "role", user.Role)
		return false, nil
	}

	p.session = &session{login: user.Login, role: user.Role, level: level}
	p.logger.Debugw("login succeeded", "login", login, "role", user.Role)
	return true, nil
}

func (p *Proxy[T]) Logout() {
	p.session = nil
}

// CheckAccess reports whether a session is active.
func (p *Proxy[T]) CheckAccess() bool {
	return p.session != nil
}

func (p *Proxy[T]) GetAll(ctx context.Context) ([]T, error) {
	if err := p.require(p.readLevel, "read"); err != nil {
		return nil, err
	}
	return p.target.GetAll(ctx)
}

func (p *Proxy[T]) Filter(ctx context.Context, conds ...store.Condition) ([]T, error) {
	if err := p.require(p.readLevel, "read"); err != nil {
		return nil, err
	}
	return p.target.Filter(ctx, conds...)
}

func (p *Proxy[T]) Add(ctx context.Context, entity T) error {
	if err := p.require(p.writeLevel, "add"); err != nil {
		return err
	}
	return p.target.Add(ctx, entity)
}

func (p *Proxy[T]) Remove(ctx context.Context, entity T) error {
	if err := p.require(p.writeLevel, "remove"); err != nil {
		return err
	}
	return p.target.Remove(ctx, entity)
}

func (p *Proxy[T]) Update(ctx context.Context, oldEntity, newEntity T) error {
	if err := p.require(p.writeLevel, "update"); err != nil {
		return err
	}
	return p.target.Update(ctx, oldEntity, newEntity)
}

func (p *Proxy[T]) require(level int, operation string) error {
	if p.session == nil {
		p.logger.Warnw("access denied: no user", "operation", operation)
		return srvErrors.NewNoUserError(operation)
	}
	if p.session.level > level {
		p.logger.Warnw("access denied: insufficient privilege",
			"login", p.session.login,
			"role", p.session.role,
			"operation", operation,
		)
		return srvErrors.NewUnauthorizedError(p.session.role, operation)
	}
	return nil
}

var _ store.DAO[models.Resort] = (*Proxy[models.Resort])(nil)
