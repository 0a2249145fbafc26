package store

import "github.com/kubev2v/resort-catalog/internal/models"

// Store builds entity stores that share one connection. Every accessor
// returns a fresh store with its own observer list.
type Store struct {
	conn *Connection
}

func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

func (s *Store) Resorts(observers ...Observer) *ResortStore {
	return NewResortStore(s.conn, observers...)
}

func (s *Store) Features(observers ...Observer) *FeatureStore {
	return NewFeatureStore(s.conn, observers...)
}

func (s *Store) Environments(observers ...Observer) *EnvironmentStore {
	return NewEnvironmentStore(s.conn, observers...)
}

func (s *Store) Users(observers ...Observer) *UserStore {
	return NewUserStore(s.conn, observers...)
}

func (s *Store) Roles(observers ...Observer) *RoleStore {
	return NewRoleStore(s.conn, observers...)
}

func (s *Store) Connection() *Connection {
	return s.conn
}

func (s *Store) Close() error {
	return s.conn.Close()
}

var (
	_ DAO[models.Resort]      = (*ResortStore)(nil)
	_ DAO[models.Feature]     = (*FeatureStore)(nil)
	_ DAO[models.Environment] = (*EnvironmentStore)(nil)
	_ DAO[models.User]        = (*UserStore)(nil)
	_ DAO[models.Role]        = (*RoleStore)(nil)
	_ Notifier                = (*ResortStore)(nil)
	_ Subject                 = (*ResortStore)(nil)
)
