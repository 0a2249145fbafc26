// Package store implements the data access layer for the resort catalog.
//
// This package provides persistent storage on an embedded SQLite database.
// Every entity is reached through a DAO exposing the same generic filter and
// CRUD surface, and every store notifies its observers after a successful
// mutation.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                    Store (factory over Connection)              │
//	├─────────────────────────────────────────────────────────────────┤
//	│  ResortStore   FeatureStore   EnvironmentStore   UserStore  ... │
//	│       │              │               │               │          │
//	│       └──────────────┴───────┬───────┴───────────────┘          │
//	│                              ▼                                  │
//	│                 entityStore[T] + mapping[T]                     │
//	│                              ▼                                  │
//	│            Connection.RunInTx → QueryInterceptor                │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Tables created by migrations (internal/store/migrations/sql/):
//
//	┌─────────────────────┬────────────────────────────────────────────┐
//	│  Table              │  Purpose                                   │
//	├─────────────────────┼────────────────────────────────────────────┤
//	│  resorts            │  Resort name and price                     │
//	│  features           │  Feature names (spa, golf, ...)            │
//	│  environments       │  Environment names (ocean, mountains, ...) │
//	│  resort_features    │  Resort to feature links                   │
//	│  resort_environments│  Resort to environment links               │
//	│  roles              │  Roles, seeded with admin and user         │
//	│  users              │  Login, password hash and role             │
//	│  schema_migrations  │  Migration version tracking                │
//	└─────────────────────┴────────────────────────────────────────────┘
//
// Deleting a resort, feature, environment or role cascades to the rows
// that reference it.
//
// # Initialization Flow
//
//	conn := NewConnection()
//	db, _ := conn.Open(ctx, path, reinitialize)
//	    └── NewDB(path)        → one pooled connection, foreign keys on
//	migrations.Run(ctx, db)    → creates the tables above
//	s := NewStore(conn)
//	    └── s.Resorts(obs...)  → fresh store with its own observers
//
// # Filtering
//
// Filter takes Conditions that are ANDed. Columns are checked against the
// columns of the entity and the operator against =, !=, <, <=, >, >=, LIKE
// and IN. Values are always bound as query arguments. Anything else fails
// with an InvalidFilterError.
//
//	s.Resorts().Filter(ctx, store.Condition{Column: "price", Op: store.OpLt, Value: 9000})
//
// # Mutations
//
// Add, Remove and Update each run in a single transaction:
//
//	Add(entity)          → insert row (+ association rows)
//	Remove(entity)       → delete every row matching the entity key
//	Update(old, new)     → overwrite every row matching the key of old
//
// A name reference that does not exist (an unknown feature, environment or
// role) fails with an IntegrityError and nothing is written. After commit
// the last action is recorded and observers run in attach order.
//
// # Undo
//
// ResortStore is an originator: Save captures the last action in a
// ResortMemento and Restore reverts an update by applying it in reverse.
// See internal/history for the caretaker.
package store
