package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// one repository per aggregate. Repositories obtained from a Tx run inside
// that transaction; nested transactions are not supported.
type Store interface {
	Users() Users
	Todos() Todos
	Tags() Tags
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during password login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used to match Google accounts.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. A duplicate username or email yields
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdatePasswordHash sets the bcrypt hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

type Todos interface {
	// GetTodo returns a todo with its tags. A non-empty ownerID restricts the
	// lookup to that owner, so other users' todos read as ErrNotFound.
	GetTodo(ctx context.Context, id, ownerID string) (domain.Todo, error)

	ListTodos(ctx context.Context, f domain.TodoFilter) ([]domain.Todo, error)

	// CreateTodo inserts the todo and links t.Tags by id.
	CreateTodo(ctx context.Context, t domain.Todo) error

	// UpdateTodo replaces title, description, priority, complete and the tag
	// set of an existing todo.
	UpdateTodo(ctx context.Context, t domain.Todo) error

	// DeleteTodo removes a todo. A non-empty ownerID scopes the delete.
	DeleteTodo(ctx context.Context, id, ownerID string) error

	// DeleteTodos removes the listed todos owned by ownerID and reports how
	// many rows went.
	DeleteTodos(ctx context.Context, ids []string, ownerID string) (int, error)
}

type Tags interface {
	CreateTag(ctx context.Context, t domain.Tag) error
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// GetTagsByIDs returns the tags that exist among ids.
	GetTagsByIDs(ctx context.Context, ids []string) ([]domain.Tag, error)
}

type RevokedTokens interface {
	// RevokeToken records a jti. Recording the same jti twice yields
	// ErrAlreadyExists, which callers use to detect refresh token reuse.
	RevokeToken(ctx context.Context, t domain.RevokedToken) error

	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredRevokedTokens drops rows whose token expired before now.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}
