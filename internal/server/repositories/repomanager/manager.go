package repomanager

import (
	"context"
	"database/sql"

	"github.com/forwardtrading/authsvc/internal/dbx"
	"github.com/forwardtrading/authsvc/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// constructors serve both plain connections and transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
