package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/triviaquiz/internal/dbx"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Quizzes(db dbx.DBTX) quizzes.Repository
}
