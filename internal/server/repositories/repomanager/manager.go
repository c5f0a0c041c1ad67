package repomanager

import (
	"context"
	"database/sql"

	"github.com/tokomonggo/server/internal/dbx"
	"github.com/tokomonggo/server/internal/server/repositories/accounts"
	"github.com/tokomonggo/server/internal/server/repositories/listings"
	"github.com/tokomonggo/server/internal/server/repositories/profiles"
	"github.com/tokomonggo/server/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Listings(db dbx.DBTX) listings.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
