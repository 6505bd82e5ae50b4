package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focusgroup/internal/dbx"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/campaigns"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/documents"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/invitations"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/messages"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/settings"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a connection or transaction so
// that services can run several of them inside one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Settings(db dbx.DBTX) settings.Repository
	Messages(db dbx.DBTX) messages.Repository
	Documents(db dbx.DBTX) documents.Repository
	Invitations(db dbx.DBTX) invitations.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Campaigns(db dbx.DBTX) campaigns.Repository
}
