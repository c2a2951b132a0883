package repository

import (
	"context"
	"database/sql"

	"github.com/guttosm/translation-service/internal/storage"
)

// UnitOfWork exposes repositories bound to a single transaction.
type UnitOfWork interface {
	Keys() TranslationKeyRepositoryInterface
	Tags() TranslationTagRepositoryInterface
	Locales() LocaleRepositoryInterface
	Translations() TranslationRepositoryInterface
	Revisions() RevisionRepositoryInterface
}

// Transactor runs a function inside a unit of work. Everything written through the unit of
// work commits together when fn returns nil and is rolled back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// SQLTransactor implements Transactor on a storage.DB.
type SQLTransactor struct {
	db *storage.DB
}

// NewTransactor creates a transactor for db.
func NewTransactor(db *storage.DB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *SQLTransactor) WithinTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return t.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(newSQLUnitOfWork(tx, t.db.Capabilities()))
	})
}

type sqlUnitOfWork struct {
	keys         *TranslationKeyRepository
	tags         *TranslationTagRepository
	locales      *LocaleRepository
	translations *TranslationRepository
	revisions    *RevisionRepository
}

func newSQLUnitOfWork(tx DBTX, caps storage.Capabilities) *sqlUnitOfWork {
	return &sqlUnitOfWork{
		keys:         NewTranslationKeyRepository(tx, caps),
		tags:         NewTranslationTagRepository(tx, caps),
		locales:      NewLocaleRepository(tx, caps),
		translations: NewTranslationRepository(tx, caps),
		revisions:    NewRevisionRepository(tx, caps),
	}
}

func (u *sqlUnitOfWork) Keys() TranslationKeyRepositoryInterface      { return u.keys }
func (u *sqlUnitOfWork) Tags() TranslationTagRepositoryInterface      { return u.tags }
func (u *sqlUnitOfWork) Locales() LocaleRepositoryInterface           { return u.locales }
func (u *sqlUnitOfWork) Translations() TranslationRepositoryInterface { return u.translations }
func (u *sqlUnitOfWork) Revisions() RevisionRepositoryInterface       { return u.revisions }
