// Package repository provides the data access layer: SQL repositories for the translation
// domain and users, and MongoDB repositories for request and audit logs.
package repository

import (
	"context"

	"github.com/guttosm/translation-service/internal/domain/model"
)

// TranslationRepositoryInterface defines translation value queries and persistence.
type TranslationRepositoryInterface interface {
	Search(ctx context.Context, filters model.TranslationFilters, limit, offset int) ([]model.TranslationRow, int64, error)
	ResolveLocaleCode(ctx context.Context, code string) (string, error)
	ExportByLocale(ctx context.Context, localeCode string) (map[string]string, error)
	GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error)
	Find(ctx context.Context, id int64) (*model.TranslationValue, error)
	FindByKeyAndLocale(ctx context.Context, keyID, localeID int64) (*model.TranslationValue, error)
	Create(ctx context.Context, v *model.TranslationValue) error
	Update(ctx context.Context, v *model.TranslationValue) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	LoadRelations(ctx context.Context, v *model.TranslationValue) error
}

// TranslationKeyRepositoryInterface defines translation key operations.
type TranslationKeyRepositoryInterface interface {
	FirstByKey(ctx context.Context, key string) (*model.TranslationKey, error)
	FindByID(ctx context.Context, id int64) (*model.TranslationKey, error)
	Create(ctx context.Context, key *model.TranslationKey) error
	AttachTags(ctx context.Context, keyID int64, tagIDs []int64) error
	TagsForKey(ctx context.Context, keyID int64) ([]model.TranslationTag, error)
}

// TranslationTagRepositoryInterface defines tag operations.
type TranslationTagRepositoryInterface interface {
	FindByNames(ctx context.Context, names []string) ([]model.TranslationTag, error)
	Create(ctx context.Context, tag *model.TranslationTag) error
}

// LocaleRepositoryInterface defines locale operations.
type LocaleRepositoryInterface interface {
	List(ctx context.Context, limit, offset int) ([]model.Locale, error)
	Count(ctx context.Context) (int64, error)
	Codes(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id int64) (*model.Locale, error)
	FindByCode(ctx context.Context, code string) (*model.Locale, error)
	Create(ctx context.Context, locale *model.Locale) error
	Update(ctx context.Context, locale *model.Locale) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// RevisionRepositoryInterface defines revision operations.
type RevisionRepositoryInterface interface {
	Create(ctx context.Context, rev *model.TranslationRevision) error
	ListByValue(ctx context.Context, valueID int64) ([]model.TranslationRevision, error)
}

// UserRepositoryInterface defines user account operations.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// TokenRepositoryInterface defines refresh token and revocation storage.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteRefreshToken(ctx context.Context, tokenString string) error
	DeleteUserRefreshTokens(ctx context.Context, userID int64) error
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ TranslationRepositoryInterface    = (*TranslationRepository)(nil)
	_ TranslationKeyRepositoryInterface = (*TranslationKeyRepository)(nil)
	_ TranslationTagRepositoryInterface = (*TranslationTagRepository)(nil)
	_ LocaleRepositoryInterface         = (*LocaleRepository)(nil)
	_ RevisionRepositoryInterface       = (*RevisionRepository)(nil)
	_ UserRepositoryInterface           = (*UserRepository)(nil)
	_ TokenRepositoryInterface          = (*TokenRepository)(nil)
	_ Transactor                        = (*SQLTransactor)(nil)
)
