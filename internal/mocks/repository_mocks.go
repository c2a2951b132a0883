// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
)

type MockUserRepositoryInterface struct {
	mock.Mock
}

func (m *MockUserRepositoryInterface) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepositoryInterface) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepositoryInterface) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenRepositoryInterface struct {
	mock.Mock
}

func (m *MockTokenRepositoryInterface) Create(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepositoryInterface) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) DeleteUserRefreshTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenRepositoryInterface) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	args := m.Called(ctx, tokenString)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepositoryInterface) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLogsRepositoryInterface struct {
	mock.Mock
}

func (m *MockLogsRepositoryInterface) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepositoryInterface) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogsRepositoryInterface) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.LogEntryDocument), args.Error(1)
}

func (m *MockLogsRepositoryInterface) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockTranslationRepositoryInterface struct {
	mock.Mock
}

func (m *MockTranslationRepositoryInterface) Search(ctx context.Context, filters model.TranslationFilters, limit, offset int) ([]model.TranslationRow, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.TranslationRow), args.Get(1).(int64), args.Error(2)
}

func (m *MockTranslationRepositoryInterface) ResolveLocaleCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) ExportByLocale(ctx context.Context, localeCode string) (map[string]string, error) {
	args := m.Called(ctx, localeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error) {
	args := m.Called(ctx, localeCode)
	return args.Get(0).(model.ExportStats), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) Find(ctx context.Context, id int64) (*model.TranslationValue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationValue), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) FindByKeyAndLocale(ctx context.Context, keyID, localeID int64) (*model.TranslationValue, error) {
	args := m.Called(ctx, keyID, localeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationValue), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) Create(ctx context.Context, v *model.TranslationValue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockTranslationRepositoryInterface) Update(ctx context.Context, v *model.TranslationValue) (bool, error) {
	args := m.Called(ctx, v)
	return args.Bool(0), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTranslationRepositoryInterface) LoadRelations(ctx context.Context, v *model.TranslationValue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type MockLocaleRepositoryInterface struct {
	mock.Mock
}

func (m *MockLocaleRepositoryInterface) List(ctx context.Context, limit, offset int) ([]model.Locale, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Locale), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) Codes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) FindByID(ctx context.Context, id int64) (*model.Locale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Locale), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) FindByCode(ctx context.Context, code string) (*model.Locale, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Locale), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) Create(ctx context.Context, locale *model.Locale) error {
	args := m.Called(ctx, locale)
	return args.Error(0)
}

func (m *MockLocaleRepositoryInterface) Update(ctx context.Context, locale *model.Locale) (bool, error) {
	args := m.Called(ctx, locale)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocaleRepositoryInterface) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var (
	_ repository.UserRepositoryInterface        = (*MockUserRepositoryInterface)(nil)
	_ repository.TokenRepositoryInterface       = (*MockTokenRepositoryInterface)(nil)
	_ repository.LogsRepositoryInterface        = (*MockLogsRepositoryInterface)(nil)
	_ repository.TranslationRepositoryInterface = (*MockTranslationRepositoryInterface)(nil)
	_ repository.LocaleRepositoryInterface      = (*MockLocaleRepositoryInterface)(nil)
)
