// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/service"
)

type MockTranslationService struct {
	mock.Mock
}

func (m *MockTranslationService) Store(ctx context.Context, req *dto.StoreTranslationRequest) (*model.TranslationValue, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationValue), args.Error(1)
}

func (m *MockTranslationService) Update(ctx context.Context, id int64, value string, userID *int64) (*model.TranslationValue, error) {
	args := m.Called(ctx, id, value, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationValue), args.Error(1)
}

func (m *MockTranslationService) Destroy(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTranslationService) Find(ctx context.Context, id int64) (*model.TranslationValue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationValue), args.Error(1)
}

func (m *MockTranslationService) Revisions(ctx context.Context, id int64) ([]model.TranslationRevision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranslationRevision), args.Error(1)
}

func (m *MockTranslationService) Search(ctx context.Context, filters model.TranslationFilters, page, perPage int) (*service.Page[model.TranslationRow], error) {
	args := m.Called(ctx, filters, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.TranslationRow]), args.Error(1)
}

func (m *MockTranslationService) ExportTranslations(ctx context.Context, localeCode, baseURL string) (*model.Export, error) {
	args := m.Called(ctx, localeCode, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockTranslationService) GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error) {
	args := m.Called(ctx, localeCode)
	return args.Get(0).(model.ExportStats), args.Error(1)
}

type MockLocaleService struct {
	mock.Mock
}

func (m *MockLocaleService) List(ctx context.Context, page, perPage int) (*service.Page[model.Locale], error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Locale]), args.Error(1)
}

func (m *MockLocaleService) Get(ctx context.Context, id int64) (*model.Locale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Locale), args.Error(1)
}

func (m *MockLocaleService) Create(ctx context.Context, req *dto.StoreLocaleRequest) (*model.Locale, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Locale), args.Error(1)
}

func (m *MockLocaleService) Update(ctx context.Context, id int64, req *dto.UpdateLocaleRequest) (*model.Locale, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Locale), args.Error(1)
}

func (m *MockLocaleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, page, perPage int) (*service.Page[model.User], error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.User]), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	return tokenPairArg(args, 0), userArg(args, 1), args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, req)
	return tokenPairArg(args, 0), userArg(args, 1), args.Error(2)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, *model.User, error) {
	args := m.Called(ctx, refreshToken)
	return tokenPairArg(args, 0), userArg(args, 1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokenPair(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	args := m.Called(ctx, user)
	return tokenPairArg(args, 0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*dto.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *MockTokenService) InvalidateAccessToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenService) InvalidateUserTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenService) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

func (m *MockTokenService) FindRefreshToken(ctx context.Context, tokenString string) (*model.Token, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func tokenPairArg(args mock.Arguments, i int) *dto.TokenPair {
	if v, ok := args.Get(i).(*dto.TokenPair); ok {
		return v
	}
	return nil
}

func userArg(args mock.Arguments, i int) *model.User {
	if v, ok := args.Get(i).(*model.User); ok {
		return v
	}
	return nil
}

var (
	_ service.TranslationService = (*MockTranslationService)(nil)
	_ service.LocaleService      = (*MockLocaleService)(nil)
	_ service.UserService        = (*MockUserService)(nil)
	_ service.AuthService        = (*MockAuthService)(nil)
	_ service.TokenService       = (*MockTokenService)(nil)
	_ service.LoggingService     = (*MockLoggingService)(nil)
)
