package service

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/storage"
)

// LocaleService manages locales.
type LocaleService interface {
	List(ctx context.Context, page, perPage int) (*Page[model.Locale], error)
	Get(ctx context.Context, id int64) (*model.Locale, error)
	Create(ctx context.Context, req *dto.StoreLocaleRequest) (*model.Locale, error)
	Update(ctx context.Context, id int64, req *dto.UpdateLocaleRequest) (*model.Locale, error)
	Delete(ctx context.Context, id int64) error
}

// LocaleServiceImpl implements LocaleService.
type LocaleServiceImpl struct {
	locales     repository.LocaleRepositoryInterface
	exportCache ExportCache
}

// NewLocaleService creates a locale service. Locale writes clear exportCache, which may be nil.
func NewLocaleService(locales repository.LocaleRepositoryInterface, exportCache ExportCache) *LocaleServiceImpl {
	return &LocaleServiceImpl{locales: locales, exportCache: exportCache}
}

// ValidateLocaleCode checks that code is a well-formed BCP 47 tag, reading "_" as "-".
func ValidateLocaleCode(code string) error {
	if _, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err != nil {
		return NewValidationError("code", "The code must be a valid locale code.")
	}
	return nil
}

// List implements LocaleService.
func (s *LocaleServiceImpl) List(ctx context.Context, page, perPage int) (*Page[model.Locale], error) {
	if page < 1 {
		page = 1
	}
	total, err := s.locales.Count(ctx)
	if err != nil {
		return nil, storageErr("count locales", err)
	}
	limit, offset := pageOffset(page, perPage)
	locales, err := s.locales.List(ctx, limit, offset)
	if err != nil {
		return nil, storageErr("list locales", err)
	}
	return newPage(locales, total, page, perPage), nil
}

// Get implements LocaleService.
func (s *LocaleServiceImpl) Get(ctx context.Context, id int64) (*model.Locale, error) {
	locale, err := s.locales.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find locale", err)
	}
	if locale == nil {
		return nil, localeNotFound(id)
	}
	return locale, nil
}

// Create implements LocaleService.
func (s *LocaleServiceImpl) Create(ctx context.Context, req *dto.StoreLocaleRequest) (*model.Locale, error) {
	if err := ValidateLocaleCode(req.Code); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	locale := &model.Locale{Code: req.Code, Name: req.Name}
	if err := s.locales.Create(ctx, locale); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, &ConflictError{Resource: "locale", Field: "code", Value: req.Code}
		}
		return nil, storageErr("create locale", err)
	}
	s.invalidateExports()
	return locale, nil
}

// Update implements LocaleService.
func (s *LocaleServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateLocaleRequest) (*model.Locale, error) {
	locale, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != locale.Code {
		if err := ValidateLocaleCode(*req.Code); err != nil {
			return nil, err
		}
		if err := s.ensureCodeFree(ctx, *req.Code, id); err != nil {
			return nil, err
		}
		locale.Code = *req.Code
	}
	if req.Name != nil {
		locale.Name = *req.Name
	}

	ok, err := s.locales.Update(ctx, locale)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, &ConflictError{Resource: "locale", Field: "code", Value: locale.Code}
		}
		return nil, storageErr("update locale", err)
	}
	if !ok {
		return nil, localeNotFound(id)
	}
	s.invalidateExports()
	return locale, nil
}

// Delete implements LocaleService. The locale's translation values are removed with it.
func (s *LocaleServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.locales.Delete(ctx, id)
	if err != nil {
		return storageErr("delete locale", err)
	}
	if !deleted {
		return localeNotFound(id)
	}
	s.invalidateExports()
	return nil
}

func (s *LocaleServiceImpl) ensureCodeFree(ctx context.Context, code string, selfID int64) error {
	existing, err := s.locales.FindByCode(ctx, code)
	if err != nil {
		return storageErr("find locale", err)
	}
	if existing != nil && existing.ID != selfID {
		return &ConflictError{Resource: "locale", Field: "code", Value: code}
	}
	return nil
}

func (s *LocaleServiceImpl) invalidateExports() {
	if s.exportCache != nil {
		s.exportCache.Clear()
	}
}

func localeNotFound(id int64) error {
	return &NotFoundError{Resource: ErrLocaleNotFound.Resource, Key: strconv.FormatInt(id, 10)}
}

var _ LocaleService = (*LocaleServiceImpl)(nil)
