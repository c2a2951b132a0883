package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/metrics"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/service/cache"
	"github.com/guttosm/translation-service/internal/storage"
)

// ExportSnapshot is a cached export: the resolved locale code and its key/value map.
type ExportSnapshot struct {
	Code string
	Data map[string]string
}

// ExportCache caches exports by requested locale code.
type ExportCache = cache.Cache[ExportSnapshot]

// TranslationService manages translation values, their keys and tags, and locale exports.
type TranslationService interface {
	// Store creates or overwrites the value of a key in a locale, creating the key and any
	// missing tags. Tags are added to the key, never removed.
	Store(ctx context.Context, req *dto.StoreTranslationRequest) (*model.TranslationValue, error)
	// Update replaces a value's text. A revision is recorded only when userID is non-nil.
	Update(ctx context.Context, id int64, value string, userID *int64) (*model.TranslationValue, error)
	// Destroy deletes a value and reports whether it existed.
	Destroy(ctx context.Context, id int64) (bool, error)
	Find(ctx context.Context, id int64) (*model.TranslationValue, error)
	Revisions(ctx context.Context, id int64) ([]model.TranslationRevision, error)
	Search(ctx context.Context, filters model.TranslationFilters, page, perPage int) (*Page[model.TranslationRow], error)
	// ExportTranslations returns the key/value map of one locale, or of the first locale when
	// localeCode is empty, with links to the exports of every other locale.
	ExportTranslations(ctx context.Context, localeCode, baseURL string) (*model.Export, error)
	GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error)
}

// TranslationServiceImpl implements TranslationService.
type TranslationServiceImpl struct {
	transactor   repository.Transactor
	translations repository.TranslationRepositoryInterface
	locales      repository.LocaleRepositoryInterface
	revisions    repository.RevisionRepositoryInterface
	exportCache  ExportCache
}

// NewTranslationService creates a translation service. exportCache may be nil.
func NewTranslationService(
	transactor repository.Transactor,
	translations repository.TranslationRepositoryInterface,
	locales repository.LocaleRepositoryInterface,
	revisions repository.RevisionRepositoryInterface,
	exportCache ExportCache,
) *TranslationServiceImpl {
	return &TranslationServiceImpl{
		transactor:   transactor,
		translations: translations,
		locales:      locales,
		revisions:    revisions,
		exportCache:  exportCache,
	}
}

// Store implements TranslationService. A concurrent insert of the same key and locale makes
// the first attempt fail on the unique constraint; the store is then retried once, which
// finds the row and updates it.
func (s *TranslationServiceImpl) Store(ctx context.Context, req *dto.StoreTranslationRequest) (*model.TranslationValue, error) {
	value, err := s.storeOnce(ctx, req)
	if err != nil && storage.IsUniqueViolation(err) {
		metrics.RecordStoreRetry()
		log.Ctx(ctx).Debug().Str("key", req.Key).Str("locale", req.Locale).Msg("retrying store after concurrent insert")
		value, err = s.storeOnce(ctx, req)
	}
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, &ConflictError{Resource: "translation", Field: "key", Value: req.Key}
		}
		return nil, storageErr("store translation", err)
	}
	s.invalidateExports()
	return value, nil
}

func (s *TranslationServiceImpl) storeOnce(ctx context.Context, req *dto.StoreTranslationRequest) (*model.TranslationValue, error) {
	var stored *model.TranslationValue
	err := s.transactor.WithinTransaction(ctx, func(uow repository.UnitOfWork) error {
		locale, err := uow.Locales().FindByCode(ctx, req.Locale)
		if err != nil {
			return err
		}
		if locale == nil {
			return &NotFoundError{Resource: ErrLocaleNotFound.Resource, Key: req.Locale}
		}

		key, err := uow.Keys().FirstByKey(ctx, req.Key)
		if err != nil {
			return err
		}
		if key == nil {
			key = &model.TranslationKey{Key: req.Key, Description: req.Description}
			if err := uow.Keys().Create(ctx, key); err != nil {
				return err
			}
		}

		value, err := uow.Translations().FindByKeyAndLocale(ctx, key.ID, locale.ID)
		if err != nil {
			return err
		}
		if value != nil {
			value.Value = req.Value
			if _, err := uow.Translations().Update(ctx, value); err != nil {
				return err
			}
		} else {
			value = &model.TranslationValue{TranslationKeyID: key.ID, LocaleID: locale.ID, Value: req.Value}
			if err := uow.Translations().Create(ctx, value); err != nil {
				return err
			}
		}

		if len(req.Tags) > 0 {
			if err := syncTags(ctx, uow, key.ID, req.Tags); err != nil {
				return err
			}
		}

		if err := uow.Translations().LoadRelations(ctx, value); err != nil {
			return err
		}
		stored = value
		return nil
	})
	return stored, err
}

// syncTags creates the tags that do not exist yet and attaches all of them to the key.
func syncTags(ctx context.Context, uow repository.UnitOfWork, keyID int64, names []string) error {
	names = uniqueTagNames(names)
	existing, err := uow.Tags().FindByNames(ctx, names)
	if err != nil {
		return err
	}

	found := make(map[string]bool, len(existing))
	ids := make([]int64, 0, len(names))
	for _, tag := range existing {
		found[tag.Name] = true
		ids = append(ids, tag.ID)
	}
	for _, name := range names {
		if found[name] {
			continue
		}
		tag := &model.TranslationTag{Name: name}
		if err := uow.Tags().Create(ctx, tag); err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	return uow.Keys().AttachTags(ctx, keyID, ids)
}

func uniqueTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Update implements TranslationService.
func (s *TranslationServiceImpl) Update(ctx context.Context, id int64, value string, userID *int64) (*model.TranslationValue, error) {
	var updated *model.TranslationValue
	err := s.transactor.WithinTransaction(ctx, func(uow repository.UnitOfWork) error {
		current, err := uow.Translations().Find(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return translationNotFound(id)
		}

		old := current.Value
		current.Value = value
		ok, err := uow.Translations().Update(ctx, current)
		if err != nil {
			return err
		}
		if !ok {
			return translationNotFound(id)
		}

		if userID != nil {
			rev := &model.TranslationRevision{
				TranslationValueID: current.ID,
				Old:                &old,
				New:                value,
				UserID:             *userID,
			}
			if err := uow.Revisions().Create(ctx, rev); err != nil {
				return err
			}
		}

		if err := uow.Translations().LoadRelations(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, storageErr("update translation", err)
	}
	s.invalidateExports()
	return updated, nil
}

// Destroy implements TranslationService.
func (s *TranslationServiceImpl) Destroy(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.translations.Delete(ctx, id)
	if err != nil {
		return false, storageErr("delete translation", err)
	}
	if deleted {
		s.invalidateExports()
	}
	return deleted, nil
}

// Find implements TranslationService.
func (s *TranslationServiceImpl) Find(ctx context.Context, id int64) (*model.TranslationValue, error) {
	value, err := s.translations.Find(ctx, id)
	if err != nil {
		return nil, storageErr("find translation", err)
	}
	if value == nil {
		return nil, translationNotFound(id)
	}
	if err := s.translations.LoadRelations(ctx, value); err != nil {
		return nil, storageErr("load translation relations", err)
	}
	return value, nil
}

// Revisions implements TranslationService.
func (s *TranslationServiceImpl) Revisions(ctx context.Context, id int64) ([]model.TranslationRevision, error) {
	value, err := s.translations.Find(ctx, id)
	if err != nil {
		return nil, storageErr("find translation", err)
	}
	if value == nil {
		return nil, translationNotFound(id)
	}
	revs, err := s.revisions.ListByValue(ctx, id)
	if err != nil {
		return nil, storageErr("list revisions", err)
	}
	return revs, nil
}

// Search implements TranslationService.
func (s *TranslationServiceImpl) Search(ctx context.Context, filters model.TranslationFilters, page, perPage int) (*Page[model.TranslationRow], error) {
	start := time.Now()
	defer func() { metrics.RecordSearch(time.Since(start)) }()

	if page < 1 {
		page = 1
	}
	limit, offset := pageOffset(page, perPage)
	rows, total, err := s.translations.Search(ctx, filters, limit, offset)
	if err != nil {
		return nil, storageErr("search translations", err)
	}
	return newPage(rows, total, page, perPage), nil
}

// ExportTranslations implements TranslationService.
func (s *TranslationServiceImpl) ExportTranslations(ctx context.Context, localeCode, baseURL string) (*model.Export, error) {
	start := time.Now()
	codes, err := s.locales.Codes(ctx)
	if err != nil {
		metrics.RecordExport(time.Since(start), 0, "error", "storage")
		return nil, storageErr("list locale codes", err)
	}
	if len(codes) == 0 {
		metrics.RecordExport(time.Since(start), 0, "error", "storage")
		return nil, ErrNoLocales
	}
	if localeCode == "" {
		localeCode = codes[0]
	}

	snapshot, source, err := s.exportSnapshot(ctx, localeCode)
	if err != nil {
		metrics.RecordExport(time.Since(start), 0, "error", source)
		return nil, err
	}

	export := &model.Export{
		Data:          snapshot.Data,
		CurrentLocale: snapshot.Code,
		OtherLocales:  make(map[string]string, len(codes)),
	}
	for _, code := range codes {
		if code != snapshot.Code {
			export.OtherLocales[code] = localeURL(baseURL, code)
		}
	}

	metrics.RecordExport(time.Since(start), len(export.Data), "success", source)
	return export, nil
}

func (s *TranslationServiceImpl) exportSnapshot(ctx context.Context, localeCode string) (ExportSnapshot, string, error) {
	var gen uint64
	if s.exportCache != nil {
		if snapshot, ok := s.exportCache.Get(localeCode); ok {
			return snapshot, "cache", nil
		}
		gen = s.exportCache.Generation()
	}

	code, err := s.translations.ResolveLocaleCode(ctx, localeCode)
	if err != nil {
		return ExportSnapshot{}, "storage", storageErr("resolve locale code", err)
	}
	data, err := s.translations.ExportByLocale(ctx, code)
	if err != nil {
		return ExportSnapshot{}, "storage", storageErr(fmt.Sprintf("export locale %s", code), err)
	}
	if data == nil {
		data = map[string]string{}
	}

	snapshot := ExportSnapshot{Code: code, Data: data}
	if s.exportCache != nil {
		// A write that committed while storage was read has cleared the cache since gen.
		s.exportCache.SetIfGeneration(localeCode, snapshot, gen)
	}
	return snapshot, "storage", nil
}

// localeURL appends locale=<code> to baseURL's query.
func localeURL(baseURL, code string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "locale=" + url.QueryEscape(code)
}

// GetExportStats implements TranslationService.
func (s *TranslationServiceImpl) GetExportStats(ctx context.Context, localeCode string) (model.ExportStats, error) {
	stats, err := s.translations.GetExportStats(ctx, localeCode)
	if err != nil {
		return model.ExportStats{}, storageErr("export stats", err)
	}
	return stats, nil
}

func (s *TranslationServiceImpl) invalidateExports() {
	if s.exportCache != nil {
		s.exportCache.Clear()
	}
}

func translationNotFound(id int64) error {
	return &NotFoundError{Resource: ErrTranslationNotFound.Resource, Key: strconv.FormatInt(id, 10)}
}

var _ TranslationService = (*TranslationServiceImpl)(nil)
