package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/service"
)

// DefaultSeedBatchSize is the number of synthetic translations written per transaction.
const DefaultSeedBatchSize = 500

var (
	// DefaultLocales are created by the seed command when missing.
	DefaultLocales = []model.Locale{
		{Code: "en_US", Name: "English (United States)"},
		{Code: "fr_FR", Name: "French (France)"},
		{Code: "es_ES", Name: "Spanish (Spain)"},
		{Code: "pt_BR", Name: "Portuguese (Brazil)"},
	}
	// DefaultTags are created by the seed command when missing.
	DefaultTags = []string{"web", "mobile", "desktop"}

	seedWords = []string{
		"account", "save", "cancel", "profile", "welcome", "settings", "search", "order",
		"payment", "message", "language", "update", "delete", "confirm", "share", "help",
	}
)

// SeedOptions controls the seed command.
type SeedOptions struct {
	// Translations is the number of synthetic translation values to add. Zero adds none.
	Translations int
	BatchSize    int
}

// Seed creates the default locales, tags and admin account, then the requested number of
// synthetic translations. Existing locales, tags and the admin account are left alone.
func Seed(ctx context.Context, db *DatabaseComponents, auth service.AuthService, cfg config.SeedConfig, opts SeedOptions) error {
	if err := seedLocales(ctx, db.Locales); err != nil {
		return fmt.Errorf("seed locales: %w", err)
	}

	var tags []model.TranslationTag
	err := db.Transactor.WithinTransaction(ctx, func(uow repository.UnitOfWork) error {
		var err error
		tags, err = seedTags(ctx, uow.Tags())
		return err
	})
	if err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}

	if err := seedAdmin(ctx, auth, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if opts.Translations > 0 {
		if err := seedTranslations(ctx, db, tags, opts); err != nil {
			return fmt.Errorf("seed translations: %w", err)
		}
	}
	return nil
}

func seedLocales(ctx context.Context, locales repository.LocaleRepositoryInterface) error {
	for _, l := range DefaultLocales {
		existing, err := locales.FindByCode(ctx, l.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		locale := l
		if err := locales.Create(ctx, &locale); err != nil {
			return err
		}
		log.Info().Str("locale", locale.Code).Msg("Created default locale")
	}
	return nil
}

func seedTags(ctx context.Context, tags repository.TranslationTagRepositoryInterface) ([]model.TranslationTag, error) {
	existing, err := tags.FindByNames(ctx, DefaultTags)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}

	all := existing
	for _, name := range DefaultTags {
		if have[name] {
			continue
		}
		tag := model.TranslationTag{Name: name}
		if err := tags.Create(ctx, &tag); err != nil {
			return nil, err
		}
		log.Info().Str("tag", name).Msg("Created default tag")
		all = append(all, tag)
	}
	return all, nil
}

func seedAdmin(ctx context.Context, auth service.AuthService, cfg config.SeedConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	_, user, err := auth.Register(ctx, &dto.RegisterRequest{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	})
	if errors.Is(err, service.ErrUserExists) {
		log.Info().Str("email", cfg.AdminEmail).Msg("Admin user already exists")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("Created admin user")
	return nil
}

// seedTranslations writes opts.Translations values, one key per locale round, in batches of
// opts.BatchSize rows per transaction.
func seedTranslations(ctx context.Context, db *DatabaseComponents, tags []model.TranslationTag, opts SeedOptions) error {
	locales, err := db.Locales.List(ctx, len(DefaultLocales)+1000, 0)
	if err != nil {
		return err
	}
	if len(locales) == 0 {
		return service.ErrNoLocales
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultSeedBatchSize
	}

	var key *model.TranslationKey
	for start := 0; start < opts.Translations; start += batchSize {
		end := min(start+batchSize, opts.Translations)
		err := db.Transactor.WithinTransaction(ctx, func(uow repository.UnitOfWork) error {
			for i := start; i < end; i++ {
				locale := locales[i%len(locales)]
				if i%len(locales) == 0 || key == nil {
					key = &model.TranslationKey{Key: fmt.Sprintf("seed.%s.%d", seedWords[rand.IntN(len(seedWords))], i/len(locales))}
					if err := uow.Keys().Create(ctx, key); err != nil {
						return err
					}
					if err := uow.Keys().AttachTags(ctx, key.ID, randomTagIDs(tags)); err != nil {
						return err
					}
				}
				if err := uow.Translations().Create(ctx, &model.TranslationValue{
					TranslationKeyID: key.ID,
					LocaleID:         locale.ID,
					Value:            sentence(locale.Code),
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info().Int("written", end).Int("total", opts.Translations).Msg("Seeded translations")
	}
	return nil
}

func randomTagIDs(tags []model.TranslationTag) []int64 {
	var ids []int64
	for _, t := range tags {
		if rand.IntN(2) == 0 {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func sentence(localeCode string) string {
	n := 3 + rand.IntN(6)
	words := make([]string, n)
	for i := range words {
		words[i] = seedWords[rand.IntN(len(seedWords))]
	}
	return "[" + localeCode + "] " + strings.Join(words, " ")
}
