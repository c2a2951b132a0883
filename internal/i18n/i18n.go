// Package i18n translates user-facing API messages.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the language used when the client states no supported preference.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

// Supported lists the message languages, default first.
var Supported = []language.Tag{language.English, language.Portuguese, language.Dutch}

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once

	matcher = language.NewMatcher(Supported)
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale. Unknown locales and keys missing from a
// locale fall back to DefaultLocale; a key missing everywhere is returned as is.
func (t *Translator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// T translates key for the language negotiated from c's Accept-Language header.
func T(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

// GetLocale negotiates the response language from the Accept-Language header, honouring
// q-values. It returns the base language of the best supported match, e.g. "pt" for "pt-BR".
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}
	return Match(header)
}

// Match returns the supported base language that best fits an Accept-Language value.
func Match(acceptLanguage string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := Supported[idx].Base()
	return base.String()
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyValidationFailed:    "The given data was invalid.",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyUnauthorized:        "Unauthenticated.",
		ErrKeyInvalidCredentials:  "Invalid credentials",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyNotFound:            "Not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyConflict:            "The resource already exists",
		ErrKeyUserExists:          "The email has already been taken.",
		ErrKeyInvalidToken:        "Invalid or expired token",
		ErrKeyTokenRequired:       "Authentication token is required",
		ErrKeyRefreshRequired:     "X-Refresh-Token header is required",
		ErrKeyTimeout:             "Request timeout",
		ErrKeyUnavailable:         "Service temporarily unavailable",
		ErrKeyLocaleNotFound:      "Locale not found",
		ErrKeyTranslationNotFound: "Translation not found",
		ErrKeyNoLocales:           "No locales found.",
		ErrKeyExportFailed:        "Failed to export translations.",

		SuccessKeyTranslationSaved:   "Translation saved successfully.",
		SuccessKeyTranslationUpdated: "Translation updated successfully.",
		SuccessKeyTranslationDeleted: "Translation deleted successfully.",
		SuccessKeyLocaleDeleted:      "Locale deleted successfully",
		SuccessKeyLoggedOut:          "Logged out successfully.",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyValidationFailed:    "Os dados informados são inválidos.",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:        "Não autenticado.",
		ErrKeyInvalidCredentials:  "Credenciais inválidas",
		ErrKeyInvalidAPIKey:       "Chave de API inválida",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:            "O recurso já existe",
		ErrKeyUserExists:          "O email já está em uso.",
		ErrKeyInvalidToken:        "Token inválido ou expirado",
		ErrKeyTokenRequired:       "Token de autenticação é obrigatório",
		ErrKeyRefreshRequired:     "O cabeçalho X-Refresh-Token é obrigatório",
		ErrKeyTimeout:             "Tempo limite da requisição excedido",
		ErrKeyUnavailable:         "Serviço temporariamente indisponível",
		ErrKeyLocaleNotFound:      "Idioma não encontrado",
		ErrKeyTranslationNotFound: "Tradução não encontrada",
		ErrKeyNoLocales:           "Nenhum idioma encontrado.",
		ErrKeyExportFailed:        "Falha ao exportar traduções.",

		SuccessKeyTranslationSaved:   "Tradução salva com sucesso.",
		SuccessKeyTranslationUpdated: "Tradução atualizada com sucesso.",
		SuccessKeyTranslationDeleted: "Tradução removida com sucesso.",
		SuccessKeyLocaleDeleted:      "Idioma removido com sucesso",
		SuccessKeyLoggedOut:          "Sessão encerrada com sucesso.",
	},
	"nl": {
		ErrKeyInvalidRequest:      "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:  "Ongeldige aanvraag body",
		ErrKeyValidationFailed:    "De opgegeven gegevens zijn ongeldig.",
		ErrKeyInternalError:       "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:        "Niet geauthenticeerd.",
		ErrKeyInvalidCredentials:  "Ongeldige inloggegevens",
		ErrKeyInvalidAPIKey:       "Ongeldige API-sleutel",
		ErrKeyNotFound:            "Niet gevonden",
		ErrKeyRateLimitExceeded:   "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:            "De resource bestaat al",
		ErrKeyUserExists:          "Het e-mailadres is al in gebruik.",
		ErrKeyInvalidToken:        "Ongeldig of verlopen token",
		ErrKeyTokenRequired:       "Authenticatietoken is vereist",
		ErrKeyRefreshRequired:     "De X-Refresh-Token header is vereist",
		ErrKeyTimeout:             "Time-out van het verzoek",
		ErrKeyUnavailable:         "Dienst tijdelijk niet beschikbaar",
		ErrKeyLocaleNotFound:      "Taal niet gevonden",
		ErrKeyTranslationNotFound: "Vertaling niet gevonden",
		ErrKeyNoLocales:           "Geen talen gevonden.",
		ErrKeyExportFailed:        "Exporteren van vertalingen mislukt.",

		SuccessKeyTranslationSaved:   "Vertaling succesvol opgeslagen.",
		SuccessKeyTranslationUpdated: "Vertaling succesvol bijgewerkt.",
		SuccessKeyTranslationDeleted: "Vertaling succesvol verwijderd.",
		SuccessKeyLocaleDeleted:      "Taal succesvol verwijderd",
		SuccessKeyLoggedOut:          "Succesvol uitgelogd.",
	},
}
