package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyValidationFailed   = "error.validation_failed"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials covers both an unknown email and a wrong password.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyUserExists         = "error.user_exists"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyRefreshRequired    = "error.refresh_token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.service_unavailable"

	ErrKeyLocaleNotFound      = "error.locale_not_found"
	ErrKeyTranslationNotFound = "error.translation_not_found"
	ErrKeyNoLocales           = "error.no_locales"
	ErrKeyExportFailed        = "error.export_failed"
)

// Success message translation keys.
const (
	SuccessKeyTranslationSaved   = "success.translation_saved"
	SuccessKeyTranslationUpdated = "success.translation_updated"
	SuccessKeyTranslationDeleted = "success.translation_deleted"
	SuccessKeyLocaleDeleted      = "success.locale_deleted"
	SuccessKeyLoggedOut          = "success.logged_out"
)
