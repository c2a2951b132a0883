package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/circuitbreaker"
	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/i18n"
	"github.com/guttosm/translation-service/internal/middleware"
	"github.com/guttosm/translation-service/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// Validator is implemented by request bodies that check themselves.
type Validator interface {
	Validate() error
}

// BindAndValidate decodes the JSON body into T and validates it. On failure the error
// response has been written and ok is false: 400 for a malformed body, 422 for invalid fields.
func BindAndValidate[T any](c *gin.Context) (req *T, ok bool) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return nil, false
	}
	if validator, isValidator := any(&v).(Validator); isValidator {
		if err := validator.Validate(); err != nil {
			NewResponseBuilder(c).HandleError(err)
			return nil, false
		}
	}
	return &v, true
}

// ResponseBuilder writes the JSON envelopes of the API.
// Uses sync.Pool for DTO reuse to reduce allocations.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

func (b *ResponseBuilder) write(statusCode int, fill func(*dto.SuccessResponse)) {
	resp := getSuccessResponse()
	fill(resp)
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Gin serializes synchronously, so the response can go back to the pool right after.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// Success sends data in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.write(statusCode, func(r *dto.SuccessResponse) { r.Data = data })
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// SuccessMessage sends a translated message, with data when it is non-nil.
func (b *ResponseBuilder) SuccessMessage(statusCode int, messageKey string, data interface{}) {
	message := i18n.T(b.c, messageKey)
	b.write(statusCode, func(r *dto.SuccessResponse) {
		r.Message = message
		r.Data = data
	})
}

// SuccessWithMeta sends data with a meta object, e.g. an export's locale links.
func (b *ResponseBuilder) SuccessWithMeta(data, meta interface{}) {
	b.write(http.StatusOK, func(r *dto.SuccessResponse) {
		r.Data = data
		r.Meta = meta
	})
}

// Paginated sends one page of a listing with its meta and links.
func Paginated[T any](b *ResponseBuilder, page *service.Page[T]) {
	meta, links := pageMetaAndLinks(b.c.Request, page)
	items := page.Items
	if items == nil {
		items = []T{}
	}
	b.write(http.StatusOK, func(r *dto.SuccessResponse) {
		r.Data = items
		r.Meta = meta
		r.Links = links
	})
}

// Error sends an error response with the given status code and message key.
// Uses pooled ErrorResponse to reduce allocations.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, messageKey, nil, err)
}

// ErrorWithDetails is Error with per-field details.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, details map[string]string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.T(b.c, messageKey)
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Recorded for ErrorHandler to log.
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// HandleError maps a service error to its HTTP status:
// validation 422, not found 404, conflict 409, credentials and tokens 401,
// deadline 504, open circuit 503, anything else 500.
func (b *ResponseBuilder) HandleError(err error) {
	var (
		validationErr *service.ValidationError
		fieldErrs     dto.ValidationErrors
		notFoundErr   *service.NotFoundError
		conflictErr   *service.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		b.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyValidationFailed, validationErr.Fields, err)
	case errors.As(err, &fieldErrs):
		b.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyValidationFailed, fieldErrs, err)
	case errors.As(err, &notFoundErr):
		b.Error(http.StatusNotFound, notFoundMessageKey(err), err)
	case errors.As(err, &conflictErr):
		b.ErrorWithDetails(http.StatusConflict, i18n.ErrKeyConflict,
			map[string]string{conflictErr.Field: "The " + conflictErr.Field + " has already been taken."}, err)
	case errors.Is(err, service.ErrUserExists):
		b.ErrorWithDetails(http.StatusConflict, i18n.ErrKeyUserExists,
			map[string]string{"email": i18n.T(b.c, i18n.ErrKeyUserExists)}, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		b.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenBlacklisted):
		b.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidToken, err)
	case errors.Is(err, context.DeadlineExceeded):
		b.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func notFoundMessageKey(err error) string {
	switch {
	case errors.Is(err, service.ErrNoLocales):
		return i18n.ErrKeyNoLocales
	case errors.Is(err, service.ErrLocaleNotFound):
		return i18n.ErrKeyLocaleNotFound
	case errors.Is(err, service.ErrTranslationNotFound):
		return i18n.ErrKeyTranslationNotFound
	default:
		return i18n.ErrKeyNotFound
	}
}

// pageMetaAndLinks builds the pagination meta and the absolute links of the neighbouring
// pages. Links keep the request's other query parameters.
func pageMetaAndLinks[T any](r *http.Request, page *service.Page[T]) (dto.PageMeta, *dto.PageLinks) {
	meta := dto.PageMeta{
		CurrentPage: page.Page,
		LastPage:    page.LastPage(),
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
	if from := page.From(); from > 0 {
		to := page.To()
		meta.From, meta.To = &from, &to
	}

	links := &dto.PageLinks{
		First: pageURL(r, 1),
		Last:  pageURL(r, meta.LastPage),
	}
	if page.Page > 1 {
		prev := pageURL(r, min(page.Page-1, meta.LastPage))
		links.Prev = &prev
	}
	if page.Page < meta.LastPage {
		next := pageURL(r, page.Page+1)
		links.Next = &next
	}
	return meta, links
}

func pageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u := url.URL{Scheme: requestScheme(r), Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}

// requestURL is the absolute URL of r without its query.
func requestURL(r *http.Request) string {
	u := url.URL{Scheme: requestScheme(r), Host: r.Host, Path: r.URL.Path}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
