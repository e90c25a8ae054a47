package i18n

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents an HTTP status code
type ErrorCode int

const (
	ErrorMultiStatus    ErrorCode = http.StatusMultiStatus
	ErrorBadRequest     ErrorCode = http.StatusBadRequest
	ErrorUnauthorized   ErrorCode = http.StatusUnauthorized
	ErrorForbidden      ErrorCode = http.StatusForbidden
	ErrorNotFound       ErrorCode = http.StatusNotFound
	ErrorConflict       ErrorCode = http.StatusConflict
	ErrorInternalServer ErrorCode = http.StatusInternalServerError
)

// I18nError represents an internationalized error
type I18nError struct {
	// MessageID is the key used for translation lookup
	MessageID string
	// DefaultMessage is used when translation is not available
	DefaultMessage string
	// Data holds template parameters for the message
	Data map[string]interface{}
}

// New creates a new I18nError with the given message ID
func New(messageID string) *I18nError {
	return NewWithMessage(messageID, messageID)
}

// NewWithMessage creates a new I18nError with a message ID and default message
func NewWithMessage(messageID, defaultMessage string) *I18nError {
	return &I18nError{
		MessageID:      messageID,
		DefaultMessage: defaultMessage,
		Data:           map[string]interface{}{},
	}
}

// Error renders the message in the default language
func (e *I18nError) Error() string {
	if t := GetTranslator(); t != nil {
		if translated := t.Translate(e.MessageID, defaultLang, e.Data); translated != e.MessageID {
			return translated
		}
	}
	return e.fallback()
}

func (e *I18nError) fallback() string {
	msg := e.DefaultMessage
	for k, v := range e.Data {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{{.%s}}", k), fmt.Sprintf("%v", v))
	}
	return msg
}

// TranslateByContext translates the error based on the context's language preference
func (e *I18nError) TranslateByContext(c *gin.Context) string {
	if t := GetTranslator(); t != nil {
		if translated := t.Translate(e.MessageID, langFromContext(c), e.Data); translated != e.MessageID {
			return translated
		}
	}
	return e.fallback()
}

// ErrorWithCode is an error with the HTTP status it maps to
type ErrorWithCode struct {
	*I18nError
	Code ErrorCode
}

// NewErrorWithCode creates a new error with a code
func NewErrorWithCode(messageID string, code ErrorCode) *ErrorWithCode {
	return &ErrorWithCode{I18nError: New(messageID), Code: code}
}

// NewErrorWithCodeMessage creates a coded error with an English fallback message
func NewErrorWithCodeMessage(messageID, defaultMessage string, code ErrorCode) *ErrorWithCode {
	return &ErrorWithCode{I18nError: NewWithMessage(messageID, defaultMessage), Code: code}
}

// WithParam returns a copy of the error carrying an extra template parameter.
// Predefined errors are shared, so they are never mutated.
func (e *ErrorWithCode) WithParam(key string, value interface{}) *ErrorWithCode {
	data := maps.Clone(e.Data)
	if data == nil {
		data = map[string]interface{}{}
	}
	data[key] = value
	return &ErrorWithCode{
		I18nError: &I18nError{MessageID: e.MessageID, DefaultMessage: e.DefaultMessage, Data: data},
		Code:      e.Code,
	}
}

// Is matches coded errors by message ID so that parameterized copies
// still match their predefined origin
func (e *ErrorWithCode) Is(target error) bool {
	var t *ErrorWithCode
	if !errors.As(target, &t) {
		return false
	}
	return t.MessageID == e.MessageID
}

// GetCode returns the error code
func (e *ErrorWithCode) GetCode() ErrorCode {
	return e.Code
}

// TranslateError translates an error using the context's language preference.
// Errors that carry no message ID are reported as a generic internal error.
func TranslateError(c *gin.Context, err error) string {
	if err == nil {
		return ""
	}

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		return errWithCode.TranslateByContext(c)
	}

	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.TranslateByContext(c)
	}

	return ErrInternalServer.TranslateByContext(c)
}
