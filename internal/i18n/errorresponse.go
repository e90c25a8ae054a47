package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is a builder for error responses
type ErrorResponse struct {
	err *ErrorWithCode
}

// Error starts a response from a predefined error
func Error(err *ErrorWithCode) *ErrorResponse {
	return &ErrorResponse{err: err}
}

// BadRequest creates a 400 response for an ad-hoc message ID
func BadRequest(msgID string) *ErrorResponse {
	return Error(NewErrorWithCode(msgID, ErrorBadRequest))
}

// NotFound creates a 404 response for an ad-hoc message ID
func NotFound(msgID string) *ErrorResponse {
	return Error(NewErrorWithCode(msgID, ErrorNotFound))
}

// WithParam adds a template parameter
func (r *ErrorResponse) WithParam(key string, value interface{}) *ErrorResponse {
	r.err = r.err.WithParam(key, value)
	return r
}

// WithParams adds several template parameters
func (r *ErrorResponse) WithParams(params map[string]interface{}) *ErrorResponse {
	for k, v := range params {
		r.err = r.err.WithParam(k, v)
	}
	return r
}

// Err returns the built error
func (r *ErrorResponse) Err() *ErrorWithCode {
	return r.err
}

// Send writes the response and aborts the chain
func (r *ErrorResponse) Send(c *gin.Context) {
	RespondWithError(c, r.err)
}

// SuccessResponse is a builder for success responses
type SuccessResponse struct {
	code    int
	msgID   string
	payload gin.H
}

// Success creates a 200 response
func Success() *SuccessResponse {
	return &SuccessResponse{code: http.StatusOK, payload: gin.H{}}
}

// Created creates a 201 response
func Created() *SuccessResponse {
	return &SuccessResponse{code: http.StatusCreated, payload: gin.H{}}
}

// Message sets the translated message
func (r *SuccessResponse) Message(msgID string) *SuccessResponse {
	r.msgID = msgID
	return r
}

// With adds a payload field
func (r *SuccessResponse) With(key string, value interface{}) *SuccessResponse {
	r.payload[key] = value
	return r
}

// Send writes the response
func (r *SuccessResponse) Send(c *gin.Context) {
	RespondWithSuccess(c, r.code, r.msgID, r.payload)
}
