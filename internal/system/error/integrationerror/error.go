/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package integrationerror defines the typed errors raised while resolving and invoking destination actions.
package integrationerror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an integration error.
type Kind string

const (
	// KindConfiguration denotes an invalid destination definition or registry setup.
	KindConfiguration Kind = "configuration"
	// KindValidation denotes a payload or settings validation failure. No call was made.
	KindValidation Kind = "validation"
	// KindAuthentication denotes a failure to obtain credentials. No action call was made.
	KindAuthentication Kind = "authentication"
	// KindTransport denotes a failed or rejected outgoing call.
	KindTransport Kind = "transport"
)

// Common error codes.
const (
	CodeInvalidDefinition     = "INVALID_DEFINITION"
	CodeDuplicateDestination  = "DUPLICATE_DESTINATION"
	CodePayloadValidation     = "PAYLOAD_VALIDATION_FAILED"
	CodeSettingsValidation    = "SETTINGS_VALIDATION_FAILED"
	CodeInvalidMapping        = "INVALID_MAPPING"
	CodeActionNotFound        = "ACTION_NOT_FOUND"
	CodeInvalidAuthentication = "INVALID_AUTHENTICATION"
	CodeRefreshFailed         = "OAUTH_REFRESH_FAILED"
	CodeRequestFailed         = "REQUEST_FAILED"
	CodeResponseError         = "RESPONSE_ERROR"
	CodeRequestLimitExceeded  = "REQUEST_LIMIT_EXCEEDED"
	CodeRequestRefused        = "REQUEST_REFUSED"
)

// FieldError describes a single failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type returned by the destination runtime.
type Error struct {
	Kind    Kind
	Code    string
	Reason  string
	Message string
	Status  int
	Fields  []FieldError
	// Partial holds the *action.InvocationResult observed before a transport failure.
	Partial interface{}
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(" error")
	if e.Code != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Code)
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithPartial attaches the partial invocation result and returns the error.
func (e *Error) WithPartial(partial interface{}) *Error {
	e.Partial = partial
	return e
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(code, message string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Code:    code,
		Reason:  "Invalid configuration",
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewValidationError creates a validation error with an optional list of failing fields.
func NewValidationError(code, message string, fields ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    code,
		Reason:  "Validation failed",
		Message: message,
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

// NewFieldValidationError builds a validation error from a set of field errors.
func NewFieldValidationError(code string, fields []FieldError) *Error {
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f.Error())
	}
	return NewValidationError(code, strings.Join(messages, "; "), fields...)
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(code, message string, cause error) *Error {
	return &Error{
		Kind:    KindAuthentication,
		Code:    code,
		Reason:  "Authentication failed",
		Message: message,
		Status:  http.StatusUnauthorized,
		Cause:   cause,
	}
}

// NewTransportError creates a transport error. A zero status means no response was received.
func NewTransportError(code string, status int, message string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    code,
		Reason:  "Request failed",
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

// Error implements the error interface for a single field failure.
func (f FieldError) Error() string {
	if f.Field == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// As returns the first integration error in the chain of err.
func As(err error) (*Error, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsKind reports whether err carries an integration error of the given kind.
func IsKind(err error, kind Kind) bool {
	ie, ok := As(err)
	return ok && ie.Kind == kind
}
