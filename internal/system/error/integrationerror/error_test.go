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

package integrationerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type IntegrationErrorTestSuite struct {
	suite.Suite
}

func TestIntegrationErrorSuite(t *testing.T) {
	suite.Run(t, new(IntegrationErrorTestSuite))
}

func (suite *IntegrationErrorTestSuite) TestConstructorsSetKindAndStatus() {
	testCases := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
	}{
		{"Configuration", NewConfigurationError(CodeInvalidDefinition, "bad"), KindConfiguration,
			http.StatusInternalServerError},
		{"Validation", NewValidationError(CodePayloadValidation, "bad"), KindValidation, http.StatusBadRequest},
		{"Authentication", NewAuthenticationError(CodeRefreshFailed, "bad", nil), KindAuthentication,
			http.StatusUnauthorized},
		{"Transport", NewTransportError(CodeResponseError, http.StatusBadGateway, "bad", nil), KindTransport,
			http.StatusBadGateway},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.status, tc.err.Status)
			assert.True(t, IsKind(tc.err, tc.kind))
		})
	}
}

func (suite *IntegrationErrorTestSuite) TestErrorsAsThroughWrapping() {
	cause := errors.New("connection reset")
	err := fmt.Errorf("invoke: %w", NewTransportError(CodeRequestFailed, 0, "request failed", cause))

	ie, ok := As(err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), KindTransport, ie.Kind)
	assert.ErrorIs(suite.T(), err, cause)
	assert.False(suite.T(), IsKind(err, KindValidation))
}

func (suite *IntegrationErrorTestSuite) TestIsKindPlainError() {
	assert.False(suite.T(), IsKind(errors.New("plain"), KindTransport))
	assert.False(suite.T(), IsKind(nil, KindTransport))
}

func (suite *IntegrationErrorTestSuite) TestFieldValidationErrorMessage() {
	err := NewFieldValidationError(CodePayloadValidation, []FieldError{
		{Field: "name", Message: "missing required field"},
		{Field: "value", Message: "expected number but got string"},
	})

	assert.Equal(suite.T(), "name: missing required field; value: expected number but got string", err.Message)
	assert.Len(suite.T(), err.Fields, 2)
	assert.Contains(suite.T(), err.Error(), "validation error [PAYLOAD_VALIDATION_FAILED]")
}

func (suite *IntegrationErrorTestSuite) TestWithPartial() {
	partial := []string{"first"}
	err := NewTransportError(CodeResponseError, http.StatusInternalServerError, "failed", nil).WithPartial(partial)

	assert.Equal(suite.T(), partial, err.Partial)
}
