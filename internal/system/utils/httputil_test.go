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

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

type samplePayload struct {
	Action string                 `json:"action"`
	Event  map[string]interface{} `json:"event"`
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBody() {
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"action":"customEvent","event":{"value":12.5}}`))

	payload, err := DecodeJSONBody[samplePayload](req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "customEvent", payload.Action)
	assert.Equal(suite.T(), json.Number("12.5"), payload.Event["value"])
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBodyErrors() {
	testCases := []struct {
		name string
		body string
	}{
		{"Empty", ""},
		{"Malformed", `{"action":`},
		{"WrongType", `{"action": 5}`},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			payload, err := DecodeJSONBody[samplePayload](req)
			assert.Error(t, err)
			assert.Nil(t, payload)
		})
	}
}

func (suite *HTTPUtilTestSuite) TestWriteJSONResponse() {
	rr := httptest.NewRecorder()

	WriteJSONResponse(rr, http.StatusAccepted, map[string]string{"status": "ok"})

	assert.Equal(suite.T(), http.StatusAccepted, rr.Code)
	assert.Equal(suite.T(), "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(suite.T(), `{"status":"ok"}`, rr.Body.String())
}

func (suite *HTTPUtilTestSuite) TestParseURL() {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"HTTPS", "https://www.google-analytics.com/mp/collect", false},
		{"HTTP", "http://localhost:8080/push", false},
		{"Relative", "/mp/collect", true},
		{"UnsupportedScheme", "ftp://example.com/file", true},
		{"Invalid", "://bad", true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			u, err := ParseURL(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, u)
			}
		})
	}
}

func (suite *HTTPUtilTestSuite) TestAppendQueryParams() {
	u, err := url.Parse("https://example.com/collect?measurement_id=old&keep=1")
	assert.NoError(suite.T(), err)

	AppendQueryParams(u, url.Values{"measurement_id": {"G-123"}, "api_secret": {"s3cr3t"}})

	query := u.Query()
	assert.Equal(suite.T(), "G-123", query.Get("measurement_id"))
	assert.Equal(suite.T(), "s3cr3t", query.Get("api_secret"))
	assert.Equal(suite.T(), "1", query.Get("keep"))
}

func (suite *HTTPUtilTestSuite) TestGetAllowedOrigin() {
	allowed := []string{"https://localhost:3000", "https://console.example.com/"}

	assert.Equal(suite.T(), "https://localhost:3000", GetAllowedOrigin(allowed, "https://localhost:3000"))
	assert.Equal(suite.T(), "https://console.example.com/", GetAllowedOrigin(allowed, "https://console.example.com"))
	assert.Empty(suite.T(), GetAllowedOrigin(allowed, "https://localhost:3000.evil.com"))
	assert.Empty(suite.T(), GetAllowedOrigin(nil, "https://localhost:3000"))
}
