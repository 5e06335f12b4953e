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

package healthcheck

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/conduit/internal/system/constants"
)

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }

type HealthCheckTestSuite struct {
	suite.Suite
	journalErr error
	mux        *http.ServeMux
}

func TestHealthCheckSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func (suite *HealthCheckTestSuite) SetupTest() {
	suite.journalErr = nil
	suite.mux = http.NewServeMux()
	Initialize(suite.mux, map[string]Pinger{
		"DeliveryJournal": pingerFunc(func() error { return suite.journalErr }),
	})
}

func (suite *HealthCheckTestSuite) serve(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	suite.mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func (suite *HealthCheckTestSuite) TestLiveness() {
	rec := suite.serve(http.MethodGet, "/health/liveness")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *HealthCheckTestSuite) TestReadinessUp() {
	rec := suite.serve(http.MethodGet, "/health/readiness")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), constants.ContentTypeJSON, rec.Header().Get(constants.ContentTypeHeaderName))
	var status ServerStatus
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(suite.T(), StatusUp, status.Status)
	assert.Equal(suite.T(), []ServiceStatus{{ServiceName: "DeliveryJournal", Status: StatusUp}},
		status.ServiceStatus)
}

func (suite *HealthCheckTestSuite) TestReadinessDown() {
	suite.journalErr = errors.New("connection refused")

	rec := suite.serve(http.MethodGet, "/health/readiness")

	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	var status ServerStatus
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(suite.T(), StatusDown, status.Status)
	assert.Equal(suite.T(), StatusDown, status.ServiceStatus[0].Status)
}

func (suite *HealthCheckTestSuite) TestPreflight() {
	rec := suite.serve(http.MethodOptions, "/health/readiness")
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
}

func TestReadinessWithoutDependencies(t *testing.T) {
	status := newHealthCheckService(nil).CheckReadiness()
	assert.Equal(t, StatusUp, status.Status)
	assert.Empty(t, status.ServiceStatus)
}
