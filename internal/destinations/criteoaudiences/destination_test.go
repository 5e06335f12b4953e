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

package criteoaudiences

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	"github.com/asgardeo/conduit/tests/mocks/httpmock"
)

type call struct {
	method string
	url    string
	auth   string
	body   string
}

type CriteoAudiencesTestSuite struct {
	suite.Suite
	mu          sync.Mutex
	calls       []call
	audiences   string
	tokenStatus int
	dest        *destination.Destination
}

func TestCriteoAudiencesSuite(t *testing.T) {
	suite.Run(t, new(CriteoAudiencesTestSuite))
}

func (suite *CriteoAudiencesTestSuite) SetupTest() {
	suite.calls = nil
	suite.audiences = `{"data":[{"id":"aud-1","type":"Audience","attributes":{"name":"returning_buyers"}}]}`
	suite.tokenStatus = http.StatusOK

	client := httpmock.NewHTTPClientInterfaceMock(suite.T())
	client.EXPECT().Do(mock.Anything).RunAndReturn(suite.serve).Maybe()

	registry, err := destination.NewRegistry(nil, map[string]destination.Loader{"criteo-audiences": Load},
		destination.RegistryOptions{HTTPClient: client})
	suite.Require().NoError(err)
	def, ok := registry.ResolveByPathKey("criteo-audiences")
	suite.Require().True(ok)
	suite.dest = registry.Destination(def)
}

func (suite *CriteoAudiencesTestSuite) serve(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	suite.mu.Lock()
	suite.calls = append(suite.calls, call{
		method: req.Method,
		url:    req.URL.String(),
		auth:   req.Header.Get("Authorization"),
		body:   string(body),
	})
	suite.mu.Unlock()

	status, content := http.StatusOK, `{}`
	switch {
	case req.URL.Path == "/oauth2/token":
		status = suite.tokenStatus
		content = `{"access_token":"criteo-token","token_type":"Bearer","expires_in":900}`
	case req.Method == http.MethodGet && req.URL.Path == "/2023-01/audiences":
		content = suite.audiences
	case req.Method == http.MethodPost && req.URL.Path == "/2023-01/audiences":
		content = `{"data":{"id":"aud-new","type":"Audience"}}`
	case req.Method == http.MethodPatch:
		content = `{"data":{"type":"ContactlistAmendment","attributes":{"nbValidIdentifiers":1}}}`
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(content)),
	}, nil
}

func (suite *CriteoAudiencesTestSuite) invoke(actionKey, audienceKey string,
	creds *auth.Credentials) (*action.InvocationResult, error) {
	if creds == nil {
		creds = &auth.Credentials{ClientID: "client", ClientSecret: "secret"}
	}
	return suite.dest.Invoke(context.Background(), destination.InvokeRequest{
		Event: map[string]interface{}{
			"type":       "track",
			"event":      "Audience Entered",
			"properties": map[string]interface{}{"audience_key": audienceKey},
			"context": map[string]interface{}{
				"traits": map[string]interface{}{"email": " Jane@Example.com "},
			},
		},
		Action:             actionKey,
		Settings:           map[string]interface{}{"advertiser_id": "adv-42"},
		Auth:               creds,
		UseDefaultMappings: true,
	})
}

func (suite *CriteoAudiencesTestSuite) golden(name, body string) {
	g := goldie.New(suite.T(), goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(suite.T(), name, []byte(body))
}

func (suite *CriteoAudiencesTestSuite) TestDefinitionIsWellFormed() {
	suite.NoError(destination.CheckDefinition(Definition()))
}

func (suite *CriteoAudiencesTestSuite) TestAddUserToExistingAudience() {
	result, err := suite.invoke("addUserToAudience", "returning_buyers", nil)
	suite.Require().NoError(err)
	suite.Require().Len(result.Responses, 2)

	suite.Require().Len(suite.calls, 3)
	token := suite.calls[0]
	suite.Equal(tokenURL, token.url)
	suite.Contains(token.body, "grant_type=client_credentials")
	suite.Contains(token.body, "client_id=client")
	suite.NotContains(token.body, "refresh_token")

	suite.Equal(http.MethodGet, suite.calls[1].method)
	suite.Equal("https://api.criteo.com/2023-01/audiences?advertiser-id=adv-42", suite.calls[1].url)
	suite.Equal("Bearer criteo-token", suite.calls[1].auth)

	patch := suite.calls[2]
	suite.Equal(http.MethodPatch, patch.method)
	suite.Equal("https://api.criteo.com/2023-01/audiences/aud-1/contactlist", patch.url)
	suite.Equal("Bearer criteo-token", patch.auth)
	suite.golden("add_user", patch.body)
}

func (suite *CriteoAudiencesTestSuite) TestAddUserCreatesMissingAudience() {
	result, err := suite.invoke("addUserToAudience", "new_segment", nil)
	suite.Require().NoError(err)
	suite.Require().Len(result.Responses, 3)

	suite.Equal(http.MethodPost, result.Responses[1].Request.Method)
	suite.golden("create_audience", result.Responses[1].Request.Body)
	suite.Equal("https://api.criteo.com/2023-01/audiences/aud-new/contactlist", result.Responses[2].Request.URL)
}

func (suite *CriteoAudiencesTestSuite) TestRemoveUserFromMissingAudienceOnlyLooksUp() {
	result, err := suite.invoke("removeUserFromAudience", "unknown", nil)
	suite.Require().NoError(err)
	suite.Require().Len(result.Responses, 1)
	suite.Equal(http.MethodGet, result.Responses[0].Request.Method)
}

func (suite *CriteoAudiencesTestSuite) TestRemoveUser() {
	result, err := suite.invoke("removeUserFromAudience", "returning_buyers", nil)
	suite.Require().NoError(err)
	suite.Require().Len(result.Responses, 2)
	suite.golden("remove_user", result.Responses[1].Request.Body)
}

func (suite *CriteoAudiencesTestSuite) TestRefreshSendsKnownRefreshToken() {
	_, err := suite.invoke("addUserToAudience", "returning_buyers",
		&auth.Credentials{ClientID: "client", ClientSecret: "secret", RefreshToken: "rt-1"})
	suite.Require().NoError(err)

	suite.Require().NotEmpty(suite.calls)
	token := suite.calls[0]
	suite.Equal(tokenURL, token.url)
	suite.Contains(token.body, "grant_type=client_credentials")
	suite.Contains(token.body, "refresh_token=rt-1")
}

func (suite *CriteoAudiencesTestSuite) TestSuppliedAccessTokenSkipsRefresh() {
	_, err := suite.invoke("addUserToAudience", "returning_buyers", &auth.Credentials{AccessToken: "given"})
	suite.Require().NoError(err)
	suite.Require().Len(suite.calls, 2)
	suite.Equal("Bearer given", suite.calls[0].auth)
}

func (suite *CriteoAudiencesTestSuite) TestRefreshFailureMakesNoActionCall() {
	suite.tokenStatus = http.StatusUnauthorized

	result, err := suite.invoke("addUserToAudience", "returning_buyers", nil)
	suite.Require().Error(err)
	suite.True(integrationerror.IsKind(err, integrationerror.KindAuthentication))
	suite.Empty(result.Responses)
	suite.Require().Len(suite.calls, 1)
	suite.Equal(tokenURL, suite.calls[0].url)
}

func (suite *CriteoAudiencesTestSuite) TestMalformedAudienceListIsATransportError() {
	suite.audiences = `{"data":"nope"}`

	result, err := suite.invoke("addUserToAudience", "returning_buyers", nil)
	suite.Require().Error(err)
	suite.True(integrationerror.IsKind(err, integrationerror.KindTransport))
	suite.Len(result.Responses, 1)
}
