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

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sysconst "github.com/asgardeo/conduit/internal/system/constants"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
)

// OAuth2 token request parameters.
const (
	ParamGrantType    = "grant_type"
	ParamClientID     = "client_id"
	ParamClientSecret = "client_secret"
	ParamRefreshToken = "refresh_token"
	ParamScope        = "scope"

	GrantTypeClientCredentials = "client_credentials"
)

// maxErrorBodyBytes bounds how much of an error response is kept for diagnostics.
const maxErrorBodyBytes = 4096

// TokenResponse represents the token endpoint response body.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ClientCredentialsForm builds the form of a client credentials grant.
func ClientCredentialsForm(clientID, clientSecret, scope string) url.Values {
	form := url.Values{}
	form.Set(ParamGrantType, GrantTypeClientCredentials)
	form.Set(ParamClientID, clientID)
	form.Set(ParamClientSecret, clientSecret)
	if scope != "" {
		form.Set(ParamScope, scope)
	}
	return form
}

// RequestToken posts the form to the token endpoint and decodes the token response.
func RequestToken(ctx context.Context, client syshttp.HTTPClientInterface, tokenURL string,
	form url.Values) (*TokenResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "OAuth2TokenClient"))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	httpReq.Header.Set(sysconst.ContentTypeHeaderName, sysconst.ContentTypeFormURLEncoded)
	httpReq.Header.Set(sysconst.AcceptHeaderName, sysconst.ContentTypeJSON)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close token response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Debug("Token endpoint returned an error response",
			log.Int("statusCode", resp.StatusCode), log.String("response", string(body)))
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response has no access token")
	}
	return &tokenResp, nil
}
