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

// Package criteoaudiences adds users to and removes users from Criteo audiences.
package criteoaudiences

import (
	"context"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/schema"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
)

const (
	// ID is the catalog identifier of the destination.
	ID = "6238cec53a46dd187d094eb7"
	// Path is the catalog path of the destination.
	Path = "destinations/criteo-audiences"

	tokenURL   = "https://api.criteo.com/oauth2/token"
	apiBaseURL = "https://api.criteo.com/2023-01"

	settingAdvertiserID = "advertiser_id"
)

// Definition returns the Criteo Audiences destination.
func Definition() *destination.Definition {
	return &destination.Definition{
		Name:        "Criteo Audiences",
		Slug:        "criteo-managing-audiences",
		Description: "Add/remove users to/from Criteo Audiences using Criteo API",
		Mode:        destination.ModeCloud,
		Authentication: auth.OAuth2Scheme{
			Fields: []schema.FieldSpec{
				{
					Name:        settingAdvertiserID,
					Label:       "Advertiser ID",
					Description: "Your Criteo Advertiser ID",
					Type:        schema.TypeString,
					Required:    true,
				},
			},
			Refresh: refreshAccessToken,
		},
		Actions: actionSet{},
	}
}

// Load is the catalog loader of the destination.
func Load() (*destination.Definition, error) {
	return Definition(), nil
}

// refreshAccessToken obtains a token with the client credentials grant. A known refresh
// token is sent along with the client credentials.
func refreshAccessToken(ctx context.Context, client syshttp.HTTPClientInterface,
	state auth.State) (*auth.TokenResponse, error) {
	form := auth.ClientCredentialsForm(state.Credentials.ClientID, state.Credentials.ClientSecret, "")
	if state.Credentials.RefreshToken != "" {
		form.Set(auth.ParamRefreshToken, state.Credentials.RefreshToken)
	}
	return auth.RequestToken(ctx, client, tokenURL, form)
}

type actionSet struct{}

func (actionSet) Names() []string {
	return []string{"addUserToAudience", "removeUserFromAudience"}
}

func (actionSet) Get(name string) (*action.Definition, bool) {
	switch name {
	case "addUserToAudience":
		return audienceAction(name, "Add users to Audience", operationAdd,
			`type = "track" and event = "Audience Entered"`), true
	case "removeUserFromAudience":
		return audienceAction(name, "Remove users from Audience", operationRemove,
			`type = "track" and event = "Audience Exited"`), true
	}
	return nil, false
}
