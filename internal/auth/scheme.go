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

// Package auth manages the credentials attached to outgoing destination calls.
package auth

import (
	"context"
	"time"

	"github.com/asgardeo/conduit/internal/schema"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
)

// SchemeType identifies an authentication scheme.
type SchemeType string

const (
	// SchemeTypeNone attaches nothing.
	SchemeTypeNone SchemeType = "none"
	// SchemeTypeAPIKey attaches a static key from the settings.
	SchemeTypeAPIKey SchemeType = "api_key"
	// SchemeTypeOAuth2 attaches a bearer token, refreshing it when needed.
	SchemeTypeOAuth2 SchemeType = "oauth2"
	// SchemeTypeCustom attaches the headers and query parameters returned by the scheme.
	SchemeTypeCustom SchemeType = "custom"
)

// Scheme is the authentication scheme of a destination.
type Scheme interface {
	// Type returns the scheme type.
	Type() SchemeType
	// SettingsFields returns the settings the scheme requires.
	SettingsFields() []schema.FieldSpec
}

// Credentials are the caller supplied OAuth2 credentials of an invocation.
type Credentials struct {
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ClientID     string    `json:"clientId,omitempty"`
	ClientSecret string    `json:"clientSecret,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// State is the authentication input of a single invocation.
type State struct {
	Settings    schema.Payload
	Credentials Credentials
}

// RequestExtension holds headers and query parameters applied to every outgoing call.
type RequestExtension struct {
	Headers      map[string]string
	SearchParams map[string]string
}

// ExtendRequestFunc derives a request extension from the authentication state.
type ExtendRequestFunc func(state State) RequestExtension

// RefreshFunc obtains a new access token from the token endpoint of a destination.
type RefreshFunc func(ctx context.Context, client syshttp.HTTPClientInterface, state State) (*TokenResponse, error)

// KeyLocation is where an API key is placed on the request.
type KeyLocation string

const (
	// KeyInHeader places the key in a request header.
	KeyInHeader KeyLocation = "header"
	// KeyInQuery places the key in a query parameter.
	KeyInQuery KeyLocation = "query"
)

// NoneScheme is the scheme of destinations that need no credentials.
type NoneScheme struct {
	Fields []schema.FieldSpec
}

// APIKeyScheme injects the value of a setting into a header or a query parameter.
type APIKeyScheme struct {
	Fields []schema.FieldSpec
	// SettingName is the setting holding the key.
	SettingName string
	In          KeyLocation
	// Name is the header or query parameter name.
	Name string
	// Prefix is prepended to the key, for example "Bearer ".
	Prefix string
}

// OAuth2Scheme attaches a bearer access token obtained through Refresh.
type OAuth2Scheme struct {
	Fields  []schema.FieldSpec
	Refresh RefreshFunc
}

// CustomScheme applies the extension returned by ExtendRequest to every call.
type CustomScheme struct {
	Fields        []schema.FieldSpec
	ExtendRequest ExtendRequestFunc
}

// Type implements Scheme.
func (s NoneScheme) Type() SchemeType { return SchemeTypeNone }

// SettingsFields implements Scheme.
func (s NoneScheme) SettingsFields() []schema.FieldSpec { return s.Fields }

// Type implements Scheme.
func (s APIKeyScheme) Type() SchemeType { return SchemeTypeAPIKey }

// SettingsFields implements Scheme.
func (s APIKeyScheme) SettingsFields() []schema.FieldSpec { return s.Fields }

// Type implements Scheme.
func (s OAuth2Scheme) Type() SchemeType { return SchemeTypeOAuth2 }

// SettingsFields implements Scheme.
func (s OAuth2Scheme) SettingsFields() []schema.FieldSpec { return s.Fields }

// Type implements Scheme.
func (s CustomScheme) Type() SchemeType { return SchemeTypeCustom }

// SettingsFields implements Scheme.
func (s CustomScheme) SettingsFields() []schema.FieldSpec { return s.Fields }
