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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/asgardeo/conduit/internal/schema"
	sysconst "github.com/asgardeo/conduit/internal/system/constants"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
)

const managerLoggerComponentName = "AuthSessionManager"

// Options configures token handling of a Manager.
type Options struct {
	// RefreshTimeout bounds a single token refresh.
	RefreshTimeout time.Duration
	// ExpiryLeeway treats tokens as expired this long before their expiry.
	ExpiryLeeway time.Duration
	// DefaultTokenValidity is assumed for tokens issued or supplied without an expiry.
	DefaultTokenValidity time.Duration
	// Now returns the current time.
	Now func() time.Time
}

// Manager obtains the credentials of one destination for its invocations.
type Manager struct {
	slug       string
	scheme     Scheme
	store      *TokenStore
	httpClient syshttp.HTTPClientInterface
	opts       Options
	logger     *log.Logger
}

// NewManager creates an authentication manager for the destination identified by slug.
func NewManager(slug string, scheme Scheme, store *TokenStore, httpClient syshttp.HTTPClientInterface,
	opts Options) *Manager {
	if scheme == nil {
		scheme = NoneScheme{}
	}
	if store == nil {
		store = NewTokenStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 10 * time.Second
	}
	if opts.DefaultTokenValidity <= 0 {
		opts.DefaultTokenValidity = time.Hour
	}
	return &Manager{
		slug:       slug,
		scheme:     scheme,
		store:      store,
		httpClient: httpClient,
		opts:       opts,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, managerLoggerComponentName),
			log.String("destination", slug)),
	}
}

// Scheme returns the authentication scheme of the manager.
func (m *Manager) Scheme() Scheme {
	return m.scheme
}

// ValidateSettings validates raw settings against the settings fields of the scheme.
func (m *Manager) ValidateSettings(settings map[string]interface{}) (schema.Payload, error) {
	return schema.ValidateValues(m.scheme.SettingsFields(), settings)
}

// Authorize prepares the session used to authenticate every call of one invocation.
// For OAuth2 the access token is obtained before any call is made.
func (m *Manager) Authorize(ctx context.Context, state State) (*Session, error) {
	session := &Session{scheme: m.scheme, state: state}

	switch s := m.scheme.(type) {
	case APIKeyScheme:
		key, _ := state.Settings.String(s.SettingName)
		if key == "" {
			return nil, integrationerror.NewAuthenticationError(integrationerror.CodeInvalidAuthentication,
				fmt.Sprintf("setting %q holding the API key is empty", s.SettingName), nil)
		}
	case OAuth2Scheme:
		token, err := m.AccessToken(ctx, state)
		if err != nil {
			return nil, err
		}
		session.token = token
		session.state.Credentials.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			session.state.Credentials.RefreshToken = token.RefreshToken
		}
	}
	return session, nil
}

// AccessToken returns a usable access token for the state. A cached token that has not
// expired is returned as is. A caller supplied token that has not expired is cached and
// returned. Otherwise the scheme refreshes the token, bounded by the refresh timeout.
func (m *Manager) AccessToken(ctx context.Context, state State) (*Token, error) {
	oauth, ok := m.scheme.(OAuth2Scheme)
	if !ok {
		return nil, integrationerror.NewConfigurationError(integrationerror.CodeInvalidDefinition,
			fmt.Sprintf("destination %s does not use OAuth2", m.slug))
	}

	key := m.SessionKey(state)
	valid := func(t *Token) bool { return t.ValidAt(m.opts.Now(), m.opts.ExpiryLeeway) }

	if cached := m.store.Load(key); valid(cached) {
		return cached, nil
	}

	if supplied := m.suppliedToken(state.Credentials); valid(supplied) {
		m.store.Store(key, supplied)
		return supplied, nil
	}

	if oauth.Refresh == nil {
		return nil, integrationerror.NewAuthenticationError(integrationerror.CodeInvalidAuthentication,
			"no valid access token and the destination cannot refresh one", nil)
	}

	token, err := m.store.GetOrRefresh(ctx, key, valid, func() (*Token, error) {
		return m.refresh(ctx, oauth, state)
	})
	if err != nil {
		if ie, isIntegration := integrationerror.As(err); isIntegration {
			return nil, ie
		}
		m.logger.Debug("Access token refresh failed", log.Error(err))
		return nil, integrationerror.NewAuthenticationError(integrationerror.CodeRefreshFailed,
			"failed to refresh the access token", err)
	}
	if dropped := m.store.Prune(m.opts.Now()); dropped > 0 {
		m.logger.Debug("Dropped expired access tokens", log.Int("count", dropped))
	}
	return token, nil
}

// refresh runs the refresh function of the scheme bounded by the refresh timeout. It is
// detached from the cancellation of the triggering invocation; other invocations may share the result.
func (m *Manager) refresh(ctx context.Context, oauth OAuth2Scheme, state State) (*Token, error) {
	refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.opts.RefreshTimeout)
	defer cancel()

	m.logger.Debug("Refreshing access token")
	resp, err := oauth.Refresh(refreshCtx, m.httpClient, state)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("token refresh returned no access token")
	}
	m.logger.Debug("Access token refreshed", log.String("accessToken", log.MaskString(resp.AccessToken)))

	validity := m.opts.DefaultTokenValidity
	if resp.ExpiresIn > 0 {
		validity = time.Duration(resp.ExpiresIn) * time.Second
	}
	refreshToken := resp.RefreshToken
	if refreshToken == "" {
		refreshToken = state.Credentials.RefreshToken
	}
	return &Token{
		AccessToken:  resp.AccessToken,
		RefreshToken: refreshToken,
		TokenType:    resp.TokenType,
		Scope:        resp.Scope,
		ExpiresAt:    m.opts.Now().Add(validity),
	}, nil
}

// suppliedToken converts caller supplied credentials into a token, or nil.
func (m *Manager) suppliedToken(creds Credentials) *Token {
	if creds.AccessToken == "" {
		return nil
	}
	expiresAt := creds.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = m.opts.Now().Add(m.opts.DefaultTokenValidity)
	}
	return &Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

// SessionKey identifies the token cache entry of the state: the destination, the client
// credentials and refresh token, and the settings.
func (m *Manager) SessionKey(state State) string {
	settings, err := json.Marshal(state.Settings)
	if err != nil {
		settings = []byte(fmt.Sprintf("%v", state.Settings))
	}
	sum := sha256.New()
	for _, part := range [][]byte{
		[]byte(m.slug), []byte(state.Credentials.ClientID), []byte(state.Credentials.ClientSecret),
		[]byte(state.Credentials.RefreshToken), settings,
	} {
		sum.Write(part)
		sum.Write([]byte{0})
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// Session carries the credentials of one invocation.
type Session struct {
	scheme Scheme
	state  State
	token  *Token
}

// State returns the authentication state, including the access token in use.
func (s *Session) State() State {
	return s.state
}

// Token returns the OAuth2 token of the session, or nil.
func (s *Session) Token() *Token {
	return s.token
}

// Apply attaches the credentials of the scheme to the request.
func (s *Session) Apply(req *http.Request) error {
	switch scheme := s.scheme.(type) {
	case APIKeyScheme:
		key, _ := s.state.Settings.String(scheme.SettingName)
		if scheme.In == KeyInQuery {
			query := req.URL.Query()
			query.Set(scheme.Name, key)
			req.URL.RawQuery = query.Encode()
		} else {
			req.Header.Set(scheme.Name, scheme.Prefix+key)
		}
	case OAuth2Scheme:
		if s.token != nil {
			req.Header.Set(sysconst.AuthorizationHeaderName, sysconst.TokenTypeBearer+" "+s.token.AccessToken)
		}
	case CustomScheme:
		if scheme.ExtendRequest != nil {
			ApplyExtension(req, scheme.ExtendRequest(s.state))
		}
	}
	return nil
}

// ApplyExtension sets the headers and query parameters of the extension on the request.
func ApplyExtension(req *http.Request, ext RequestExtension) {
	for name, value := range ext.Headers {
		req.Header.Set(name, value)
	}
	if len(ext.SearchParams) == 0 {
		return
	}
	query := req.URL.Query()
	for name, value := range ext.SearchParams {
		query.Set(name, value)
	}
	req.URL.RawQuery = query.Encode()
}
