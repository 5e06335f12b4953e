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
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Token is a cached OAuth2 access token.
type Token struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresAt    time.Time
}

// ValidAt reports whether the token can still be used at the given time, treating it as
// expired leeway before its expiry.
func (t *Token) ValidAt(now time.Time, leeway time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || now.Add(leeway).Before(t.ExpiresAt)
}

// TokenStore caches access tokens per session key. Reads of a cached token never lock;
// concurrent refreshes of the same key are coalesced into one.
type TokenStore struct {
	holders sync.Map
	group   singleflight.Group
}

type tokenHolder struct {
	token atomic.Pointer[Token]
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Load returns the cached token of the key, or nil.
func (s *TokenStore) Load(key string) *Token {
	h, ok := s.holders.Load(key)
	if !ok {
		return nil
	}
	return h.(*tokenHolder).token.Load()
}

// Store replaces the cached token of the key.
func (s *TokenStore) Store(key string, token *Token) {
	h, _ := s.holders.LoadOrStore(key, &tokenHolder{})
	h.(*tokenHolder).token.Store(token)
}

// Prune drops every cached token that has expired at now and reports how many were dropped.
func (s *TokenStore) Prune(now time.Time) int {
	dropped := 0
	s.holders.Range(func(key, value interface{}) bool {
		token := value.(*tokenHolder).token.Load()
		if token == nil || (!token.ExpiresAt.IsZero() && !now.Before(token.ExpiresAt)) {
			s.holders.CompareAndDelete(key, value)
			dropped++
		}
		return true
	})
	return dropped
}

// GetOrRefresh returns the cached token of the key when valid reports it usable.
// Otherwise it runs refresh, shared with every concurrent caller of the same key, and
// caches the result. A caller whose context ends stops waiting without cancelling the
// shared refresh.
func (s *TokenStore) GetOrRefresh(ctx context.Context, key string, valid func(*Token) bool,
	refresh func() (*Token, error)) (*Token, error) {
	if token := s.Load(key); valid(token) {
		return token, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		if token := s.Load(key); valid(token) {
			return token, nil
		}
		token, err := refresh()
		if err != nil {
			return nil, err
		}
		if token == nil {
			return nil, errors.New("refresh returned no token")
		}
		s.Store(key, token)
		return token, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Token), nil
	}
}
