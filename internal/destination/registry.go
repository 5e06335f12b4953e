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

// Package destination resolves registered destinations and invokes their actions.
package destination

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/schema"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
)

const registryLoggerComponentName = "DestinationRegistry"

// RegistryOptions configures a Registry and the destinations it builds.
type RegistryOptions struct {
	// Enabled restricts the registry to the listed ids or path keys. Empty enables all.
	Enabled    []string
	HTTPClient syshttp.HTTPClientInterface
	// TokenStore is shared by every destination of the registry.
	TokenStore *auth.TokenStore
	Auth       auth.Options
	Executor   action.ExecutorOptions
}

// Registry resolves destination definitions by id or path key. Entries are registered
// eagerly; loaders are consulted by path key for destinations that are not registered.
type Registry struct {
	byID       map[string]Entry
	byPathKey  map[string]Entry
	order      []string
	loaders    map[string]Loader
	loaded     sync.Map
	httpClient syshttp.HTTPClientInterface
	store      *auth.TokenStore
	authOpts   auth.Options
	executor   *action.Executor
	logger     *log.Logger
}

// NewRegistry registers the entries and loaders. Registering the same definition twice under
// an id is allowed; a different definition under a registered id, or an invalid definition,
// fails with a configuration error. Every problem is reported.
func NewRegistry(entries []Entry, loaders map[string]Loader, opts RegistryOptions) (*Registry, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, registryLoggerComponentName))

	enabled := make(map[string]struct{}, len(opts.Enabled))
	for _, id := range opts.Enabled {
		enabled[id] = struct{}{}
	}
	isEnabled := func(keys ...string) bool {
		if len(enabled) == 0 {
			return true
		}
		for _, k := range keys {
			if _, ok := enabled[k]; ok {
				return true
			}
		}
		return false
	}

	r := &Registry{
		byID:       make(map[string]Entry, len(entries)),
		byPathKey:  make(map[string]Entry, len(entries)),
		loaders:    make(map[string]Loader, len(loaders)),
		httpClient: opts.HTTPClient,
		store:      opts.TokenStore,
		authOpts:   opts.Auth,
		executor:   action.NewExecutor(opts.Executor),
		logger:     logger,
	}
	if r.httpClient == nil {
		r.httpClient = syshttp.GetHTTPClient()
	}
	if r.store == nil {
		r.store = auth.NewTokenStore()
	}

	var errs error
	for _, entry := range entries {
		if !isEnabled(entry.ID, entry.PathKey()) {
			logger.Debug("Skipping disabled destination", log.String(log.LoggerKeyDestinationID, entry.ID))
			continue
		}
		errs = multierr.Append(errs, r.register(entry))
	}
	for key, loader := range loaders {
		if loader == nil || !isEnabled(key) {
			continue
		}
		r.loaders[key] = loader
	}
	if errs != nil {
		return nil, errs
	}

	logger.Debug("Destination registry created", log.Int("registered", len(r.byID)),
		log.Int("loaders", len(r.loaders)))
	return r, nil
}

func (r *Registry) register(entry Entry) error {
	if entry.ID == "" {
		return integrationerror.NewConfigurationError(integrationerror.CodeInvalidDefinition,
			fmt.Sprintf("destination at %q has no id", entry.Path))
	}
	if existing, ok := r.byID[entry.ID]; ok {
		if existing.Definition == entry.Definition && existing.PathKey() == entry.PathKey() {
			return nil
		}
		return integrationerror.NewConfigurationError(integrationerror.CodeDuplicateDestination,
			fmt.Sprintf("destination %s is already registered with a different definition", entry.ID))
	}
	if err := CheckDefinition(entry.Definition); err != nil {
		return multierr.Append(integrationerror.NewConfigurationError(integrationerror.CodeInvalidDefinition,
			fmt.Sprintf("destination %s has an invalid definition", entry.ID)), err)
	}

	key := entry.PathKey()
	if key != "" {
		if other, ok := r.byPathKey[key]; ok {
			return integrationerror.NewConfigurationError(integrationerror.CodeDuplicateDestination,
				fmt.Sprintf("destinations %s and %s share the path key %q", other.ID, entry.ID, key))
		}
		r.byPathKey[key] = entry
	}
	r.byID[entry.ID] = entry
	r.order = append(r.order, entry.ID)
	return nil
}

// CheckDefinition verifies that a definition is complete: it has a name and at least one
// action, and every field list is well formed.
func CheckDefinition(def *Definition) error {
	if def == nil {
		return integrationerror.NewConfigurationError(integrationerror.CodeInvalidDefinition,
			"definition is missing")
	}

	var errs error
	if def.Name == "" {
		errs = multierr.Append(errs, integrationerror.NewConfigurationError(
			integrationerror.CodeInvalidDefinition, "definition has no name"))
	}
	if def.Actions == nil || len(def.Actions.Names()) == 0 {
		return multierr.Append(errs, integrationerror.NewConfigurationError(
			integrationerror.CodeInvalidDefinition, "definition has no actions"))
	}
	if def.Authentication != nil {
		if err := schema.CheckFields(def.Authentication.SettingsFields()); err != nil {
			errs = multierr.Append(errs, integrationerror.NewConfigurationError(
				integrationerror.CodeInvalidDefinition, "settings: "+err.Error()))
		}
	}

	for _, name := range def.Actions.Names() {
		a, ok := def.Actions.Get(name)
		switch {
		case !ok || a == nil:
			errs = multierr.Append(errs, integrationerror.NewConfigurationError(
				integrationerror.CodeInvalidDefinition, fmt.Sprintf("action %s is listed but not defined", name)))
			continue
		case a.Key != name:
			errs = multierr.Append(errs, integrationerror.NewConfigurationError(
				integrationerror.CodeInvalidDefinition, fmt.Sprintf("action %s is declared with key %q", name, a.Key)))
		case a.Perform == nil:
			errs = multierr.Append(errs, integrationerror.NewConfigurationError(
				integrationerror.CodeInvalidDefinition, fmt.Sprintf("action %s has no perform function", name)))
		}
		if err := schema.CheckFields(a.Fields); err != nil {
			errs = multierr.Append(errs, integrationerror.NewConfigurationError(
				integrationerror.CodeInvalidDefinition, fmt.Sprintf("action %s: %s", name, err.Error())))
		}
	}
	return errs
}

// ResolveByID returns the definition registered under the id.
func (r *Registry) ResolveByID(id string) (*Definition, bool) {
	entry, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return entry.Definition, true
}

// ResolveByPathKey returns the definition registered under the path key. Unregistered keys
// fall back to the loaders; a failing loader or an incomplete loaded definition is reported
// as not found.
func (r *Registry) ResolveByPathKey(key string) (*Definition, bool) {
	entry, ok := r.entryByPathKey(key)
	if !ok {
		return nil, false
	}
	return entry.Definition, true
}

// ResolveByIDOrPathKey resolves by id first and then by path key.
func (r *Registry) ResolveByIDOrPathKey(idOrKey string) (*Definition, bool) {
	entry, ok := r.resolveEntry(idOrKey)
	if !ok {
		return nil, false
	}
	return entry.Definition, true
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.byID[id])
	}
	return entries
}

// LoadableKeys returns the sorted path keys that are only available through a loader.
func (r *Registry) LoadableKeys() []string {
	keys := make([]string, 0, len(r.loaders))
	for key := range r.loaders {
		if _, registered := r.byPathKey[key]; !registered {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Destination binds a definition to the authentication manager and the executor of the
// registry. Destinations of a registry share only the token store.
func (r *Registry) Destination(def *Definition) *Destination {
	return newDestination(def, r.httpClient, r.store, r.authOpts, r.executor)
}

func (r *Registry) resolveEntry(idOrKey string) (Entry, bool) {
	if entry, ok := r.byID[idOrKey]; ok {
		return entry, true
	}
	return r.entryByPathKey(idOrKey)
}

func (r *Registry) entryByPathKey(key string) (Entry, bool) {
	if entry, ok := r.byPathKey[key]; ok {
		return entry, true
	}

	if entry, ok := r.loaded.Load(key); ok {
		return entry.(Entry), true
	}

	loader, ok := r.loaders[key]
	if !ok {
		return Entry{}, false
	}
	def, err := loader()
	if err != nil {
		r.logger.Debug("Destination loader failed", log.String("pathKey", key), log.Error(err))
		return Entry{}, false
	}
	if def == nil || def.Name == "" || def.Actions == nil || len(def.Actions.Names()) == 0 {
		r.logger.Debug("Loaded destination definition is incomplete", log.String("pathKey", key))
		return Entry{}, false
	}
	// The first valid load stays the canonical definition of the key.
	entry, _ := r.loaded.LoadOrStore(key, Entry{Path: key, Definition: def})
	return entry.(Entry), true
}
