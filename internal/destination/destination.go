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

package destination

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/schema"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
)

const destinationLoggerComponentName = "Destination"

// Destination is a callable destination bound to its authentication scheme.
// It is safe for concurrent use.
type Destination struct {
	def        *Definition
	auth       *auth.Manager
	httpClient syshttp.HTTPClientInterface
	executor   *action.Executor
	logger     *log.Logger
}

func newDestination(def *Definition, httpClient syshttp.HTTPClientInterface, store *auth.TokenStore,
	authOpts auth.Options, executor *action.Executor) *Destination {
	return &Destination{
		def:        def,
		auth:       auth.NewManager(def.Slug, def.Authentication, store, httpClient, authOpts),
		httpClient: httpClient,
		executor:   executor,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, destinationLoggerComponentName),
			log.String("destination", def.Name)),
	}
}

// Definition returns the definition of the destination.
func (d *Destination) Definition() *Definition {
	return d.def
}

// Invoke runs one action for one event. Settings are validated against the scheme settings
// and the mapping is resolved into the action payload before credentials are obtained.
// Validation and authentication failures make no action call and return an empty result.
// A transport failure returns the responses recorded before it.
func (d *Destination) Invoke(ctx context.Context, req InvokeRequest) (*action.InvocationResult, error) {
	empty := &action.InvocationResult{Responses: []action.Response{}}

	actionDef, ok := d.def.Actions.Get(req.Action)
	if !ok {
		err := integrationerror.NewValidationError(integrationerror.CodeActionNotFound,
			fmt.Sprintf("destination %s has no action %q", d.def.Name, req.Action))
		err.Status = http.StatusNotFound
		return empty, err
	}
	logger := d.logger.With(log.String(log.LoggerKeyActionName, actionDef.Key))

	settings, err := d.auth.ValidateSettings(req.Settings)
	if err != nil {
		logger.Debug("Settings validation failed", log.Error(err))
		return empty, err
	}

	payload, err := schema.Validate(actionDef.Fields, req.Mapping, req.Event,
		schema.Options{UseDefaultMappings: req.UseDefaultMappings})
	if err != nil {
		logger.Debug("Payload validation failed", log.Error(err))
		return empty, err
	}

	state := auth.State{Settings: settings}
	if req.Auth != nil {
		state.Credentials = *req.Auth
	}
	session, err := d.auth.Authorize(ctx, state)
	if err != nil {
		logger.Debug("Authorization failed", log.Error(err))
		return empty, err
	}

	augmenters := []action.Augmenter{session}
	if d.def.ExtendRequest != nil {
		extension := d.def.ExtendRequest(session.State())
		augmenters = append(augmenters, action.AugmenterFunc(func(r *http.Request) error {
			auth.ApplyExtension(r, extension)
			return nil
		}))
	}
	sender := action.NewHTTPSender(d.httpClient, augmenters...)

	input := action.Input{Event: req.Event, Payload: payload, Settings: settings}
	return d.executor.Invoke(ctx, actionDef, input, sender)
}
