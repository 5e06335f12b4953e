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

package main

import (
	"net/http"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/auth"
	"github.com/asgardeo/conduit/internal/delivery"
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/destinations/catalog"
	"github.com/asgardeo/conduit/internal/system/config"
	"github.com/asgardeo/conduit/internal/system/healthcheck"
	syshttp "github.com/asgardeo/conduit/internal/system/http"
	"github.com/asgardeo/conduit/internal/system/log"
)

// registerServices builds the destination registry and registers all the services with the multiplexer.
func registerServices(logger *log.Logger, mux *http.ServeMux, cfg *config.Config, journal *delivery.Journal) {
	registry, err := catalog.NewRegistry(registryOptions(cfg))
	if err != nil {
		logger.Fatal("Failed to build the destination registry", log.Error(err))
	}

	var (
		journalService delivery.JournalInterface
		dependencies   = map[string]healthcheck.Pinger{}
	)
	if journal != nil {
		journalService = journal
		dependencies["DeliveryJournal"] = journal
	}

	_ = destination.Initialize(mux, registry, journalService)
	_ = healthcheck.Initialize(mux, dependencies)

	logger.Info("Services registered", log.Int("destinations", len(registry.Entries())),
		log.Int("loadable", len(registry.LoadableKeys())))
}

// registryOptions derives the registry options from the configuration.
func registryOptions(cfg *config.Config) destination.RegistryOptions {
	return destination.RegistryOptions{
		Enabled:    cfg.Destinations,
		HTTPClient: syshttp.NewHTTPClientWithConfig(cfg),
		Auth: auth.Options{
			RefreshTimeout:       cfg.RefreshTimeout(),
			ExpiryLeeway:         cfg.ExpiryLeeway(),
			DefaultTokenValidity: cfg.DefaultTokenValidity(),
		},
		Executor: action.ExecutorOptions{
			MaxRequestsPerInvocation: cfg.Action.MaxRequestsPerInvocation,
		},
	}
}
