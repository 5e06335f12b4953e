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

// Package catalog lists the destinations shipped with the server.
package catalog

import (
	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/destinations/criteoaudiences"
	"github.com/asgardeo/conduit/internal/destinations/gainsightpx"
	"github.com/asgardeo/conduit/internal/destinations/googleanalytics4"
)

// Entries returns the destinations registered at start up.
func Entries() []destination.Entry {
	return []destination.Entry{
		{ID: googleanalytics4.ID, Path: googleanalytics4.Path, Definition: googleanalytics4.Definition()},
		{ID: gainsightpx.ID, Path: gainsightpx.Path, Definition: gainsightpx.Definition()},
	}
}

// Loaders returns the destinations loaded on first use, keyed by path key.
func Loaders() map[string]destination.Loader {
	return map[string]destination.Loader{
		"criteo-audiences": criteoaudiences.Load,
	}
}

// NewRegistry builds a registry holding every catalog destination.
func NewRegistry(opts destination.RegistryOptions) (*destination.Registry, error) {
	return destination.NewRegistry(Entries(), Loaders(), opts)
}
