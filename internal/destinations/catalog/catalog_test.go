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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/conduit/internal/destination"
	"github.com/asgardeo/conduit/internal/destinations/criteoaudiences"
	"github.com/asgardeo/conduit/internal/destinations/gainsightpx"
	"github.com/asgardeo/conduit/internal/destinations/googleanalytics4"
	"github.com/asgardeo/conduit/tests/mocks/httpmock"
)

func TestEntriesAreWellFormed(t *testing.T) {
	for _, e := range Entries() {
		assert.NoError(t, destination.CheckDefinition(e.Definition), e.ID)
	}
}

func TestLoaderKeysMatchDefinitions(t *testing.T) {
	for key, load := range Loaders() {
		def, err := load()
		require.NoError(t, err)
		assert.NoError(t, destination.CheckDefinition(def), key)
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(destination.RegistryOptions{HTTPClient: httpmock.NewHTTPClientInterfaceMock(t)})
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, e := range registry.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{googleanalytics4.ID, gainsightpx.ID}, ids)
	assert.Equal(t, []string{"criteo-audiences"}, registry.LoadableKeys())

	def, ok := registry.ResolveByIDOrPathKey("google-analytics-4")
	require.True(t, ok)
	assert.Equal(t, "actions-google-analytics-4", def.Slug)

	def, ok = registry.ResolveByPathKey("criteo-audiences")
	require.True(t, ok)
	assert.Equal(t, "criteo-managing-audiences", def.Slug)
	_, ok = registry.ResolveByID(criteoaudiences.ID)
	assert.False(t, ok)
}

func TestNewRegistryHonorsEnabledList(t *testing.T) {
	registry, err := NewRegistry(destination.RegistryOptions{
		Enabled:    []string{gainsightpx.ID},
		HTTPClient: httpmock.NewHTTPClientInterfaceMock(t),
	})
	require.NoError(t, err)
	require.Len(t, registry.Entries(), 1)
	assert.Equal(t, gainsightpx.ID, registry.Entries()[0].ID)

	_, ok := registry.ResolveByIDOrPathKey("google-analytics-4")
	assert.False(t, ok)
}
