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

package config

import "sync"

// ConduitRuntime holds the runtime configuration for the Conduit server.
type ConduitRuntime struct {
	ConduitHome string `yaml:"conduit_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *ConduitRuntime
	once          sync.Once
)

// InitializeConduitRuntime initializes the ConduitRuntime configuration.
func InitializeConduitRuntime(conduitHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &ConduitRuntime{
			ConduitHome: conduitHome,
			Config:      *config,
		}
	})

	return nil
}

// GetConduitRuntime returns the ConduitRuntime configuration.
func GetConduitRuntime() *ConduitRuntime {
	if runtimeConfig == nil {
		panic("ConduitRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetConduitRuntime resets the ConduitRuntime.
// This should only be used in tests to reset the singleton state.
func ResetConduitRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
