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

package healthcheck

import (
	"sort"

	"github.com/asgardeo/conduit/internal/system/log"
)

// Pinger is a dependency that readiness depends on.
type Pinger interface {
	Ping() error
}

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness() ServerStatus
}

type healthCheckService struct {
	names        []string
	dependencies map[string]Pinger
}

func newHealthCheckService(dependencies map[string]Pinger) HealthCheckServiceInterface {
	names := make([]string, 0, len(dependencies))
	for name := range dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return &healthCheckService{names: names, dependencies: dependencies}
}

// CheckReadiness pings every dependency. The server is down when any dependency is down.
func (hcs *healthCheckService) CheckReadiness() ServerStatus {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	status := StatusUp
	statuses := make([]ServiceStatus, 0, len(hcs.names))
	for _, name := range hcs.names {
		s := StatusUp
		if err := hcs.dependencies[name].Ping(); err != nil {
			logger.Error("Dependency is not available", log.String("service", name), log.Error(err))
			s = StatusDown
			status = StatusDown
		}
		statuses = append(statuses, ServiceStatus{ServiceName: name, Status: s})
	}
	return ServerStatus{Status: status, ServiceStatus: statuses}
}
