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
	"net/http"

	"github.com/asgardeo/conduit/internal/delivery"
	"github.com/asgardeo/conduit/internal/system/middleware"
)

// invocationIDHeaderName carries the journal id of an invocation.
const invocationIDHeaderName = "X-Invocation-Id"

// Initialize creates the destination service on the registry and registers its routes.
// A nil journal disables delivery journaling.
func Initialize(mux *http.ServeMux, registry *Registry, journal delivery.JournalInterface) DestinationServiceInterface {
	service := newDestinationService(registry, journal)
	handler := newDestinationHandler(service)
	registerRoutes(mux, handler)
	return service
}

// registerRoutes registers the routes of the destination API.
func registerRoutes(mux *http.ServeMux, handler *destinationHandler) {
	readOpts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /destinations",
		handler.HandleDestinationListRequest, readOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /destinations",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, readOpts))
	mux.HandleFunc(middleware.WithCORS("GET /destinations/{id}",
		handler.HandleDestinationGetRequest, readOpts))
	mux.HandleFunc(middleware.WithCORS("GET /destinations/{id}/deliveries",
		handler.HandleDeliveryListRequest, readOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /destinations/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, readOpts))

	invokeOpts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("POST /destinations/{id}/actions/{action}/invoke",
		handler.HandleInvokeActionRequest, invokeOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /destinations/{id}/actions/{action}/invoke",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, invokeOpts))
}
