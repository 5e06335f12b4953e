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
	"encoding/json"
	"net/http"
	"strconv"

	serverconst "github.com/asgardeo/conduit/internal/system/constants"
	"github.com/asgardeo/conduit/internal/system/error/apierror"
	"github.com/asgardeo/conduit/internal/system/error/serviceerror"
	"github.com/asgardeo/conduit/internal/system/log"
	sysutils "github.com/asgardeo/conduit/internal/system/utils"
)

const handlerLoggerComponentName = "DestinationHandler"

// destinationHandler is the handler for destination API requests.
type destinationHandler struct {
	service DestinationServiceInterface
}

func newDestinationHandler(service DestinationServiceInterface) *destinationHandler {
	return &destinationHandler{
		service: service,
	}
}

// HandleDestinationListRequest handles the destination list request.
func (h *destinationHandler) HandleDestinationListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	list, svcErr := h.service.ListDestinations()
	if svcErr != nil {
		handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, list)
	logger.Debug("Successfully listed destinations", log.Int("totalResults", list.TotalResults))
}

// HandleDestinationGetRequest handles the destination get request.
func (h *destinationHandler) HandleDestinationGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	id := r.PathValue("id")
	summary, svcErr := h.service.GetDestination(id)
	if svcErr != nil {
		handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Debug("Successfully retrieved destination", log.String(log.LoggerKeyDestinationID, id))
}

// HandleInvokeActionRequest handles an action invocation request.
func (h *destinationHandler) HandleInvokeActionRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	id := r.PathValue("id")
	invokeRequest, err := sysutils.DecodeJSONBody[InvokeRequest](r)
	if err != nil {
		logger.Debug("Failed to decode the invocation request", log.Error(err))
		handleError(w, logger, ErrorInvalidRequestFormat.WithDescription("Failed to parse request body"))
		return
	}
	invokeRequest.Action = r.PathValue("action")

	outcome, svcErr := h.service.InvokeAction(r.Context(), id, *invokeRequest)
	if svcErr != nil {
		handleError(w, logger, svcErr)
		return
	}
	if outcome.InvocationID != "" {
		w.Header().Set(invocationIDHeaderName, outcome.InvocationID)
	}

	if outcome.Failure != nil {
		errDef, status := failureServiceError(outcome.Failure)
		sysutils.WriteJSONResponse(w, status, InvocationErrorResponse{
			Code:        errDef.Code,
			Message:     errDef.Error,
			Description: outcome.Failure.Message,
			Failure:     outcome.Failure,
			Responses:   outcome.Result.Responses,
		})
		logger.Debug("Action invocation failed", log.String(log.LoggerKeyDestinationID, id),
			log.String(log.LoggerKeyActionName, invokeRequest.Action), log.Int("status", status))
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, InvokeActionResponse{Responses: outcome.Result.Responses})
	logger.Debug("Action invoked", log.String(log.LoggerKeyDestinationID, id),
		log.String(log.LoggerKeyActionName, invokeRequest.Action),
		log.Int("responses", len(outcome.Result.Responses)))
}

// HandleDeliveryListRequest handles the delivery journal list request of a destination.
func (h *destinationHandler) HandleDeliveryListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			handleError(w, logger, &ErrorInvalidLimit)
			return
		}
		limit = parsed
	}

	records, svcErr := h.service.ListDeliveries(r.PathValue("id"), limit)
	if svcErr != nil {
		handleError(w, logger, svcErr)
		return
	}
	sysutils.WriteJSONResponse(w, http.StatusOK, records)
}

// handleError converts a service error to an API error response.
func handleError(w http.ResponseWriter, logger *log.Logger, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
		switch svcErr.Code {
		case ErrorDestinationNotFound.Code, ErrorActionNotFound.Code:
			statusCode = http.StatusNotFound
		case ErrorAuthenticationFailed.Code:
			statusCode = http.StatusUnauthorized
		}
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(statusCode)

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
