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
	"net/http"
	"time"

	"github.com/asgardeo/conduit/internal/action"
	"github.com/asgardeo/conduit/internal/delivery"
	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	"github.com/asgardeo/conduit/internal/system/error/serviceerror"
	"github.com/asgardeo/conduit/internal/system/log"
)

const serviceLoggerComponentName = "DestinationService"

// DestinationServiceInterface defines the operations of the destination service.
type DestinationServiceInterface interface {
	ListDestinations() (*DestinationListResponse, *serviceerror.ServiceError)
	GetDestination(idOrKey string) (*DestinationSummary, *serviceerror.ServiceError)
	InvokeAction(ctx context.Context, idOrKey string, request InvokeRequest) (*InvocationOutcome,
		*serviceerror.ServiceError)
	ListDeliveries(idOrKey string, limit int) ([]delivery.Record, *serviceerror.ServiceError)
}

// destinationService is the default implementation of DestinationServiceInterface.
type destinationService struct {
	registry *Registry
	journal  delivery.JournalInterface
	now      func() time.Time
}

// newDestinationService creates the destination service. A nil journal disables journaling.
func newDestinationService(registry *Registry, journal delivery.JournalInterface) DestinationServiceInterface {
	return &destinationService{
		registry: registry,
		journal:  journal,
		now:      time.Now,
	}
}

// ListDestinations lists the registered destinations followed by the loadable ones.
func (s *destinationService) ListDestinations() (*DestinationListResponse, *serviceerror.ServiceError) {
	summaries := make([]DestinationSummary, 0)
	for _, entry := range s.registry.Entries() {
		summaries = append(summaries, summarize(entry))
	}
	for _, key := range s.registry.LoadableKeys() {
		if entry, ok := s.registry.entryByPathKey(key); ok {
			summaries = append(summaries, summarize(entry))
		}
	}
	return &DestinationListResponse{TotalResults: len(summaries), Destinations: summaries}, nil
}

// GetDestination returns the destination registered under the id or path key.
func (s *destinationService) GetDestination(idOrKey string) (*DestinationSummary, *serviceerror.ServiceError) {
	entry, svcErr := s.resolve(idOrKey)
	if svcErr != nil {
		return nil, svcErr
	}
	summary := summarize(entry)
	return &summary, nil
}

// InvokeAction invokes an action of the destination. A failed invocation is reported in the
// outcome together with the responses recorded before the failure.
func (s *destinationService) InvokeAction(ctx context.Context, idOrKey string, request InvokeRequest) (
	*InvocationOutcome, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	entry, svcErr := s.resolve(idOrKey)
	if svcErr != nil {
		return nil, svcErr
	}

	started := s.now()
	result, err := s.registry.Destination(entry.Definition).Invoke(ctx, request)
	completed := s.now()
	if result == nil {
		result = &action.InvocationResult{Responses: []action.Response{}}
	}

	outcome := &InvocationOutcome{Result: result}
	if err != nil {
		ie, ok := integrationerror.As(err)
		if !ok {
			logger.Error("Unexpected invocation error", log.String(log.LoggerKeyDestinationID, idOrKey),
				log.Error(err))
			return nil, &ErrorInternalServerError
		}
		outcome.Failure = newInvocationFailure(ie)
		logger.Debug("Action invocation failed", log.String(log.LoggerKeyDestinationID, idOrKey),
			log.String(log.LoggerKeyActionName, request.Action), log.String("kind", string(ie.Kind)),
			log.String("code", ie.Code))
	}

	outcome.InvocationID = s.record(logger, entry, request.Action, outcome, started, completed)
	return outcome, nil
}

// ListDeliveries returns the journal records of a destination.
func (s *destinationService) ListDeliveries(idOrKey string, limit int) ([]delivery.Record,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	entry, svcErr := s.resolve(idOrKey)
	if svcErr != nil {
		return nil, svcErr
	}
	if s.journal == nil {
		return []delivery.Record{}, nil
	}

	records, err := s.journal.ListByDestination(journalKey(entry), limit)
	if err != nil {
		logger.Error("Failed to list delivery records", log.String(log.LoggerKeyDestinationID, idOrKey),
			log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return records, nil
}

func (s *destinationService) resolve(idOrKey string) (Entry, *serviceerror.ServiceError) {
	if idOrKey == "" {
		return Entry{}, &ErrorInvalidDestinationID
	}
	entry, ok := s.registry.resolveEntry(idOrKey)
	if !ok {
		return Entry{}, &ErrorDestinationNotFound
	}
	return entry, nil
}

// record journals the outcome. Journal failures are logged only.
func (s *destinationService) record(logger *log.Logger, entry Entry, actionName string,
	outcome *InvocationOutcome, started, completed time.Time) string {
	if s.journal == nil {
		return ""
	}

	record := delivery.Record{
		DestinationID: journalKey(entry),
		Action:        actionName,
		Outcome:       delivery.OutcomeSucceeded,
		CallCount:     len(outcome.Result.Responses),
		StartedAt:     started,
		CompletedAt:   completed,
	}
	if outcome.Failure != nil {
		record.Outcome = delivery.OutcomeFailed
		record.ErrorKind = outcome.Failure.Kind
		record.ErrorCode = outcome.Failure.Reason
	}

	id, err := s.journal.Record(record)
	if err != nil {
		logger.Warn("Failed to record the delivery", log.String(log.LoggerKeyDestinationID, record.DestinationID),
			log.Error(err))
		return ""
	}
	return id
}

func journalKey(entry Entry) string {
	if entry.ID != "" {
		return entry.ID
	}
	return entry.PathKey()
}

func newInvocationFailure(ie *integrationerror.Error) *InvocationFailure {
	failure := &InvocationFailure{
		Kind:    string(ie.Kind),
		Reason:  ie.Code,
		Message: ie.Message,
		Status:  ie.Status,
	}
	for _, f := range ie.Fields {
		failure.Fields = append(failure.Fields, Field{Field: f.Field, Message: f.Message})
	}
	return failure
}

// failureServiceError maps a failed invocation to the service error and HTTP status reported
// by the API.
func failureServiceError(failure *InvocationFailure) (*serviceerror.ServiceError, int) {
	switch integrationerror.Kind(failure.Kind) {
	case integrationerror.KindValidation:
		if failure.Reason == integrationerror.CodeActionNotFound {
			return &ErrorActionNotFound, http.StatusNotFound
		}
		return &ErrorInvalidPayload, http.StatusBadRequest
	case integrationerror.KindAuthentication:
		return &ErrorAuthenticationFailed, http.StatusUnauthorized
	case integrationerror.KindTransport:
		return &ErrorDestinationCallFailed, http.StatusBadGateway
	default:
		return &ErrorInternalServerError, http.StatusInternalServerError
	}
}
