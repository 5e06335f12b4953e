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

package action

import (
	"context"

	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
	"github.com/asgardeo/conduit/internal/system/log"
)

const executorLoggerComponentName = "ActionExecutor"

// DefaultMaxRequestsPerInvocation is used when no call limit is configured.
const DefaultMaxRequestsPerInvocation = 50

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// MaxRequestsPerInvocation bounds the calls a single invocation may issue.
	MaxRequestsPerInvocation int
}

// Executor runs action definitions. It is safe for concurrent use; every invocation
// records its calls separately.
type Executor struct {
	maxRequests int
	logger      *log.Logger
}

// NewExecutor creates an action executor.
func NewExecutor(opts ExecutorOptions) *Executor {
	maxRequests := opts.MaxRequestsPerInvocation
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequestsPerInvocation
	}
	return &Executor{
		maxRequests: maxRequests,
		logger:      log.GetLogger().With(log.String(log.LoggerKeyComponentName, executorLoggerComponentName)),
	}
}

// Invoke runs the Validate hook and then Perform of the definition. Every call made
// through the sender is recorded in issue order. The first failed call fails the
// invocation; the responses recorded so far are returned with the error and attached
// to it as its partial result. Validation failures return an empty result.
func (e *Executor) Invoke(ctx context.Context, def *Definition, input Input,
	sender RequestSender) (*InvocationResult, error) {
	if def.Validate != nil {
		if err := def.Validate(input); err != nil {
			return &InvocationResult{Responses: []Response{}}, asValidationError(err)
		}
	}
	if def.Perform == nil {
		return &InvocationResult{Responses: []Response{}}, integrationerror.NewConfigurationError(
			integrationerror.CodeInvalidDefinition, "action "+def.Key+" has no perform function")
	}

	rec := newRecorder(sender, e.maxRequests)
	performErr := def.Perform(ctx, rec, input)
	result, failure := rec.result()

	if failure == nil && performErr == nil {
		return result, nil
	}

	// The first failed call decides the outcome even when Perform ignored it.
	err := failure
	if err == nil {
		err = performErr
	}
	ie, ok := integrationerror.As(err)
	if !ok {
		ie = integrationerror.NewTransportError(integrationerror.CodeRequestFailed, 0, "action failed", err)
	}
	if ie.Kind == integrationerror.KindTransport {
		ie = ie.WithPartial(result)
	}

	e.logger.Debug("Action invocation failed", log.String(log.LoggerKeyActionName, def.Key),
		log.String("kind", string(ie.Kind)), log.Int("issuedCalls", rec.issued()),
		log.Int("recordedResponses", len(result.Responses)))
	return result, ie
}

func asValidationError(err error) error {
	if _, ok := integrationerror.As(err); ok {
		return err
	}
	return integrationerror.NewValidationError(integrationerror.CodePayloadValidation, err.Error())
}
