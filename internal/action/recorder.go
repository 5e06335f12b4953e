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
	"fmt"
	"sync"

	"github.com/asgardeo/conduit/internal/system/error/integrationerror"
)

// recorder wraps a sender and records every call in issue order. A slot is reserved when a
// call is issued, so concurrent calls keep their issue order. After the first failure, or
// once the call limit is reached, further calls are refused.
type recorder struct {
	inner       RequestSender
	maxRequests int

	mu      sync.Mutex
	slots   []*Response
	failure error
}

func newRecorder(inner RequestSender, maxRequests int) *recorder {
	return &recorder{inner: inner, maxRequests: maxRequests}
}

// Send implements RequestSender.
func (r *recorder) Send(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	slot, err := r.reserve()
	if err != nil {
		return nil, err
	}

	resp, err := r.inner.Send(ctx, url, opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	if resp != nil {
		r.slots[slot] = resp
	}
	if err != nil && r.failure == nil {
		r.failure = err
	}
	return resp, err
}

func (r *recorder) reserve() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failure != nil {
		return 0, integrationerror.NewTransportError(integrationerror.CodeRequestRefused, 0,
			"call refused after an earlier call of the invocation failed", nil)
	}
	if r.maxRequests > 0 && len(r.slots) >= r.maxRequests {
		r.failure = integrationerror.NewTransportError(integrationerror.CodeRequestLimitExceeded, 0,
			fmt.Sprintf("an invocation may issue at most %d calls", r.maxRequests), nil)
		return 0, r.failure
	}
	r.slots = append(r.slots, nil)
	return len(r.slots) - 1, nil
}

// result returns the recorded responses in issue order and the first failure.
func (r *recorder) result() (*InvocationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	responses := make([]Response, 0, len(r.slots))
	for _, resp := range r.slots {
		if resp != nil {
			responses = append(responses, *resp)
		}
	}
	return &InvocationResult{Responses: responses}, r.failure
}

// issued returns the number of calls issued so far.
func (r *recorder) issued() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}
