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

// Package delivery journals the outcome of action invocations.
package delivery

import "time"

// Outcome is the final state of an invocation.
type Outcome string

const (
	// OutcomeSucceeded marks an invocation whose calls all succeeded.
	OutcomeSucceeded Outcome = "SUCCEEDED"
	// OutcomeFailed marks an invocation that failed.
	OutcomeFailed Outcome = "FAILED"
)

// Record is the journal entry of one invocation.
type Record struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destinationId"`
	Action        string    `json:"action"`
	Outcome       Outcome   `json:"outcome"`
	ErrorKind     string    `json:"errorKind,omitempty"`
	ErrorCode     string    `json:"errorCode,omitempty"`
	CallCount     int       `json:"callCount"`
	StartedAt     time.Time `json:"startedAt"`
	CompletedAt   time.Time `json:"completedAt"`
}
