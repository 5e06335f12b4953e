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

// Package action runs destination actions and records the calls they make.
package action

import (
	"context"
	"net/http"

	"github.com/asgardeo/conduit/internal/schema"
)

// Definition declares one action of a destination.
type Definition struct {
	Key                 string
	Title               string
	Description         string
	DefaultSubscription string
	// Fields are resolved and validated in declaration order.
	Fields []schema.FieldSpec
	// Validate checks cross-field rules of a validated input before any call is made.
	Validate func(input Input) error
	// Perform issues the calls of the action through the sender.
	Perform func(ctx context.Context, sender RequestSender, input Input) error
}

// Input is the validated input of an action invocation.
type Input struct {
	Event    interface{}
	Payload  schema.Payload
	Settings schema.Payload
}

// RequestOptions describes one outgoing call. At most one of JSON, Form and Body is used.
type RequestOptions struct {
	Method       string
	Headers      map[string]string
	JSON         interface{}
	Form         map[string]string
	Body         string
	SearchParams map[string]string
}

// Request is the recorded metadata of an issued call.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

// Response is the recorded outcome of a call that received a response.
type Response struct {
	Status  int         `json:"status"`
	Headers http.Header `json:"headers,omitempty"`
	// Data holds the decoded body when the response is JSON.
	Data    interface{} `json:"data,omitempty"`
	Content string      `json:"content,omitempty"`
	Request Request     `json:"request"`
}

// InvocationResult lists the responses of an invocation in call issue order.
type InvocationResult struct {
	Responses []Response `json:"responses"`
}

// RequestSender issues the outgoing calls of an action.
type RequestSender interface {
	Send(ctx context.Context, url string, opts RequestOptions) (*Response, error)
}

// Augmenter modifies every outgoing request before it is sent, for example to attach credentials.
type Augmenter interface {
	Apply(req *http.Request) error
}

// AugmenterFunc adapts a function to the Augmenter interface.
type AugmenterFunc func(req *http.Request) error

// Apply implements Augmenter.
func (f AugmenterFunc) Apply(req *http.Request) error {
	return f(req)
}
